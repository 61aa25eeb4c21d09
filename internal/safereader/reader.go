// Package safereader produces sanitized textual content from files that
// passed safety inspection, honoring compression formats, size ceilings and
// encoding detection. Failures are structured results, never panics.
package safereader

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/mwinther/protokoll/internal/filelock"
	"github.com/mwinther/protokoll/internal/inspect"
)

// replacementChar substitutes NUL bytes and malformed sequences.
const replacementChar = "�"

// Diagnostics accompanies every read result. Warnings may be present even
// on success (large file, lock contention) and are meant to be shown
// alongside the content.
type Diagnostics struct {
	Error    string            `json:"error,omitempty"`
	Warnings []string          `json:"warnings"`
	Info     *inspect.FileInfo `json:"info,omitempty"`
}

// ReadFileSafe reads a file after re-checking its safety descriptor.
// maxSize <= 0 selects the hard ceiling. The returned bool reports success;
// on failure the diagnostics carry a specific reason and content is empty.
func ReadFileSafe(path string, maxSize int64) (bool, string, Diagnostics) {
	if maxSize <= 0 {
		maxSize = inspect.MaxFileSize
	}

	info := inspect.GetFileInfo(path)
	diag := Diagnostics{Warnings: append([]string{}, info.Warnings...), Info: info}

	if info.Error != "" {
		diag.Error = info.Error
		return false, "", diag
	}
	if !info.IsFile {
		diag.Error = "Not a file"
		return false, "", diag
	}
	if !info.Readable {
		diag.Error = "Not readable"
		return false, "", diag
	}
	if info.Size > maxSize {
		diag.Error = fmt.Sprintf("Size exceeds limit (%s)", info.SizeHuman)
		return false, "", diag
	}
	if info.IsBinary {
		diag.Error = "Binary file"
		return false, "", diag
	}

	// Advisory shared lock: contention means some process holds the file
	// exclusively, which is worth a warning but never blocks the read.
	lock := filelock.New(path)
	if acquired, err := lock.TryShared(); err != nil || !acquired {
		diag.Warnings = append(diag.Warnings, "File is locked by another process")
	} else {
		defer lock.Unlock()
	}

	var content string
	var err error
	if info.IsCompressed {
		content, err = readCompressed(path, maxSize)
	} else {
		content, err = readPlain(path, info)
	}
	if err != nil {
		diag.Error = err.Error()
		return false, "", diag
	}

	return true, content, diag
}

// readPlain reads and decodes an uncompressed text file according to the
// encoding detected during inspection.
func readPlain(path string, info *inspect.FileInfo) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read error: %w", err)
	}
	return decode(raw, info.Encoding), nil
}

// decode converts raw bytes into sanitized UTF-8 text. UTF-16 variants are
// decoded first and sanitized afterwards, since their code units contain
// structural NUL bytes; everything else gets NUL replacement up front and a
// permissive UTF-8 decode.
func decode(raw []byte, encoding string) string {
	switch encoding {
	case inspect.EncodingUTF16LE:
		return sanitize(decodeUTF16(raw, unicode.LittleEndian))
	case inspect.EncodingUTF16BE:
		return sanitize(decodeUTF16(raw, unicode.BigEndian))
	case inspect.EncodingUTF8BOM:
		raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	}

	if bytes.IndexByte(raw, 0) != -1 {
		raw = bytes.ReplaceAll(raw, []byte{0}, []byte(replacementChar))
	}
	return strings.ToValidUTF8(string(raw), replacementChar)
}

// decodeUTF16 decodes UTF-16 content, honoring a BOM when present and
// falling back to the given endianness otherwise. Decoder errors fall back
// to a raw byte interpretation rather than failing the read.
func decodeUTF16(raw []byte, endian unicode.Endianness) string {
	decoder := unicode.UTF16(endian, unicode.UseBOM).NewDecoder()
	out, err := decoder.Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// sanitize removes NUL runes left after decoding and repairs invalid UTF-8.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\x00", replacementChar)
	return strings.ToValidUTF8(s, replacementChar)
}
