package safereader

import (
	"archive/zip"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwinther/protokoll/internal/inspect"
)

// readCompressed dispatches by extension to the matching decompressor.
// Decompressed output is capped at maxSize to keep a small archive from
// expanding into an unbounded allocation.
func readCompressed(path string, maxSize int64) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return readGzip(path, maxSize)
	case ".bz2":
		return readBzip2(path, maxSize)
	case ".zip":
		return readZip(path, maxSize)
	default:
		return "", fmt.Errorf("unsupported compression: %s", filepath.Ext(path))
	}
}

func readGzip(path string, maxSize int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read error: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("gzip error: %w", err)
	}
	defer gz.Close()

	return decodeStream(gz, maxSize)
}

func readBzip2(path string, maxSize int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read error: %w", err)
	}
	defer f.Close()

	return decodeStream(bzip2.NewReader(f), maxSize)
}

// readZip selects the first archived entry with a log-like name and decodes
// it. Empty archives and archives without log-like entries are errors.
func readZip(path string, maxSize int64) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("zip error: %w", err)
	}
	defer archive.Close()

	if len(archive.File) == 0 {
		return "", fmt.Errorf("empty zip archive")
	}

	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() || !inspect.IsLogFile(entry.Name) {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return "", fmt.Errorf("zip entry error: %w", err)
		}
		content, err := decodeStream(rc, maxSize)
		rc.Close()
		if err != nil {
			return "", err
		}
		return content, nil
	}

	return "", fmt.Errorf("no log files in zip")
}

// decodeStream reads at most maxSize decompressed bytes and sanitizes the
// result as UTF-8 text.
func decodeStream(r io.Reader, maxSize int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize))
	if err != nil {
		return "", fmt.Errorf("decompression error: %w", err)
	}
	return decode(data, inspect.EncodingUTF8), nil
}
