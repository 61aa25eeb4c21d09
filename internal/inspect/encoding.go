package inspect

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
)

// Canonical encoding names produced by detection. Values are lowercase and
// stable, so callers can switch on them.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8BOM = "utf-8-bom"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
)

// chardetConfidenceMin is the minimum statistical-detector confidence
// (0-100) accepted before falling back to UTF-8.
const chardetConfidenceMin = 70

// DetectEncoding infers the text encoding of a leading byte sample.
// Priority order: byte-order marks, NUL-byte pairing heuristics, then a
// statistical detector, then the UTF-8 fallback.
func DetectEncoding(sample []byte) string {
	if len(sample) == 0 {
		return EncodingUTF8
	}

	if enc := detectBOM(sample); enc != "" {
		return enc
	}

	// UTF-16 text without a BOM still leaves a NUL fingerprint: big-endian
	// ASCII produces doubled NULs around newlines, little-endian ASCII
	// alternates data and NUL bytes.
	if bytes.Contains(sample, []byte{0, 0}) {
		return EncodingUTF16BE
	}
	if len(sample) > 1 && sample[0] != 0 && sample[1] == 0 {
		return EncodingUTF16LE
	}

	// Valid UTF-8 needs no statistical guess; this also covers plain ASCII.
	if utf8.Valid(sample) {
		return EncodingUTF8
	}

	detector := chardet.NewTextDetector()
	if result, err := detector.DetectBest(sample); err == nil {
		if result.Confidence >= chardetConfidenceMin && result.Charset != "" {
			return strings.ToLower(result.Charset)
		}
	}

	return EncodingUTF8
}

// detectBOM returns the encoding implied by a byte-order mark, or "".
func detectBOM(sample []byte) string {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return EncodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return EncodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return EncodingUTF16BE
		}
	}
	return ""
}
