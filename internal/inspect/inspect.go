// Package inspect computes safety descriptors for files before they are
// read: size classification, binary detection, encoding inference and
// compression flagging. Descriptors are computed fresh on every call; files
// may change between calls.
package inspect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Size limits: files over MaxFileSize are refused, files over WarnFileSize
// are flagged as large but still readable.
const (
	MaxFileSize  = 100 * 1024 * 1024
	WarnFileSize = 10 * 1024 * 1024
)

// DetectionSampleSize is how many leading bytes are sampled for binary and
// encoding detection.
const DetectionSampleSize = 4096

// logExtensions is the set of file extensions treated as log-like content.
// Compressed extensions are included because rotated logs commonly ship as
// app.log.gz and friends.
var logExtensions = map[string]struct{}{
	".log":   {},
	".txt":   {},
	".csv":   {},
	".json":  {},
	".xml":   {},
	".yaml":  {},
	".yml":   {},
	".ini":   {},
	".conf":  {},
	".cfg":   {},
	".out":   {},
	".err":   {},
	".trace": {},
	".dump":  {},
	".gz":    {},
	".bz2":   {},
	".zip":   {},
}

// compressedExtensions is the fixed set of supported compression formats,
// matched by extension only.
var compressedExtensions = map[string]struct{}{
	".gz":  {},
	".bz2": {},
	".zip": {},
}

// FileInfo is the safety descriptor produced for a single file.
type FileInfo struct {
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	SizeHuman    string    `json:"size_human"`
	IsFile       bool      `json:"is_file"`
	IsCompressed bool      `json:"is_compressed"`
	IsLogFile    bool      `json:"is_log_file"`
	Extension    string    `json:"extension"`
	Modified     time.Time `json:"last_modified"`
	Readable     bool      `json:"readable"`
	IsBinary     bool      `json:"is_binary"`
	Encoding     string    `json:"encoding"`
	Error        string    `json:"error,omitempty"`
	Warnings     []string  `json:"warnings"`

	// Sample holds the leading bytes used for detection so readers can
	// reuse them without rereading the file head.
	Sample []byte `json:"-"`
}

// IsLogFile reports whether the path has a log-like extension.
func IsLogFile(path string) bool {
	_, ok := logExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// IsCompressed reports whether the path has a supported compressed extension.
func IsCompressed(path string) bool {
	_, ok := compressedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// GetFileInfo computes the safety descriptor for a path. It never returns an
// error: failures are carried in the descriptor's Error field so callers can
// surface them inline.
func GetFileInfo(path string) *FileInfo {
	info := &FileInfo{
		Path:     path,
		Warnings: []string{},
	}

	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			info.Error = "File does not exist"
		} else {
			info.Error = err.Error()
		}
		return info
	}

	if abs, err := filepath.Abs(path); err == nil {
		info.Path = abs
	}

	info.Size = stat.Size()
	info.SizeHuman = FormatSize(info.Size)
	info.IsFile = stat.Mode().IsRegular()
	info.IsCompressed = IsCompressed(path)
	info.IsLogFile = IsLogFile(path)
	info.Extension = strings.ToLower(filepath.Ext(path))
	info.Modified = stat.ModTime()

	if info.Size > MaxFileSize {
		info.Warnings = append(info.Warnings, fmt.Sprintf("File too large (%s)", info.SizeHuman))
	} else if info.Size > WarnFileSize {
		info.Warnings = append(info.Warnings, fmt.Sprintf("Large file (%s)", info.SizeHuman))
	}

	if info.IsFile {
		sample, err := readSample(path)
		if err != nil {
			info.Readable = false
			info.IsBinary = true
			info.Encoding = "utf-8"
			info.Warnings = append(info.Warnings, "Binary detection failed")
			return info
		}
		info.Readable = true
		info.Sample = sample
		info.IsBinary = isBinarySample(sample)
		info.Encoding = DetectEncoding(sample)

		if info.IsBinary {
			info.Warnings = append(info.Warnings, "Binary file detected")
		}
	}

	return info
}

// ValidateFileForViewing checks whether a file is suitable for display.
// Returns the validity, a human-readable reason, and the computed descriptor.
func ValidateFileForViewing(path string) (bool, string, *FileInfo) {
	info := GetFileInfo(path)

	if info.Error != "" {
		return false, info.Error, info
	}
	if !info.IsFile {
		return false, "Path is not a file", info
	}
	if !info.Readable {
		return false, "File is not readable", info
	}
	if info.IsBinary {
		return false, "Binary file detected", info
	}
	if info.Size > MaxFileSize {
		return false, fmt.Sprintf("File too large (%s)", info.SizeHuman), info
	}

	return true, "File is valid for viewing", info
}

// readSample reads up to DetectionSampleSize leading bytes.
func readSample(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, DetectionSampleSize)
	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}

// FormatSize renders a byte count as a human-readable size.
func FormatSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%.1f%s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1fTB", value)
}
