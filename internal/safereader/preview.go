package safereader

import "strings"

// Preview is a bounded head-of-file excerpt with line accounting.
type Preview struct {
	Content    string `json:"content"`
	Lines      int    `json:"preview_lines"`
	TotalLines int    `json:"total_lines"`
	Truncated  bool   `json:"is_truncated"`
}

// GetFilePreview returns the first maxLines lines of a safe read, truncated
// to maxChars characters. maxChars <= 0 disables the character limit.
func GetFilePreview(path string, maxLines, maxChars int) (bool, Preview, Diagnostics) {
	ok, content, diag := ReadFileSafe(path, 0)
	if !ok {
		return false, Preview{}, diag
	}

	lines := strings.Split(content, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	excerpt := strings.Join(lines, "\n")

	if maxChars > 0 && len(excerpt) > maxChars {
		excerpt = excerpt[:maxChars] + "..."
	}

	preview := Preview{
		Content:    excerpt,
		Lines:      len(lines),
		TotalLines: strings.Count(content, "\n") + 1,
		Truncated:  len(content) > len(excerpt),
	}
	return true, preview, diag
}
