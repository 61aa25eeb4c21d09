package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mwinther/protokoll/internal/ansi"
	"github.com/mwinther/protokoll/internal/config"
	"github.com/mwinther/protokoll/internal/safereader"
)

// NewViewCommand creates the view subcommand
func NewViewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Safely print a log file",
		Long: `Read and print a log file after the full safety pipeline: size
check, binary detection, decompression, encoding detection and NUL
sanitization. Embedded ANSI color sequences are re-rendered for the
terminal, converted to HTML with --html, or stripped with --plain.

Warnings (large file, lock contention) are printed to stderr so the
content itself stays clean on stdout.

Examples:
  protokoll view service.log
  protokoll view service.log.gz --max-size 10MB
  protokoll view service.log --html > service.html
  protokoll view service.log --lines 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxSizeFlag, _ := cmd.Flags().GetString("max-size")
			asHTML, _ := cmd.Flags().GetBool("html")
			plain, _ := cmd.Flags().GetBool("plain")
			lines, _ := cmd.Flags().GetInt("lines")
			return runView(cmd, args[0], viewOptions{
				maxSize: maxSizeFlag,
				html:    asHTML,
				plain:   plain,
				lines:   lines,
			})
		},
	}

	cmd.Flags().String("max-size", "", "Refuse files larger than this (e.g. 500KB, 10MB; default 100MB)")
	cmd.Flags().Bool("html", false, "Render ANSI colors as HTML markup")
	cmd.Flags().Bool("plain", false, "Strip ANSI colors instead of rendering them")
	cmd.Flags().Int("lines", 0, "Only show the first N lines")

	return cmd
}

type viewOptions struct {
	maxSize string
	html    bool
	plain   bool
	lines   int
}

func runView(cmd *cobra.Command, path string, opts viewOptions) error {
	cfg := config.LoadDefault()

	maxSize := cfg.MaxFileSize
	if opts.maxSize != "" {
		parsed, err := parseSize(opts.maxSize)
		if err != nil {
			return fmt.Errorf("invalid --max-size: %w", err)
		}
		maxSize = parsed
	}

	output := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	var content string
	var diag safereader.Diagnostics
	ok := false
	if opts.lines > 0 {
		var preview safereader.Preview
		ok, preview, diag = safereader.GetFilePreview(path, opts.lines, 0)
		content = preview.Content
		if ok && preview.Truncated {
			diag.Warnings = append(diag.Warnings,
				fmt.Sprintf("Showing %d of %d lines", preview.Lines, preview.TotalLines))
		}
	} else {
		ok, content, diag = safereader.ReadFileSafe(path, maxSize)
	}

	for _, warning := range diag.Warnings {
		fmt.Fprintf(errOut, "Warning: %s\n", warning)
	}
	if !ok {
		return fmt.Errorf("cannot view %s: %s", path, diag.Error)
	}

	switch {
	case opts.html:
		fmt.Fprintln(output, ansi.ToHTML(content))
	case opts.plain || !colorEnabled(cfg, output):
		fmt.Fprintln(output, stripEscapes(content))
	default:
		renderStyled(output, content)
	}
	return nil
}

// colorEnabled applies the configured color mode to the actual output.
func colorEnabled(cfg *config.Config, output io.Writer) bool {
	switch cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := output.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// renderStyled re-emits converted spans using terminal colors.
func renderStyled(output io.Writer, content string) {
	lines := ansi.Convert(content)
	for _, line := range lines {
		if line.Spans == nil {
			fmt.Fprintln(output, line.Text)
			continue
		}
		for _, span := range line.Spans {
			writeSpan(output, span)
		}
		fmt.Fprintln(output)
	}
}

func writeSpan(output io.Writer, span ansi.Span) {
	if !span.Styled() {
		fmt.Fprint(output, span.Text)
		return
	}
	var c *color.Color
	if r, g, b, ok := hexChannels(span.Foreground); ok {
		c = color.RGB(r, g, b)
	} else {
		c = color.New()
	}
	if r, g, b, ok := hexChannels(span.Background); ok {
		c = c.AddBgRGB(r, g, b)
	}
	if span.Bold {
		c = c.Add(color.Bold)
	}
	c.Fprint(output, span.Text)
}

// hexChannels splits a "#rrggbb" color into 8-bit channels.
func hexChannels(hex string) (r, g, b int, ok bool) {
	if hex == "" {
		return 0, 0, 0, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, false
	}
	r8, g8, b8 := c.RGB255()
	return int(r8), int(g8), int(b8), true
}

// stripEscapes removes all styling, keeping only the visible text.
func stripEscapes(content string) string {
	if !ansi.HasEscapes(content) {
		return content
	}
	lines := ansi.Convert(content)
	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		texts = append(texts, line.Text)
	}
	return strings.Join(texts, "\n")
}

// parseSize parses a human size like "500KB" or "10MB" into bytes. A bare
// number is taken as bytes.
func parseSize(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	multiplier := int64(1)
	for _, unit := range []struct {
		suffix string
		factor int64
	}{
		{"GB", 1024 * 1024 * 1024},
		{"MB", 1024 * 1024},
		{"KB", 1024},
		{"B", 1},
	} {
		if strings.HasSuffix(s, unit.suffix) {
			multiplier = unit.factor
			s = strings.TrimSpace(strings.TrimSuffix(s, unit.suffix))
			break
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized size %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("size must be positive")
	}
	return n * multiplier, nil
}
