// Package ansi converts ANSI SGR escape sequences in log text into styled
// spans and HTML markup. Only the color and bold subset of SGR is
// interpreted; unknown codes are ignored so partially mangled sequences
// degrade to plain text instead of failing.
package ansi

import (
	"html"
	"strconv"
	"strings"
)

// escapePrefix is the cheap marker used to skip conversion work entirely
// when input carries no escape sequences at all.
const escapePrefix = "\x1b["

// Span is a run of text with a single style.
type Span struct {
	Text       string `json:"text"`
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`
	Bold       bool   `json:"bold,omitempty"`
}

// Styled reports whether the span carries any style at all.
func (s Span) Styled() bool {
	return s.Foreground != "" || s.Background != "" || s.Bold
}

// Line is one line of input with its escape sequences stripped and the
// visible text broken into styled spans. Concatenating the span texts
// reproduces Text exactly. A line that needed no styling has nil Spans.
type Line struct {
	Text  string `json:"text"`
	Spans []Span `json:"spans,omitempty"`
}

// style is the running SGR state while scanning a line. Style carries
// across lines within one Convert call, matching terminal behavior.
type style struct {
	fg   string
	bg   string
	bold bool
}

func (st style) span(text string) Span {
	return Span{Text: text, Foreground: st.fg, Background: st.bg, Bold: st.bold}
}

// HasEscapes reports whether text contains at least one escape introducer.
func HasEscapes(text string) bool {
	return strings.Contains(text, escapePrefix)
}

// Convert splits text into lines and styled spans. Input without any
// escape sequences is passed through with no span work at all.
func Convert(text string) []Line {
	raw := splitLines(text)
	lines := make([]Line, 0, len(raw))
	if !HasEscapes(text) {
		for _, l := range raw {
			lines = append(lines, Line{Text: l})
		}
		return lines
	}
	var st style
	for _, l := range raw {
		var line Line
		line, st = convertLine(l, st)
		lines = append(lines, line)
	}
	return lines
}

// ToHTML renders text with escape sequences as HTML, one converted line
// per output line. Text without escape sequences is returned unchanged.
func ToHTML(text string) string {
	if !HasEscapes(text) {
		return text
	}
	lines := Convert(text)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, lineHTML(line))
	}
	return strings.Join(out, "\n")
}

func lineHTML(line Line) string {
	if line.Spans == nil {
		return html.EscapeString(line.Text)
	}
	var b strings.Builder
	for _, sp := range line.Spans {
		escaped := html.EscapeString(sp.Text)
		if !sp.Styled() {
			b.WriteString(escaped)
			continue
		}
		var css []string
		if sp.Foreground != "" {
			css = append(css, "color:"+sp.Foreground)
		}
		if sp.Background != "" {
			css = append(css, "background-color:"+sp.Background)
		}
		if sp.Bold {
			css = append(css, "font-weight:bold")
		}
		b.WriteString(`<span style="` + strings.Join(css, ";") + `">`)
		b.WriteString(escaped)
		b.WriteString("</span>")
	}
	return b.String()
}

// convertLine scans one line, emitting a span for every run of text
// between escape sequences, and returns the style in effect at the end.
func convertLine(line string, st style) (Line, style) {
	if !HasEscapes(line) {
		return Line{Text: line}, st
	}
	var text strings.Builder
	spans := []Span{}
	rest := line
	for {
		idx := strings.Index(rest, escapePrefix)
		if idx < 0 {
			if rest != "" {
				spans = append(spans, st.span(rest))
				text.WriteString(rest)
			}
			break
		}
		if idx > 0 {
			seg := rest[:idx]
			spans = append(spans, st.span(seg))
			text.WriteString(seg)
		}
		rest = rest[idx+len(escapePrefix):]
		params, tail, ok := splitSequence(rest)
		if !ok {
			// Truncated or non-SGR sequence: drop the introducer and
			// keep scanning so the remaining text still renders.
			rest = tail
			continue
		}
		st = applyCodes(st, parseCodes(params))
		rest = tail
	}
	return Line{Text: text.String(), Spans: spans}, st
}

// splitSequence consumes the body of an escape sequence whose introducer
// has already been removed. It returns the parameter bytes and the input
// remaining after the terminator. ok is false when the sequence is not a
// complete SGR sequence; tail then restarts after the first byte that
// cannot belong to one.
func splitSequence(s string) (params, tail string, ok bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == 'm' {
			return s[:i], s[i+1:], true
		}
		if (c < '0' || c > '9') && c != ';' {
			// Some other CSI sequence; swallow its final byte.
			return "", s[i+1:], false
		}
	}
	return "", "", false
}

// parseCodes turns a parameter string like "1;31" into integer codes.
// An empty parameter string means reset, expressed as a single 0.
func parseCodes(params string) []int {
	if params == "" {
		return []int{0}
	}
	parts := strings.Split(params, ";")
	codes := make([]int, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			codes = append(codes, 0)
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		codes = append(codes, n)
	}
	return codes
}

// applyCodes folds a parameter list into the running style. The cursor
// moves past extra tokens consumed by extended color forms so a single
// sequence can mix attributes and colors.
func applyCodes(st style, codes []int) style {
	for cur := 0; cur < len(codes); cur++ {
		code := codes[cur]
		switch {
		case code == 0:
			st = style{}
		case code == 1:
			st.bold = true
		case code == 22:
			st.bold = false
		case code == 39:
			st.fg = ""
		case code == 49:
			st.bg = ""
		case code >= 30 && code <= 37:
			st.fg = palette[code-30]
			if cur+1 < len(codes) && codes[cur+1] == 20 {
				st.fg = darken(st.fg)
				cur++
			}
		case code >= 90 && code <= 97:
			st.fg = palette[code-90+8]
			if cur+1 < len(codes) && codes[cur+1] == 20 {
				st.fg = darken(st.fg)
				cur++
			}
		case code >= 40 && code <= 47:
			st.bg = palette[code-40]
		case code >= 100 && code <= 107:
			st.bg = palette[code-100+8]
		case code == 38:
			st.fg, cur = extendedColor(codes, cur)
		case code == 48:
			st.bg, cur = extendedColor(codes, cur)
		}
	}
	return st
}

// extendedColor resolves a 38/48 extended color starting at cur and
// returns the color plus the index of the last token it consumed.
func extendedColor(codes []int, cur int) (string, int) {
	if cur+1 >= len(codes) {
		return palette[15], cur
	}
	switch codes[cur+1] {
	case 5:
		if cur+2 < len(codes) {
			return paletteColor(codes[cur+2]), cur + 2
		}
		return palette[15], cur + 1
	case 2:
		if cur+4 < len(codes) {
			return rgbHex(codes[cur+2], codes[cur+3], codes[cur+4]), cur + 4
		}
		return palette[15], len(codes) - 1
	default:
		// Degraded single-argument form emitted by some tools.
		return degradedColor(codes[cur+1]), cur + 1
	}
}

// splitLines breaks text into lines without the trailing newline bytes.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
