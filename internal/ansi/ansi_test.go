package ansi

import (
	"strings"
	"testing"
)

func TestConvertPlainText(t *testing.T) {
	lines := Convert("plain text")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "plain text" {
		t.Errorf("text = %q", lines[0].Text)
	}
	if lines[0].Spans != nil {
		t.Errorf("expected no spans for plain text, got %v", lines[0].Spans)
	}
}

func TestToHTMLPlainTextUnchanged(t *testing.T) {
	in := "plain text\nsecond line"
	if out := ToHTML(in); out != in {
		t.Errorf("ToHTML(%q) = %q, want input unchanged", in, out)
	}
}

func TestConvertRedThenPlain(t *testing.T) {
	lines := Convert("\x1b[31mRED\x1b[0m plain")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	line := lines[0]
	if line.Text != "RED plain" {
		t.Errorf("text = %q, want %q", line.Text, "RED plain")
	}
	if len(line.Spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %v", len(line.Spans), line.Spans)
	}
	red := line.Spans[0]
	if red.Text != "RED" || red.Foreground != "#cd0000" || red.Bold {
		t.Errorf("first span = %+v, want red RED", red)
	}
	rest := line.Spans[1]
	if rest.Text != " plain" || rest.Styled() {
		t.Errorf("second span = %+v, want unstyled %q", rest, " plain")
	}
}

func TestConvertSpansReproduceText(t *testing.T) {
	inputs := []string{
		"\x1b[1;32mok\x1b[0m done \x1b[33mwarn\x1b[0m",
		"mixed \x1b[44mbg\x1b[49m tail",
		"\x1b[38;2;1;2;3mrgb\x1b[m",
	}
	for _, in := range inputs {
		for _, line := range Convert(in) {
			var joined strings.Builder
			for _, sp := range line.Spans {
				joined.WriteString(sp.Text)
			}
			if joined.String() != line.Text {
				t.Errorf("spans %q do not reproduce text %q", joined.String(), line.Text)
			}
		}
	}
}

func TestConvertBoldAndReset(t *testing.T) {
	lines := Convert("\x1b[1mloud\x1b[22mquiet")
	spans := lines[0].Spans
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %v", spans)
	}
	if !spans[0].Bold || spans[0].Text != "loud" {
		t.Errorf("first span = %+v", spans[0])
	}
	if spans[1].Bold {
		t.Errorf("bold survived code 22: %+v", spans[1])
	}
}

func TestConvertBrightAndBackground(t *testing.T) {
	lines := Convert("\x1b[91;100mx\x1b[0m")
	spans := lines[0].Spans
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %v", spans)
	}
	if spans[0].Foreground != "#ff0000" {
		t.Errorf("foreground = %q, want bright red", spans[0].Foreground)
	}
	if spans[0].Background != "#7f7f7f" {
		t.Errorf("background = %q, want bright black", spans[0].Background)
	}
}

func TestConvertDefaultColorCodes(t *testing.T) {
	lines := Convert("\x1b[31;44ma\x1b[39mb\x1b[49mc")
	spans := lines[0].Spans
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %v", spans)
	}
	if spans[1].Foreground != "" || spans[1].Background == "" {
		t.Errorf("code 39 should clear only foreground: %+v", spans[1])
	}
	if spans[2].Styled() {
		t.Errorf("code 49 should leave span unstyled: %+v", spans[2])
	}
}

func TestConvertDimModifier(t *testing.T) {
	bright := Convert("\x1b[31mx")[0].Spans[0].Foreground
	dim := Convert("\x1b[31;20mx")[0].Spans[0].Foreground
	if dim == bright {
		t.Errorf("dim modifier left color unchanged: %q", dim)
	}
	if !strings.HasPrefix(dim, "#") || len(dim) != 7 {
		t.Errorf("dim color is not a hex color: %q", dim)
	}
}

func TestConvertExtendedColors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"256 palette index", "\x1b[38;5;9mx", "#ff0000"},
		{"256 folds onto palette", "\x1b[38;5;25mx", palette[25%16]},
		{"truecolor", "\x1b[38;2;255;0;0mx", "#ff0000"},
		{"degraded dim", "\x1b[38;20mx", dimGray},
		{"degraded palette", "\x1b[38;3mx", "#cdcd00"},
		{"degraded unknown", "\x1b[38;200mx", "#ffffff"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spans := Convert(tc.input)[0].Spans
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %v", spans)
			}
			if spans[0].Foreground != tc.want {
				t.Errorf("foreground = %q, want %q", spans[0].Foreground, tc.want)
			}
		})
	}
}

func TestConvertExtendedBackground(t *testing.T) {
	spans := Convert("\x1b[48;2;0;0;255mx\x1b[0m")[0].Spans
	if len(spans) != 1 || spans[0].Background != "#0000ff" {
		t.Errorf("spans = %+v, want blue background", spans)
	}
}

func TestConvertStyleCarriesAcrossLines(t *testing.T) {
	lines := Convert("\x1b[32mfirst\nsecond\x1b[0m")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1].Spans[0].Foreground != "#00cd00" {
		t.Errorf("style did not carry to second line: %+v", lines[1].Spans)
	}
}

func TestConvertIgnoresNonSGRSequences(t *testing.T) {
	lines := Convert("\x1b[2Jcleared\x1b[31m red")
	if lines[0].Text != "cleared red" {
		t.Errorf("text = %q, want cursor sequence dropped", lines[0].Text)
	}
}

func TestConvertTruncatedSequence(t *testing.T) {
	lines := Convert("before\x1b[31")
	if lines[0].Text != "before" {
		t.Errorf("text = %q, want truncated sequence dropped", lines[0].Text)
	}
}

func TestToHTMLStyledOutput(t *testing.T) {
	out := ToHTML("\x1b[31mRED\x1b[0m plain")
	if !strings.Contains(out, `<span style="color:#cd0000">RED</span>`) {
		t.Errorf("missing red span in %q", out)
	}
	if !strings.HasSuffix(out, " plain") {
		t.Errorf("unstyled tail should not be wrapped: %q", out)
	}
}

func TestToHTMLEscapesMarkup(t *testing.T) {
	out := ToHTML("\x1b[31m<b>&\x1b[0m")
	if strings.Contains(out, "<b>") {
		t.Errorf("input markup leaked into output: %q", out)
	}
	if !strings.Contains(out, "&lt;b&gt;&amp;") {
		t.Errorf("markup not escaped: %q", out)
	}
}

func TestToHTMLBoldAndBackgroundStyles(t *testing.T) {
	out := ToHTML("\x1b[1;37;44mX\x1b[0m")
	for _, want := range []string{"font-weight:bold", "color:#e5e5e5", "background-color:#0000ee"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestDarken(t *testing.T) {
	if got := darken("#ffffff"); got != "#cccccc" {
		t.Errorf("darken(#ffffff) = %q, want #cccccc", got)
	}
	if got := darken("#000000"); got != "#000000" {
		t.Errorf("darken(#000000) = %q", got)
	}
}

func TestHasEscapes(t *testing.T) {
	if HasEscapes("nothing here") {
		t.Error("false positive")
	}
	if !HasEscapes("x\x1b[0my") {
		t.Error("false negative")
	}
}
