package ansi

import "github.com/lucasb-eyer/go-colorful"

// palette is the fixed 16-entry terminal color table (standard then bright).
var palette = [16]string{
	"#000000", // black
	"#cd0000", // red
	"#00cd00", // green
	"#cdcd00", // yellow
	"#0000ee", // blue
	"#cd00cd", // magenta
	"#00cdcd", // cyan
	"#e5e5e5", // white
	"#7f7f7f", // bright black
	"#ff0000", // bright red
	"#00ff00", // bright green
	"#ffff00", // bright yellow
	"#5c5cff", // bright blue
	"#ff00ff", // bright magenta
	"#00ffff", // bright cyan
	"#ffffff", // bright white
}

// dimGray is the neutral color used for the non-standard "dim" index.
const dimGray = "#d3d3d3"

// dimFactor scales each channel when a color carries a dim modifier.
const dimFactor = 0.8

// darken returns the color with every channel scaled by dimFactor.
func darken(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return colorful.Color{R: c.R * dimFactor, G: c.G * dimFactor, B: c.B * dimFactor}.Hex()
}

// rgbHex synthesizes a hex color from literal 8-bit channel values.
func rgbHex(r, g, b int) string {
	return colorful.Color{
		R: float64(clampChannel(r)) / 255.0,
		G: float64(clampChannel(g)) / 255.0,
		B: float64(clampChannel(b)) / 255.0,
	}.Hex()
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// paletteColor maps a color index through the 16-entry palette, folding
// larger 256-color indexes onto it.
func paletteColor(index int) string {
	if index < 0 {
		return palette[15]
	}
	return palette[index%16]
}

// degradedColor is the best-effort mapping for non-standard extended color
// forms: the dim index becomes a neutral light gray, palette indexes map
// through, everything else is white.
func degradedColor(index int) string {
	switch {
	case index == 20:
		return dimGray
	case index >= 0 && index <= 15:
		return palette[index]
	default:
		return palette[15]
	}
}
