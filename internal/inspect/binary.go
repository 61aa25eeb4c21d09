package inspect

import "bytes"

// Binary classification thresholds: a sample is binary when NUL bytes
// exceed a quarter of it, or when printable bytes fall under 65%.
const (
	nullByteRatioLimit    = 0.25
	printableRatioMinimum = 0.65
)

// isBinarySample classifies a leading byte sample as binary or text.
// An empty sample is text.
func isBinarySample(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}

	nullCount := bytes.Count(sample, []byte{0})
	if float64(nullCount) > float64(len(sample))*nullByteRatioLimit {
		return true
	}

	return printableRatio(sample) < printableRatioMinimum
}

// printableRatio is the share of bytes in the printable ASCII range, with
// tab, newline and carriage return counted as printable. An empty sample
// is fully printable.
func printableRatio(sample []byte) float64 {
	if len(sample) == 0 {
		return 1.0
	}

	printable := 0
	for _, b := range sample {
		if (b >= 32 && b <= 126) || b == '\t' || b == '\n' || b == '\r' {
			printable++
		}
	}
	return float64(printable) / float64(len(sample))
}
