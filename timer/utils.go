package timer

import (
	"fmt"
	"math"
)

// FormatTime converts a number of seconds into a hh:mm:ss string format.
func FormatTime(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, sec/60%60, sec%60)
}

// Fraction is left/limit clamped to [0, 1]. A non-positive limit or a NaN
// input yields 0.
func Fraction(left, limit float64) float64 {
	if limit <= 0 || math.IsNaN(left) || math.IsNaN(limit) {
		return 0
	}
	return math.Max(0, math.Min(1, left/limit))
}
