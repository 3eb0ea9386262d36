package scheduler

import (
	"fmt"
	"regexp"
	"strconv"
)

// Palette lists the colours offered to new trainees.
var Palette = []string{"#4a90d9", "#2ecc71", "#e74c3c", "#f39c12", "#9b59b6", "#1abc9c", "#34495e"}

// GradientShift is the channel offset applied to a trainee colour to produce
// the end of its gradient.
const GradientShift = -20

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidColor reports whether c is a #rrggbb colour.
func ValidColor(c string) bool {
	return hexColor.MatchString(c)
}

// PaletteColor picks a palette colour for the n-th trainee.
func PaletteColor(n int) string {
	if n < 0 {
		n = -n
	}
	return Palette[n%len(Palette)]
}

// DarkenColor shifts every channel of a #rrggbb colour by amount, clamping to
// the valid range. Malformed colours are returned unchanged.
func DarkenColor(color string, amount int) string {
	if !ValidColor(color) {
		return color
	}
	channels := [3]int{}
	for i := range channels {
		v, _ := strconv.ParseUint(color[1+2*i:3+2*i], 16, 8)
		channels[i] = clamp(int(v)+amount, 0, 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", channels[0], channels[1], channels[2])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
