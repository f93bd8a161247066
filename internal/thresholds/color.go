package thresholds

import (
	"fmt"
	"math"

	"github.com/kpumuk/nodescope/internal/mathutil"
)

// RGB is an 8-bit per channel color. It encodes to JSON as [r, g, b].
type RGB [3]uint8

// Base palette.
var (
	ColorIdeal    = RGB{0, 170, 0}
	ColorModerate = RGB{255, 170, 0}
	ColorExtreme  = RGB{255, 0, 0}
	ColorUnknown  = RGB{100, 100, 100}
)

// ZoneColor returns the base color of a zone.
func ZoneColor(z Zone) RGB {
	switch z {
	case ZoneIdeal:
		return ColorIdeal
	case ZoneModerate:
		return ColorModerate
	case ZoneExtreme:
		return ColorExtreme
	default:
		return ColorUnknown
	}
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// RGBA returns a CSS rgba() color with the given alpha.
func (c RGB) RGBA(alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c[0], c[1], c[2], alpha)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return c.Hex()
}

// Interpolate blends from a to b by factor. Factors at or below 0 return a,
// at or above 1 return b; channels are rounded half up.
func Interpolate(a, b RGB, factor float64) RGB {
	if factor <= 0 || math.IsNaN(factor) {
		return a
	}
	if factor >= 1 {
		return b
	}
	var out RGB
	for i := range out {
		out[i] = uint8(math.Floor(mathutil.Lerp(float64(a[i]), float64(b[i]), factor) + 0.5))
	}
	return out
}

func blend(v, low, high float64, from, to RGB) RGB {
	return Interpolate(from, to, mathutil.Ratio(v, low, high))
}
