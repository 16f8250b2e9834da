package evaluator

import (
	"math"

	"github.com/ironsheep/allcolors/internal/colorspace"
)

// Brightness is the perceived brightness 0.241R² + 0.691G² + 0.068B².
func Brightness(c colorspace.Color) int {
	r, g, b := float64(c.R()), float64(c.G()), float64(c.B())
	return int(r*r*0.241 + g*g*0.691 + b*b*0.068)
}

// Warmth is red minus blue.
func Warmth(c colorspace.Color) int {
	return c.R() - c.B()
}

// RelativeLuminance uses the Rec. 709 coefficients.
func RelativeLuminance(c colorspace.Color) int {
	return int(0.2126*float64(c.R()) + 0.7152*float64(c.G()) + 0.0722*float64(c.B()))
}

// Luma uses the 0.3/0.59/0.11 weighting.
func Luma(c colorspace.Color) int {
	return int(0.3*float64(c.R()) + 0.59*float64(c.G()) + 0.11*float64(c.B()))
}

// Chroma is the spread between the largest and smallest channel.
func Chroma(c colorspace.Color) int {
	hi, lo := extremes(c)
	return hi - lo
}

// Saturation is 255*(max-min)/(max+min), or 0 for grays.
func Saturation(c colorspace.Color) int {
	hi, lo := extremes(c)
	if hi == lo || hi+lo == 0 {
		return 0
	}
	return 255 * (hi - lo) / (hi + lo)
}

// Hue is atan2(sqrt(3)*(G-B), 2R-G-B) in radians, truncated toward zero.
func Hue(c colorspace.Color) int {
	r, g, b := float64(c.R()), float64(c.G()), float64(c.B())
	return int(math.Atan2(math.Sqrt(3)*(g-b), 2*r-g-b))
}

func extremes(c colorspace.Color) (hi, lo int) {
	r, g, b := c.R(), c.G(), c.B()
	return max(r, g, b), min(r, g, b)
}
