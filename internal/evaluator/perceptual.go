package evaluator

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/allcolors/internal/colorspace"
)

// perceptualScale turns the fractional Lab distances into integer scores
// without collapsing nearby colors onto the same value.
const perceptualScale = 1000

func toColorful(c colorspace.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R()) / 255.0,
		G: float64(c.G()) / 255.0,
		B: float64(c.B()) / 255.0,
	}
}

// CIELab returns the CIE76 distance in L*a*b* space, scaled by 1000.
func CIELab(a, b colorspace.Color) int {
	return int(toColorful(a).DistanceLab(toColorful(b)) * perceptualScale)
}

// CIEDE2000 returns the CIEDE2000 color difference, scaled by 1000.
func CIEDE2000(a, b colorspace.Color) int {
	return int(toColorful(a).DistanceCIEDE2000(toColorful(b)) * perceptualScale)
}
