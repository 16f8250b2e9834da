package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"gonum.org/v1/gonum/stat"
)

// EdgeThreshold is the Sobel magnitude (0-255) above which a pixel counts as
// an edge.
const EdgeThreshold = 64

// SmoothnessResult summarizes the Sobel gradient of an image. A well grown
// mosaic shows low mean gradient and few edges; a random shuffle shows the
// opposite.
type SmoothnessResult struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	MeanGradient float64 `json:"mean_gradient"`
	StdDev       float64 `json:"std_dev"`
	EdgeFraction float64 `json:"edge_fraction"` // 0-1
}

// Smoothness runs a Sobel filter over img and reports gradient statistics.
func Smoothness(img image.Image) *SmoothnessResult {
	b := img.Bounds()
	res := &SmoothnessResult{Width: b.Dx(), Height: b.Dy()}
	if b.Empty() {
		return res
	}

	var sobel image.Image = effect.Sobel(effect.Grayscale(img))
	sb := sobel.Bounds()
	mags := make([]float64, 0, sb.Dx()*sb.Dy())
	edges := 0
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		for x := sb.Min.X; x < sb.Max.X; x++ {
			// gray input, so every channel holds the same magnitude
			r, _, _, _ := sobel.At(x, y).RGBA()
			m := r >> 8
			if m > EdgeThreshold {
				edges++
			}
			mags = append(mags, float64(m))
		}
	}

	res.MeanGradient, res.StdDev = meanStdDev(mags)
	res.EdgeFraction = float64(edges) / float64(len(mags))
	return res
}

// meanStdDev wraps stat.MeanStdDev, reporting a zero deviation for fewer
// than two samples.
func meanStdDev(x []float64) (mean, std float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}
