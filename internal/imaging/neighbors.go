package imaging

import (
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/allcolors/internal/colorspace"
	"github.com/ironsheep/allcolors/internal/evaluator"
)

// maxNeighborPixels bounds the pixels visited by NeighborStats; larger
// images are sampled on a regular grid.
const maxNeighborPixels = 1 << 20

// NeighborStatsResult describes the distribution of distances between
// horizontally and vertically adjacent pixels.
type NeighborStatsResult struct {
	Evaluator string  `json:"evaluator"`
	Pairs     int     `json:"pairs"`
	Step      int     `json:"step"` // sampling stride, 1 when every pixel is visited
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std_dev"`
	Median    float64 `json:"median"`
	P90       float64 `json:"p90"`
	Max       float64 `json:"max"`
}

// NeighborStats scores every adjacent pixel pair of img with eval, treating
// the right or lower pixel as the single neighbor of the other.
func NeighborStats(img image.Image, eval evaluator.Evaluator) *NeighborStatsResult {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	step := 1
	if w*h > maxNeighborPixels {
		step = int(math.Sqrt(float64(w*h)/float64(maxNeighborPixels))) + 1
	}

	res := &NeighborStatsResult{Evaluator: eval.Name(), Step: step}
	scores := make([]float64, 0, 2*(w/step+1)*(h/step+1))
	nb := make([]colorspace.Color, 1)
	at := func(x, y int) colorspace.Color { return colorspace.FromColor(img.At(x, y)) }

	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := at(x, y)
			if x+1 < b.Max.X {
				nb[0] = at(x+1, y)
				scores = append(scores, float64(eval.Evaluate(c, nb)))
			}
			if y+1 < b.Max.Y {
				nb[0] = at(x, y+1)
				scores = append(scores, float64(eval.Evaluate(c, nb)))
			}
		}
	}

	res.Pairs = len(scores)
	if res.Pairs == 0 {
		return res
	}

	res.Mean, res.StdDev = meanStdDev(scores)
	sort.Float64s(scores)
	res.Median = stat.Quantile(0.5, stat.Empirical, scores, nil)
	res.P90 = stat.Quantile(0.9, stat.Empirical, scores, nil)
	res.Max = floats.Max(scores)
	return res
}
