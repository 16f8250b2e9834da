package evaluator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ironsheep/allcolors/internal/colorspace"
)

// Evaluator scores how well a candidate color fits among the colors already
// placed around a position. Lower scores are better.
//
// Implementations must return 0 for an empty neighbor list and must never
// panic on degenerate input.
type Evaluator interface {
	Evaluate(c colorspace.Color, neighbors []colorspace.Color) int
	Name() string
}

// Metric compares two colors. Smaller values mean more similar.
type Metric func(a, b colorspace.Color) int

// Scalar maps a single color to a number, such as its brightness.
type Scalar func(c colorspace.Color) int

// Difference turns a scalar property into a metric: |s(a) - s(b)|.
func Difference(s Scalar) Metric {
	return func(a, b colorspace.Color) int {
		return abs(s(a) - s(b))
	}
}

// Reduction selects how per-neighbor metric values are combined.
type Reduction int

const (
	// ReduceMin keeps the best (smallest) value over all neighbors.
	ReduceMin Reduction = iota
	// ReduceAverage takes the integer-truncated mean over all neighbors.
	ReduceAverage
)

func (r Reduction) String() string {
	switch r {
	case ReduceAverage:
		return "avg"
	default:
		return "min"
	}
}

type reduced struct {
	name   string
	metric Metric
	reduce Reduction
}

// Min returns an evaluator scoring a candidate by its closest neighbor.
func Min(name string, m Metric) Evaluator {
	return &reduced{name: name, metric: m, reduce: ReduceMin}
}

// Average returns an evaluator scoring a candidate by the mean metric value
// over all neighbors, truncated toward zero.
func Average(name string, m Metric) Evaluator {
	return &reduced{name: name, metric: m, reduce: ReduceAverage}
}

func (e *reduced) Name() string { return e.name }

func (e *reduced) Evaluate(c colorspace.Color, neighbors []colorspace.Color) int {
	if len(neighbors) == 0 {
		return 0
	}

	switch e.reduce {
	case ReduceAverage:
		acc := 0
		for _, n := range neighbors {
			acc += e.metric(c, n)
		}
		return acc / len(neighbors)
	default:
		best := e.metric(c, neighbors[0])
		for _, n := range neighbors[1:] {
			if v := e.metric(c, n); v < best {
				best = v
			}
		}
		return best
	}
}

// Default is the evaluator used when none is configured.
const Default = "avg-euclidean"

// ErrUnknownEvaluator is returned by Lookup for names not in the library.
var ErrUnknownEvaluator = errors.New("unknown evaluator")

// metrics is the fixed library. Each entry is registered once per reduction
// as "<reduction>-<name>".
var metrics = []struct {
	name        string
	description string
	metric      Metric
}{
	{"euclidean", "squared Euclidean RGB distance", EuclideanSquared},
	{"taxicab", "Manhattan RGB distance", Taxicab},
	{"chebyshev", "largest per-channel difference", Chebyshev},
	{"hamming", "number of differing bits in the packed value", Hamming},
	{"minkowski", "Minkowski RGB distance, p=8", Minkowski},
	{"jaccard", "Jaccard distance of the packed values' AND/OR, x10000", Jaccard},
	{"damerau-levenshtein", "edit distance of the decimal packed values", DamerauLevenshtein},
	{"hellinger", "Hellinger distance over channel square roots", Hellinger},
	{"kullback-leibler", "KL divergence of channel distributions, x10000", KullbackLeibler},
	{"brightness", "difference in perceived brightness", Difference(Brightness)},
	{"warmth", "difference in red minus blue", Difference(Warmth)},
	{"luminance", "difference in relative luminance", Difference(RelativeLuminance)},
	{"luma", "difference in luma", Difference(Luma)},
	{"chroma", "difference in chroma", Difference(Chroma)},
	{"saturation", "difference in saturation", Difference(Saturation)},
	{"hue", "difference in hue angle (radians, truncated)", Difference(Hue)},
	{"cielab", "CIE76 Lab distance, x1000", CIELab},
	{"ciede2000", "CIEDE2000 distance, x1000", CIEDE2000},
}

// Info describes a registered evaluator.
type Info struct {
	Name        string `json:"name"`
	Metric      string `json:"metric"`
	Reduction   string `json:"reduction"`
	Description string `json:"description"`
}

var (
	registry = make(map[string]Evaluator)
	infos    []Info
)

func init() {
	for _, m := range metrics {
		for _, r := range []Reduction{ReduceMin, ReduceAverage} {
			name := r.String() + "-" + m.name
			registry[name] = &reduced{name: name, metric: m.metric, reduce: r}
			infos = append(infos, Info{
				Name:        name,
				Metric:      m.name,
				Reduction:   r.String(),
				Description: m.description,
			})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
}

// Lookup returns the library evaluator with the given name.
func Lookup(name string) (Evaluator, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
	}
	return e, nil
}

// Names returns every registered evaluator name in sorted order.
func Names() []string {
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}

// Describe returns metadata for every registered evaluator, sorted by name.
func Describe() []Info {
	out := make([]Info, len(infos))
	copy(out, infos)
	return out
}
