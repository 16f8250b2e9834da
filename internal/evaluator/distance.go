package evaluator

import (
	"math"
	"math/bits"
	"strconv"

	"github.com/ironsheep/allcolors/internal/colorspace"
)

func channelDeltas(a, b colorspace.Color) (dr, dg, db int) {
	return a.R() - b.R(), a.G() - b.G(), a.B() - b.B()
}

// EuclideanSquared returns the squared Euclidean distance in RGB space.
func EuclideanSquared(a, b colorspace.Color) int {
	dr, dg, db := channelDeltas(a, b)
	return dr*dr + dg*dg + db*db
}

// Taxicab returns the sum of absolute channel differences.
func Taxicab(a, b colorspace.Color) int {
	dr, dg, db := channelDeltas(a, b)
	return abs(dr) + abs(dg) + abs(db)
}

// Chebyshev returns the largest absolute channel difference.
func Chebyshev(a, b colorspace.Color) int {
	dr, dg, db := channelDeltas(a, b)
	return max(abs(dr), abs(dg), abs(db))
}

// Hamming counts the differing bits of the packed values.
func Hamming(a, b colorspace.Color) int {
	return bits.OnesCount32(uint32(a ^ b))
}

const minkowskiP = 8.0

// Minkowski returns the Minkowski distance of order 8, truncated.
func Minkowski(a, b colorspace.Color) int {
	dr, dg, db := channelDeltas(a, b)
	sum := math.Pow(float64(abs(dr)), minkowskiP) +
		math.Pow(float64(abs(dg)), minkowskiP) +
		math.Pow(float64(abs(db)), minkowskiP)
	return int(math.Pow(sum, 1/minkowskiP))
}

// Jaccard returns 10000 * (1 - (a&b)/(a|b)) over the packed integers.
// Identical colors score 0; two zero colors score 0.
func Jaccard(a, b colorspace.Color) int {
	union := uint32(a | b)
	if union == 0 {
		return 0
	}
	index := float64(uint32(a&b)) / float64(union)
	return 10000 - int(10000*index)
}

// DamerauLevenshtein returns the optimal string alignment distance between
// the decimal representations of the packed values.
func DamerauLevenshtein(a, b colorspace.Color) int {
	return osaDistance(strconv.Itoa(int(a)), strconv.Itoa(int(b)))
}

func osaDistance(s, t string) int {
	n, m := len(s), len(t)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}

	d := make([][]int, n+1)
	for i := range d {
		d[i] = make([]int, m+1)
		d[i][0] = i
	}
	for j := 0; j <= m; j++ {
		d[0][j] = j
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost := 1
			if s[i-1] == t[j-1] {
				cost = 0
			}
			d[i][j] = min(
				d[i-1][j]+1,
				d[i][j-1]+1,
				d[i-1][j-1]+cost,
			)
			if i > 1 && j > 1 && s[i-1] == t[j-2] && s[i-2] == t[j-1] {
				d[i][j] = min(d[i][j], d[i-2][j-2]+cost)
			}
		}
	}
	return d[n][m]
}

// Hellinger returns the Hellinger distance over the channel values treated as
// unnormalized densities: sqrt(sum((sqrt(a_i) - sqrt(b_i))^2)) / sqrt(2).
func Hellinger(a, b colorspace.Color) int {
	dr := math.Sqrt(float64(a.R())) - math.Sqrt(float64(b.R()))
	dg := math.Sqrt(float64(a.G())) - math.Sqrt(float64(b.G()))
	db := math.Sqrt(float64(a.B())) - math.Sqrt(float64(b.B()))
	return int(math.Sqrt(dr*dr+dg*dg+db*db) / math.Sqrt2)
}

// KullbackLeibler approximates the KL divergence D(a||b) of the two colors'
// channel distributions, scaled by 10000.
//
// Each channel is smoothed by +1 so black and single-channel colors still
// form valid distributions with no zero terms.
func KullbackLeibler(a, b colorspace.Color) int {
	p := channelDistribution(a)
	q := channelDistribution(b)

	var d float64
	for i := range p {
		d += p[i] * math.Log(p[i]/q[i])
	}
	if d < 0 {
		// rounding can dip just below zero for identical inputs
		return 0
	}
	return int(10000 * d)
}

func channelDistribution(c colorspace.Color) [3]float64 {
	r := float64(c.R() + 1)
	g := float64(c.G() + 1)
	b := float64(c.B() + 1)
	sum := r + g + b
	return [3]float64{r / sum, g / sum, b / sum}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
