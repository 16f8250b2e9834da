package evaluator

import (
	"errors"
	"strings"
	"testing"

	"github.com/ironsheep/allcolors/internal/colorspace"
)

const (
	black = colorspace.Color(0x000000)
	white = colorspace.Color(0xFFFFFF)
	red   = colorspace.Color(0xFF0000)
	green = colorspace.Color(0x00FF00)
	blue  = colorspace.Color(0x0000FF)
	gray  = colorspace.Color(0x808080)
)

func mustLookup(t *testing.T, name string) Evaluator {
	t.Helper()
	e, err := Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", name, err)
	}
	return e
}

func TestEuclidean_WhiteAgainstBlack(t *testing.T) {
	for _, name := range []string{"min-euclidean", "avg-euclidean"} {
		e := mustLookup(t, name)
		if got := e.Evaluate(white, []colorspace.Color{black}); got != 195075 {
			t.Errorf("%s: got %d, want 195075", name, got)
		}
	}
}

func TestHamming_SelfDistanceZero(t *testing.T) {
	e := mustLookup(t, "min-hamming")
	for _, c := range []colorspace.Color{black, white, red, gray, 0x123456, 0xABCDEF} {
		if got := e.Evaluate(c, []colorspace.Color{c}); got != 0 {
			t.Errorf("hamming(%s, %s) = %d, want 0", c.Hex(), c.Hex(), got)
		}
	}
	if got := Hamming(black, white); got != 24 {
		t.Errorf("hamming(black, white) = %d, want 24", got)
	}
}

func TestAllEvaluators_EmptyNeighbors(t *testing.T) {
	for _, name := range Names() {
		e := mustLookup(t, name)
		for _, c := range []colorspace.Color{black, white, gray} {
			if got := e.Evaluate(c, nil); got != 0 {
				t.Errorf("%s(%s, []) = %d, want 0", name, c.Hex(), got)
			}
		}
	}
}

func TestAllMetrics_SelfDistanceZero(t *testing.T) {
	for _, m := range metrics {
		for _, c := range []colorspace.Color{black, white, red, green, blue, gray, 0x406080} {
			if got := m.metric(c, c); got != 0 {
				t.Errorf("%s(%s, %s) = %d, want 0", m.name, c.Hex(), c.Hex(), got)
			}
		}
	}
}

func TestAllMetrics_NonNegative(t *testing.T) {
	colors, err := colorspace.All(2)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	for _, m := range metrics {
		for _, a := range colors {
			for _, b := range colors {
				if got := m.metric(a, b); got < 0 {
					t.Fatalf("%s(%s, %s) = %d, want >= 0", m.name, a.Hex(), b.Hex(), got)
				}
			}
		}
	}
}

func TestReductions(t *testing.T) {
	neighbors := []colorspace.Color{black, 0x0A0000, 0x140000}
	candidate := colorspace.Color(0x0A0000)

	// distances 10, 0, 10 on the red channel
	if got := Min("t", Taxicab).Evaluate(candidate, neighbors); got != 0 {
		t.Errorf("min: got %d, want 0", got)
	}
	if got := Average("t", Taxicab).Evaluate(candidate, neighbors); got != 6 {
		t.Errorf("avg: got %d, want 6 (20/3 truncated)", got)
	}
}

func TestPairMetrics(t *testing.T) {
	tests := []struct {
		name string
		m    Metric
		a, b colorspace.Color
		want int
	}{
		{"euclidean", EuclideanSquared, 0x0A1400, 0x000000, 500},
		{"taxicab", Taxicab, 0x0A1405, 0x000000, 35},
		{"chebyshev", Chebyshev, 0x0A1405, 0x000000, 20},
		{"hamming", Hamming, 0x000003, 0x000000, 2},
		{"minkowski two channels", Minkowski, 0x000000, 0x0A0A00, 10},
		{"jaccard disjoint", Jaccard, red, blue, 10000},
		{"jaccard both zero", Jaccard, black, black, 0},
		{"jaccard half", Jaccard, 0x000002, 0x000003, 3334},
		{"damerau transposition", DamerauLevenshtein, 12, 21, 1},
		{"damerau substitution", DamerauLevenshtein, 123, 124, 1},
		{"damerau insertion", DamerauLevenshtein, 12, 123, 1},
		{"hellinger", Hellinger, 0x000000, 0x000064, 7},
		{"warmth", Difference(Warmth), red, blue, 510},
		{"chroma", Difference(Chroma), white, black, 0},
		{"saturation gray vs gray", Difference(Saturation), gray, white, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m(tt.a, tt.b); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScalars(t *testing.T) {
	tests := []struct {
		name string
		s    Scalar
		c    colorspace.Color
		want int
	}{
		{"brightness red", Brightness, red, 15671},
		{"brightness black", Brightness, black, 0},
		{"warmth red", Warmth, red, 255},
		{"warmth blue", Warmth, blue, -255},
		{"luminance black", RelativeLuminance, black, 0},
		{"luminance green", RelativeLuminance, green, 182},
		{"luma green", Luma, green, 150},
		{"chroma white", Chroma, white, 0},
		{"chroma black", Chroma, black, 0},
		{"chroma red", Chroma, red, 255},
		{"saturation black", Saturation, black, 0},
		{"saturation gray", Saturation, gray, 0},
		{"saturation white", Saturation, white, 0},
		{"saturation red", Saturation, red, 255},
		{"hue red", Hue, red, 0},
		{"hue green", Hue, green, 2},
		{"hue blue", Hue, blue, -2},
		{"hue gray", Hue, gray, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s(tt.c); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSaturation_AllGrays(t *testing.T) {
	for v := 0; v < 256; v++ {
		c := colorspace.FromRGB(uint8(v), uint8(v), uint8(v))
		if got := Saturation(c); got != 0 {
			t.Errorf("Saturation(%s) = %d, want 0", c.Hex(), got)
		}
	}
}

func TestKullbackLeibler_Asymmetric(t *testing.T) {
	ab := KullbackLeibler(red, gray)
	if ab <= 0 {
		t.Errorf("KL(red, gray) = %d, want > 0", ab)
	}
	if KullbackLeibler(black, white) != 0 {
		t.Errorf("KL of two uniform distributions should be 0")
	}
}

func TestPerceptual_Ordering(t *testing.T) {
	near := colorspace.Color(0xF00000)
	if CIELab(red, near) >= CIELab(red, blue) {
		t.Error("CIELab: dark red should be closer to red than blue is")
	}
	if CIEDE2000(red, near) >= CIEDE2000(red, blue) {
		t.Error("CIEDE2000: dark red should be closer to red than blue is")
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup(Default); err != nil {
		t.Fatalf("default evaluator %q not registered: %v", Default, err)
	}

	_, err := Lookup("avg-nonsense")
	if !errors.Is(err, ErrUnknownEvaluator) {
		t.Errorf("got %v, want ErrUnknownEvaluator", err)
	}

	e := mustLookup(t, "min-chebyshev")
	if e.Name() != "min-chebyshev" {
		t.Errorf("Name: got %q", e.Name())
	}
}

func TestNamesAndDescribe(t *testing.T) {
	names := Names()
	if len(names) != 2*len(metrics) {
		t.Fatalf("got %d names, want %d", len(names), 2*len(metrics))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
	for _, info := range Describe() {
		if !strings.HasPrefix(info.Name, info.Reduction+"-") {
			t.Errorf("%s: reduction prefix %q missing", info.Name, info.Reduction)
		}
		if info.Description == "" {
			t.Errorf("%s: empty description", info.Name)
		}
	}
}
