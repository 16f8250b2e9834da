package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/cenkalti/dominantcolor"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/ironsheep/allcolors/internal/colorspace"
)

// RGBColor is an 8-bit RGB triple.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBAColor is an 8-bit RGB triple with alpha (0 transparent, 255 opaque).
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor holds hue in degrees (0-359) with saturation and lightness as
// percentages (0-100).
type HSLColor struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// ColorResult is one color in several notations.
type ColorResult struct {
	Hex  string    `json:"hex"` // "#RRGGBB", alpha excluded
	RGB  RGBColor  `json:"rgb"`
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`
}

func newColorResult(r, g, b, a uint8) ColorResult {
	return ColorResult{
		Hex:  colorspace.FromRGB(r, g, b).Hex(),
		RGB:  RGBColor{R: r, G: g, B: b},
		RGBA: RGBAColor{R: r, G: g, B: b, A: a},
		HSL:  toHSL(r, g, b),
	}
}

// toHSL converts through go-colorful, truncating to whole units.
func toHSL(r, g, b uint8) HSLColor {
	h, s, l := colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{
		H: int(h) % 360,
		S: int(s*100 + 1e-9),
		L: int(l*100 + 1e-9),
	}
}

// SampleColor returns the color at (x, y). Coordinates are 0-based from the
// top-left corner; 16-bit images are reduced to 8 bits per channel.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if !(image.Point{X: x, Y: y}).In(bounds) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, a := img.At(x, y).RGBA()
	res := newColorResult(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
	return &res, nil
}

// LabeledPoint is a coordinate to sample, with an optional caller label.
type LabeledPoint struct {
	X     int
	Y     int
	Label string
}

// LabeledColorResult is the sample taken at one LabeledPoint.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult holds samples in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples every point. Any out-of-bounds point fails the
// whole call.
func SampleColorsMulti(img image.Image, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		color, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *color,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// Region is a rectangle with (X1, Y1) inclusive and (X2, Y2) exclusive.
type Region struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

// Rect converts r to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// PaletteMethod selects how DominantColors groups pixels.
type PaletteMethod string

const (
	// MethodFrequency buckets channels to 16 levels and counts pixels.
	MethodFrequency PaletteMethod = "frequency"

	// MethodDominantColor uses github.com/cenkalti/dominantcolor.
	MethodDominantColor PaletteMethod = "dominantcolor"

	// MethodKMeans clusters a pixel sample in RGB with github.com/muesli/kmeans.
	MethodKMeans PaletteMethod = "kmeans"
)

// ErrUnknownMethod is returned for an unrecognized PaletteMethod.
var ErrUnknownMethod = errors.New("unknown palette method")

// kmeansMaxSamples bounds the observations handed to kmeans.
const kmeansMaxSamples = 12000

// ColorFrequency is a palette entry and the share of pixels it covers.
type ColorFrequency struct {
	Hex        string   `json:"hex"`
	Percentage float64  `json:"percentage"` // 0-100
	RGB        RGBColor `json:"rgb"`
}

// DominantColorsResult lists palette entries, most common first.
type DominantColorsResult struct {
	Method PaletteMethod    `json:"method"`
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors extracts up to count representative colors from img, or
// from region when it is non-nil. An empty method means MethodFrequency.
//
// An all-colors mosaic has no repeated pixel, so the frequency method is
// only useful thanks to its quantization; the clustering methods show which
// hues dominate the picture as a whole.
func DominantColors(img image.Image, count int, region *Region, method PaletteMethod) (*DominantColorsResult, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", count)
	}
	if region != nil {
		rect := region.Rect()
		if rect.Empty() || !rect.In(img.Bounds()) {
			return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds",
				region.X1, region.Y1, region.X2, region.Y2)
		}
		img = imaging.Crop(img, rect)
	}
	if method == "" {
		method = MethodFrequency
	}

	var colors []ColorFrequency
	switch method {
	case MethodFrequency:
		colors = frequencyPalette(img)
	case MethodDominantColor:
		colors = dominantPalette(img, count)
	case MethodKMeans:
		var err error
		if colors, err = kmeansPalette(img, count); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	sort.SliceStable(colors, func(i, j int) bool {
		return colors[i].Percentage > colors[j].Percentage
	})
	if len(colors) > count {
		colors = colors[:count]
	}

	return &DominantColorsResult{Method: method, Colors: colors}, nil
}

func frequency(r, g, b uint8, share float64) ColorFrequency {
	return ColorFrequency{
		Hex:        colorspace.FromRGB(r, g, b).Hex(),
		Percentage: share * 100,
		RGB:        RGBColor{R: r, G: g, B: b},
	}
}

func frequencyPalette(img image.Image) []ColorFrequency {
	bounds := img.Bounds()
	counts := make(map[colorspace.Color]int)
	total := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// quantize to 16 levels per channel
			key := colorspace.FromRGB(uint8(r>>8)&0xF0, uint8(g>>8)&0xF0, uint8(b>>8)&0xF0)
			counts[key]++
			total++
		}
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for c, n := range counts {
		colors = append(colors, frequency(uint8(c.R()), uint8(c.G()), uint8(c.B()), float64(n)/float64(total)))
	}
	// map order is random; fix it before the stable sort by share
	sort.Slice(colors, func(i, j int) bool { return colors[i].Hex < colors[j].Hex })
	return colors
}

func dominantPalette(img image.Image, count int) []ColorFrequency {
	found := dominantcolor.FindWeight(img, count)
	colors := make([]ColorFrequency, 0, len(found))
	for _, c := range found {
		colors = append(colors, frequency(c.RGBA.R, c.RGBA.G, c.RGBA.B, c.Weight))
	}
	return colors
}

func kmeansPalette(img image.Image, count int) ([]ColorFrequency, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	step := 1
	if width*height > kmeansMaxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(kmeansMaxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, kmeansMaxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r) / 0xFFFF,
				float64(g) / 0xFFFF,
				float64(bl) / 0xFFFF,
			})
		}
	}
	if len(dataset) == 0 {
		return nil, nil
	}

	cc, err := kmeans.New().Partition(dataset, min(count, len(dataset)))
	if err != nil {
		return nil, fmt.Errorf("kmeans failed: %w", err)
	}

	colors := make([]ColorFrequency, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		r, g, bl := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped().RGB255()
		colors = append(colors, frequency(r, g, bl, float64(len(c.Observations))/float64(len(dataset))))
	}
	return colors, nil
}
