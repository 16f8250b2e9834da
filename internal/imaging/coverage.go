package imaging

import (
	"image"

	"github.com/ironsheep/allcolors/internal/colorspace"
)

// CoverageReport tells whether an image holds every color of a color space
// exactly once.
type CoverageReport struct {
	Bits     int `json:"bits"`
	Expected int `json:"expected"` // 2^(3*bits)
	Pixels   int `json:"pixels"`
	Distinct int `json:"distinct"` // distinct in-space colors found

	// Missing counts colors of the space that never appear.
	Missing int `json:"missing"`

	// Duplicates counts repeated occurrences of non-black colors. Repeated
	// black is reported in BlackPixels instead, because unset cells of an
	// oversized canvas render black.
	Duplicates  int `json:"duplicates"`
	BlackPixels int `json:"black_pixels"`

	// OffGrid counts pixels whose channels are not representable with bits
	// per channel, such as pixels altered by lossy compression.
	OffGrid int `json:"off_grid"`

	// Complete is true when every color appears and nothing else is wrong
	// apart from black padding.
	Complete bool `json:"complete"`

	// Exact is true when Complete holds and the image has no padding.
	Exact bool `json:"exact"`
}

// VerifyCoverage checks img against the color space with the given bits per
// channel.
func VerifyCoverage(img image.Image, bits int) (*CoverageReport, error) {
	if err := colorspace.ValidateBits(bits); err != nil {
		return nil, err
	}

	// channel values of the space only use the high bits
	low := uint8(0xFF >> bits)
	seen := make([]uint64, (1<<24)/64)

	report := &CoverageReport{Bits: bits, Expected: colorspace.Count(bits)}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			report.Pixels++
			c := colorspace.FromColor(img.At(x, y))
			if c == 0 {
				report.BlackPixels++
			}
			if uint8(c.R())&low != 0 || uint8(c.G())&low != 0 || uint8(c.B())&low != 0 {
				report.OffGrid++
				continue
			}
			word, bit := c/64, uint64(1)<<(c%64)
			if seen[word]&bit != 0 {
				if c != 0 {
					report.Duplicates++
				}
				continue
			}
			seen[word] |= bit
			report.Distinct++
		}
	}

	report.Missing = report.Expected - report.Distinct
	report.Complete = report.Missing == 0 && report.Duplicates == 0 && report.OffGrid == 0
	report.Exact = report.Complete && report.Pixels == report.Expected
	return report, nil
}
