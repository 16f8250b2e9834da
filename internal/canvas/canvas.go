// Package canvas holds the grid the placer writes colors into.
//
// A Canvas tracks which cells have been placed in a bitmap separate from the
// color values, so a deliberately placed black pixel is never mistaken for an
// empty cell. Unset cells still read back as black through the image.Image
// interface, matching how the finished picture is encoded.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/bits"

	"github.com/ironsheep/allcolors/internal/colorspace"
	"github.com/ironsheep/allcolors/internal/geometry"
)

// ErrAlreadyPlaced is returned when a cell is written twice.
var ErrAlreadyPlaced = errors.New("cell already placed")

// Canvas is a width x height grid of optional colors.
//
// Canvas implements image.Image so it can be handed straight to an encoder.
// It is not safe for concurrent mutation; concurrent reads are fine while no
// Place call is in flight.
type Canvas struct {
	width  int
	height int
	pix    []colorspace.Color
	placed []uint64 // one bit per cell
	count  int
}

// New creates an empty canvas.
func New(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]colorspace.Color, width*height),
		placed: make([]uint64, (width*height+63)/64),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Len returns the number of placed cells.
func (c *Canvas) Len() int { return c.count }

// Capacity returns the number of cells.
func (c *Canvas) Capacity() int { return c.width * c.height }

// Place stores col at p. Each cell can be placed exactly once.
func (c *Canvas) Place(p geometry.Pixel, col colorspace.Color) error {
	if !p.In(c.width, c.height) {
		return fmt.Errorf("pixel (%d,%d) outside canvas %dx%d", p.X, p.Y, c.width, c.height)
	}
	i := p.Index(c.width)
	if c.isSet(i) {
		return fmt.Errorf("%w: (%d,%d)", ErrAlreadyPlaced, p.X, p.Y)
	}
	c.pix[i] = col
	c.placed[i/64] |= 1 << (i % 64)
	c.count++
	return nil
}

// IsPlaced reports whether p holds a placed color. Out-of-bounds pixels are
// never placed.
func (c *Canvas) IsPlaced(p geometry.Pixel) bool {
	if !p.In(c.width, c.height) {
		return false
	}
	return c.isSet(p.Index(c.width))
}

func (c *Canvas) isSet(i int) bool {
	return c.placed[i/64]&(1<<(i%64)) != 0
}

// Get returns the color at p and whether it has been placed.
func (c *Canvas) Get(p geometry.Pixel) (colorspace.Color, bool) {
	if !p.In(c.width, c.height) {
		return 0, false
	}
	i := p.Index(c.width)
	return c.pix[i], c.isSet(i)
}

// Packed returns the packed value at p, 0 for unset cells.
func (c *Canvas) Packed(p geometry.Pixel) colorspace.Color {
	col, _ := c.Get(p)
	return col
}

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model { return colorspace.Model }

// Bounds implements image.Image.
func (c *Canvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.width, c.height) }

// At implements image.Image. Unset cells are black.
func (c *Canvas) At(x, y int) color.Color {
	return c.Packed(geometry.Pixel{X: x, Y: y})
}

// NRGBA renders the canvas into a new opaque *image.NRGBA.
func (c *Canvas) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(c.Bounds())
	for i, col := range c.pix {
		o := i * 4
		img.Pix[o] = uint8(col.R())
		img.Pix[o+1] = uint8(col.G())
		img.Pix[o+2] = uint8(col.B())
		img.Pix[o+3] = 0xFF
	}
	return img
}

// Placed returns every placed pixel in row-major order.
func (c *Canvas) Placed() []geometry.Pixel {
	out := make([]geometry.Pixel, 0, c.count)
	for w, word := range c.placed {
		for word != 0 {
			i := w*64 + bits.TrailingZeros64(word)
			out = append(out, geometry.FromIndex(i, c.width))
			word &= word - 1
		}
	}
	return out
}
