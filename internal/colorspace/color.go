package colorspace

import (
	"fmt"
	"image/color"
)

// Channel masks for the packed 0xRRGGBB layout.
const (
	RedMask   = 0xFF0000
	GreenMask = 0x00FF00
	BlueMask  = 0x0000FF
)

// Color is a 24-bit RGB color packed as 0xRRGGBB.
type Color uint32

// FromRGB packs 8-bit channel values into a Color.
func FromRGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// FromColor converts any color.Color to a packed Color, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return FromRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// R returns the red channel (0-255).
func (c Color) R() int { return int(c&RedMask) >> 16 }

// G returns the green channel (0-255).
func (c Color) G() int { return int(c&GreenMask) >> 8 }

// B returns the blue channel (0-255).
func (c Color) B() int { return int(c & BlueMask) }

// NRGBA returns the opaque color.NRGBA equivalent.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c.R()), G: uint8(c.G()), B: uint8(c.B()), A: 255}
}

// RGBA implements color.Color. Every packed color is fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Hex formats the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
}

// Model converts arbitrary colors to packed Colors.
var Model color.Model = color.ModelFunc(func(c color.Color) color.Color {
	if pc, ok := c.(Color); ok {
		return pc
	}
	return FromColor(c)
})
