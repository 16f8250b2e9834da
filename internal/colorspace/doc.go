// Package colorspace enumerates every color representable at a given number
// of bits per channel and derives the canvas size needed to hold them.
//
// # Packed Colors
//
// Colors are packed into the low 24 bits of a uint32 as 0xRRGGBB. A channel
// value v of a b-bit color space is stored as v << (8-b), so the enumerated
// channel values spread evenly over the full 0-255 range:
//
//	b=1: 0x00, 0x80
//	b=2: 0x00, 0x40, 0x80, 0xC0
//	b=8: 0x00 ... 0xFF
//
// # Enumeration Order
//
// The enumerator walks the packed (red, green, blue) index in natural binary
// order: red holds the top b bits of the index, blue the lowest. The order has
// no meaning beyond exhaustiveness; callers shuffle it with Shuffle before
// placing colors.
//
// # Canvas Dimensions
//
// For a color space of 3b bits the strict canvas is 2^ceil(3b/2) wide and
// 2^floor(3b/2) tall, holding exactly one cell per color. The non-strict canvas
// is a square four times the strict width on each side, leaving room for the
// frontier to grow in any direction from a centered seed.
package colorspace
