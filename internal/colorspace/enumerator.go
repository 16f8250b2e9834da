package colorspace

import (
	"errors"
	"fmt"
	"math/rand"
)

// Supported bits-per-channel range.
const (
	MinBits = 1
	MaxBits = 8
)

// ErrInvalidBitDepth is returned for bit depths outside [MinBits, MaxBits].
var ErrInvalidBitDepth = errors.New("invalid bit depth")

// ValidateBits reports whether bits is a supported bits-per-channel value.
func ValidateBits(bits int) error {
	if bits < MinBits || bits > MaxBits {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidBitDepth, bits, MinBits, MaxBits)
	}
	return nil
}

// Count returns the number of colors in a color space with the given bits
// per channel, 2^(3*bits).
func Count(bits int) int {
	return 1 << (3 * bits)
}

// Dimensions returns the canvas size for a color space.
//
// In strict mode the canvas holds exactly Count(bits) cells. Otherwise it is
// a square of four times the strict width per side.
func Dimensions(bits int, strict bool) (width, height int) {
	total := 3 * bits
	shorter := total / 2
	longer := total - shorter

	width = 1 << longer
	height = 1 << shorter
	if strict {
		return width, height
	}
	return 4 * width, 4 * width
}

// Enumerator lazily yields every color of a color space exactly once.
//
// An Enumerator is not restartable: once Next reports false it stays
// exhausted. Create a new Enumerator to walk the space again.
type Enumerator struct {
	bits  int
	mask  int
	shift int
	next  int
	count int
}

// NewEnumerator creates an enumerator for the given bits per channel.
func NewEnumerator(bits int) (*Enumerator, error) {
	if err := ValidateBits(bits); err != nil {
		return nil, err
	}
	return &Enumerator{
		bits:  bits,
		mask:  (1 << bits) - 1,
		shift: 8 - bits,
		count: Count(bits),
	}, nil
}

// Next returns the next color and true, or zero and false once every color
// has been produced.
func (e *Enumerator) Next() (Color, bool) {
	if e.next >= e.count {
		return 0, false
	}
	i := e.next
	e.next++

	blue := i & e.mask
	i >>= e.bits
	green := i & e.mask
	i >>= e.bits
	red := i & e.mask

	return Color(red<<(16+e.shift) | green<<(8+e.shift) | blue<<e.shift), true
}

// Len returns the total number of colors in the space.
func (e *Enumerator) Len() int { return e.count }

// Remaining returns how many colors Next has yet to produce.
func (e *Enumerator) Remaining() int { return e.count - e.next }

// All returns every color of the space in enumeration order.
func All(bits int) ([]Color, error) {
	e, err := NewEnumerator(bits)
	if err != nil {
		return nil, err
	}
	colors := make([]Color, 0, e.Len())
	for c, ok := e.Next(); ok; c, ok = e.Next() {
		colors = append(colors, c)
	}
	return colors, nil
}

// Shuffle permutes colors uniformly at random using rng.
//
// The walk is the classic forward Fisher-Yates: position i swaps with a
// position drawn from [0, i]. Given the same generator state the permutation
// is always the same.
func Shuffle(colors []Color, rng *rand.Rand) {
	for i := range colors {
		j := rng.Intn(i + 1)
		colors[i], colors[j] = colors[j], colors[i]
	}
}
