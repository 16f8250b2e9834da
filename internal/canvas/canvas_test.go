package canvas

import (
	"errors"
	"image/color"
	"testing"

	"github.com/ironsheep/allcolors/internal/colorspace"
	"github.com/ironsheep/allcolors/internal/geometry"
)

func TestCanvas_PlaceAndGet(t *testing.T) {
	c := New(4, 2)
	if c.Width() != 4 || c.Height() != 2 || c.Capacity() != 8 {
		t.Fatalf("dimensions: got %dx%d cap %d", c.Width(), c.Height(), c.Capacity())
	}

	p := geometry.Pixel{X: 3, Y: 1}
	if c.IsPlaced(p) {
		t.Fatal("fresh cell reported as placed")
	}
	if err := c.Place(p, 0x123456); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	got, ok := c.Get(p)
	if !ok || got != 0x123456 {
		t.Errorf("Get: got (%s, %v), want (#123456, true)", got.Hex(), ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len: got %d, want 1", c.Len())
	}
}

func TestCanvas_BlackIsDistinctFromUnset(t *testing.T) {
	c := New(2, 1)
	if err := c.Place(geometry.Pixel{X: 0, Y: 0}, 0x000000); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	if _, ok := c.Get(geometry.Pixel{X: 0, Y: 0}); !ok {
		t.Error("placed black cell reported as unset")
	}
	if _, ok := c.Get(geometry.Pixel{X: 1, Y: 0}); ok {
		t.Error("unset cell reported as placed")
	}
	if c.Packed(geometry.Pixel{X: 1, Y: 0}) != 0 {
		t.Error("unset cell should read back as packed 0")
	}
}

func TestCanvas_PlaceTwice(t *testing.T) {
	c := New(2, 2)
	p := geometry.Pixel{X: 1, Y: 1}
	if err := c.Place(p, 1); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	err := c.Place(p, 2)
	if !errors.Is(err, ErrAlreadyPlaced) {
		t.Fatalf("got %v, want ErrAlreadyPlaced", err)
	}
	if got := c.Packed(p); got != 1 {
		t.Errorf("second Place overwrote the cell: got %d", got)
	}
}

func TestCanvas_OutOfBounds(t *testing.T) {
	c := New(2, 2)
	tests := []geometry.Pixel{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 2, Y: 0}, {X: 0, Y: 2}}
	for _, p := range tests {
		if err := c.Place(p, 1); err == nil {
			t.Errorf("Place(%v) should fail", p)
		}
		if c.IsPlaced(p) {
			t.Errorf("IsPlaced(%v) should be false", p)
		}
	}
}

func TestCanvas_Image(t *testing.T) {
	c := New(3, 2)
	_ = c.Place(geometry.Pixel{X: 0, Y: 0}, 0xFF0000)
	_ = c.Place(geometry.Pixel{X: 2, Y: 1}, 0x00FF80)

	if b := c.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("Bounds: got %v", b)
	}

	r, g, b, a := c.At(0, 0).RGBA()
	if r>>8 != 0xFF || g != 0 || b != 0 || a != 0xFFFF {
		t.Errorf("At(0,0): got (%d,%d,%d,%d)", r>>8, g>>8, b>>8, a>>8)
	}

	img := c.NRGBA()
	if got := img.NRGBAAt(2, 1); got != (color.NRGBA{R: 0, G: 0xFF, B: 0x80, A: 0xFF}) {
		t.Errorf("NRGBA(2,1): got %v", got)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{A: 0xFF}) {
		t.Errorf("unset cell should render opaque black, got %v", got)
	}

	if got := colorspace.FromColor(c.ColorModel().Convert(color.NRGBA{R: 1, G: 2, B: 3, A: 255})); got != 0x010203 {
		t.Errorf("ColorModel convert: got %s", got.Hex())
	}
}

func TestCanvas_PlacedRowMajor(t *testing.T) {
	c := New(3, 3)
	_ = c.Place(geometry.Pixel{X: 2, Y: 2}, 1)
	_ = c.Place(geometry.Pixel{X: 0, Y: 1}, 2)
	_ = c.Place(geometry.Pixel{X: 1, Y: 0}, 3)

	got := c.Placed()
	want := []geometry.Pixel{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 2}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCanvas_PlacedAcrossBitmapWords(t *testing.T) {
	c := New(10, 10)
	cells := []int{99, 64, 0, 63, 65}
	for _, i := range cells {
		if err := c.Place(geometry.FromIndex(i, 10), colorspace.Color(i)); err != nil {
			t.Fatalf("Place(%d) failed: %v", i, err)
		}
	}

	for i := 0; i < 100; i++ {
		want := i == 0 || i == 63 || i == 64 || i == 65 || i == 99
		if got := c.IsPlaced(geometry.FromIndex(i, 10)); got != want {
			t.Errorf("cell %d: IsPlaced got %v, want %v", i, got, want)
		}
	}

	got := c.Placed()
	want := []int{0, 63, 64, 65, 99}
	if len(got) != len(want) {
		t.Fatalf("got %v, want cells %v", got, want)
	}
	for i, idx := range want {
		if got[i] != geometry.FromIndex(idx, 10) {
			t.Errorf("index %d: got %v, want cell %d", i, got[i], idx)
		}
		if col, _ := c.Get(got[i]); col != colorspace.Color(idx) {
			t.Errorf("cell %d: color %s", idx, col.Hex())
		}
	}
	if c.Len() != len(want) {
		t.Errorf("Len: got %d, want %d", c.Len(), len(want))
	}
}
