// Package geometry provides grid coordinates and the 8-connected (Moore)
// neighborhood used when growing the placement frontier.
package geometry

// Pixel is a grid coordinate. The zero value is the top-left corner.
type Pixel struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// In reports whether p lies inside [0,width) x [0,height).
func (p Pixel) In(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Index returns the row-major offset of p in a grid of the given width.
func (p Pixel) Index(width int) int {
	return p.Y*width + p.X
}

// FromIndex is the inverse of Index.
func FromIndex(i, width int) Pixel {
	return Pixel{X: i % width, Y: i / width}
}

// Less orders pixels row-major: by Y, then by X.
func (p Pixel) Less(q Pixel) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

// Neighbors returns the in-bounds Moore neighbors of p in row-major order.
func Neighbors(p Pixel, width, height int) []Pixel {
	return AppendNeighbors(make([]Pixel, 0, 8), p, width, height)
}

// AppendNeighbors appends the in-bounds Moore neighbors of p to dst in
// row-major order and returns the extended slice.
func AppendNeighbors(dst []Pixel, p Pixel, width, height int) []Pixel {
	for dy := -1; dy <= 1; dy++ {
		y := p.Y + dy
		if y < 0 || y >= height {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x := p.X + dx
			if x < 0 || x >= width {
				continue
			}
			dst = append(dst, Pixel{X: x, Y: y})
		}
	}
	return dst
}
