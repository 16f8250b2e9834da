package placer

import (
	"sort"

	"github.com/ironsheep/allcolors/internal/geometry"
)

// frontier is the open set: unplaced pixels adjacent to at least one placed
// pixel. Membership tests, insertion and removal are O(1); removal swaps the
// last element into the hole, so slice order is arbitrary. Nothing depends on
// that order because the scan breaks ties by pixel position.
type frontier struct {
	items []geometry.Pixel
	index map[geometry.Pixel]int
}

func newFrontier() *frontier {
	return &frontier{index: make(map[geometry.Pixel]int)}
}

func (f *frontier) Len() int { return len(f.items) }

func (f *frontier) Contains(p geometry.Pixel) bool {
	_, ok := f.index[p]
	return ok
}

// Add inserts p. Adding a member again is a no-op.
func (f *frontier) Add(p geometry.Pixel) {
	if _, ok := f.index[p]; ok {
		return
	}
	f.index[p] = len(f.items)
	f.items = append(f.items, p)
}

// Remove deletes p if present.
func (f *frontier) Remove(p geometry.Pixel) {
	i, ok := f.index[p]
	if !ok {
		return
	}
	last := len(f.items) - 1
	if i != last {
		moved := f.items[last]
		f.items[i] = moved
		f.index[moved] = i
	}
	f.items = f.items[:last]
	delete(f.index, p)
}

// Sorted returns a row-major copy of the members.
func (f *frontier) Sorted() []geometry.Pixel {
	out := make([]geometry.Pixel, len(f.items))
	copy(out, f.items)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
