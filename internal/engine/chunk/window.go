package chunk

// Window is the square of chunks within Radius of Center on both axes.
type Window struct {
	Center Coord
	Radius int
}

// MinX returns the lowest X coordinate in the window.
func (w Window) MinX() int { return w.Center.X - w.Radius }

// MaxX returns the highest X coordinate in the window.
func (w Window) MaxX() int { return w.Center.X + w.Radius }

// MinZ returns the lowest Z coordinate in the window.
func (w Window) MinZ() int { return w.Center.Z - w.Radius }

// MaxZ returns the highest Z coordinate in the window.
func (w Window) MaxZ() int { return w.Center.Z + w.Radius }

// Size returns the number of chunks in the window.
func (w Window) Size() int {
	side := 2*w.Radius + 1
	return side * side
}

// Contains reports whether c lies inside the window.
func (w Window) Contains(c Coord) bool {
	return c.X >= w.MinX() && c.X <= w.MaxX() && c.Z >= w.MinZ() && c.Z <= w.MaxZ()
}

// Coords lists the window row by row, Z outer and X inner.
func (w Window) Coords() []Coord {
	coords := make([]Coord, 0, w.Size())
	for z := w.MinZ(); z <= w.MaxZ(); z++ {
		for x := w.MinX(); x <= w.MaxX(); x++ {
			coords = append(coords, Coord{x, z})
		}
	}
	return coords
}

// Diff computes which chunks leave and which enter the working set when its
// center moves from one coordinate to another.
//
// toReplace holds the coordinates of the old window that are not in the new
// one and toAdd the coordinates of the new window that are not in the old one.
// Both always have the same length, and pairing them by index is a bijection.
// Any jump is handled: windows that do not overlap replace every chunk.
func Diff(from, to Coord, viewDistance int) (toReplace, toAdd []Coord) {
	if from == to {
		return nil, nil
	}

	prev := Window{Center: from, Radius: viewDistance}
	next := Window{Center: to, Radius: viewDistance}

	return subtract(prev, next), subtract(next, prev)
}

// subtract returns the coordinates of a that are outside b. Whole columns of
// a outside b's X span come first; then rows of a outside b's Z span, limited
// to the columns shared with b so corner cells are listed once.
func subtract(a, b Window) []Coord {
	var out []Coord

	for x := a.MinX(); x <= a.MaxX(); x++ {
		if x >= b.MinX() && x <= b.MaxX() {
			continue
		}
		for z := a.MinZ(); z <= a.MaxZ(); z++ {
			out = append(out, Coord{x, z})
		}
	}

	lo := max(a.MinX(), b.MinX())
	hi := min(a.MaxX(), b.MaxX())
	for z := a.MinZ(); z <= a.MaxZ(); z++ {
		if z >= b.MinZ() && z <= b.MaxZ() {
			continue
		}
		for x := lo; x <= hi; x++ {
			out = append(out, Coord{x, z})
		}
	}

	return out
}
