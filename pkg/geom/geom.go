// Package geom provides the integer geometry shared by the layout engines:
// points, sizes, axis-aligned rectangles and container insets.
//
// Coordinates grow to the right and downwards. A rectangle's right and
// bottom edges are exclusive, so two rectangles that merely touch do not
// overlap.
package geom

import "fmt"

// Point is a position in layout units.
type Point struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// Size is a width/height pair in layout units.
type Size struct {
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

// Area returns Width*Height computed in 64-bit arithmetic.
// Negative dimensions count as zero.
func (s Size) Area() int64 {
	if s.Width <= 0 || s.Height <= 0 {
		return 0
	}
	return int64(s.Width) * int64(s.Height)
}

// Shrink returns s reduced by the insets on every side, floored at zero.
func (s Size) Shrink(in Insets) Size {
	return Size{
		Width:  max(0, s.Width-in.Left-in.Right),
		Height: max(0, s.Height-in.Top-in.Bottom),
	}
}

// Grow returns s enlarged by the insets on every side.
func (s Size) Grow(in Insets) Size {
	return Size{
		Width:  s.Width + in.Left + in.Right,
		Height: s.Height + in.Top + in.Bottom,
	}
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Rect is an axis-aligned rectangle. X and Y are the top-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a Rect at p with size s.
func NewRect(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int { return r.Y + r.Height }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Area returns the rectangle's area in 64-bit arithmetic.
func (r Rect) Area() int64 { return r.Size().Area() }

// Expand grows the rectangle by d on every side. A negative d shrinks it.
func (r Rect) Expand(d int) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Translate returns a copy moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Within reports whether r lies inside [0, bounds.Width] x [0, bounds.Height].
func (r Rect) Within(bounds Size) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= bounds.Width && r.Bottom() <= bounds.Height
}

// Overlaps reports whether the interiors of r and o intersect.
func (r Rect) Overlaps(o Rect) bool { return Overlaps(r, o) }

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Overlaps reports whether the interiors of a and b intersect.
// Touching edges and empty rectangles never overlap.
func Overlaps(a, b Rect) bool {
	if a.Width <= 0 || a.Height <= 0 || b.Width <= 0 || b.Height <= 0 {
		return false
	}
	return a.X < b.Right() && b.X < a.Right() && a.Y < b.Bottom() && b.Y < a.Bottom()
}

// Area returns r.Width*r.Height using 64-bit arithmetic.
func Area(r Rect) int64 { return r.Area() }

// TotalArea sums the areas of sizes.
func TotalArea(sizes []Size) int64 {
	var total int64
	for _, s := range sizes {
		total += s.Area()
	}
	return total
}

// Insets are the container margins around the layout area.
type Insets struct {
	Top    int `json:"top,omitempty" toml:"top"`
	Left   int `json:"left,omitempty" toml:"left"`
	Bottom int `json:"bottom,omitempty" toml:"bottom"`
	Right  int `json:"right,omitempty" toml:"right"`
}

// Uniform returns insets of n on every side.
func Uniform(n int) Insets { return Insets{Top: n, Left: n, Bottom: n, Right: n} }
