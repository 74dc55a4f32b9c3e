package layout

import "github.com/matzehuels/panelfit/pkg/geom"

// Item is a rectangular element the coordinator can position.
type Item interface {
	Width() int
	Height() int
	Visible() bool
	SetPosition(x, y int)
}

// Sizer is implemented by items that take on the size they were laid out
// at, which differs from their own when the row options force a size.
type Sizer interface {
	SetSize(width, height int)
}

// Box is a plain [Item] backed by fields. W and H are the intrinsic size;
// Bounds is the size of the last layout, zero before the first one.
type Box struct {
	ID     string
	Label  string
	W, H   int
	Hidden bool
	Pos    geom.Point
	Bounds geom.Size
}

func (b *Box) Width() int           { return b.W }
func (b *Box) Height() int          { return b.H }
func (b *Box) Visible() bool        { return !b.Hidden }
func (b *Box) SetPosition(x, y int) { b.Pos = geom.Point{X: x, Y: y} }
func (b *Box) Size() geom.Size      { return geom.Size{Width: b.W, Height: b.H} }

func (b *Box) SetSize(width, height int) {
	b.Bounds = geom.Size{Width: width, Height: height}
}

// Rect returns the box's current bounds: its position with the laid out
// size, or the intrinsic size before the first layout.
func (b *Box) Rect() geom.Rect {
	size := b.Bounds
	if size == (geom.Size{}) {
		size = b.Size()
	}
	return geom.Rect{X: b.Pos.X, Y: b.Pos.Y, Width: size.Width, Height: size.Height}
}

var (
	_ Item  = (*Box)(nil)
	_ Sizer = (*Box)(nil)
)

// Visible returns the visible items in order.
func Visible[T Item](items []T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.Visible() {
			out = append(out, it)
		}
	}
	return out
}

// Sizes returns the intrinsic sizes of items.
func Sizes[T Item](items []T) []geom.Size {
	sizes := make([]geom.Size, len(items))
	for i, it := range items {
		sizes[i] = geom.Size{Width: it.Width(), Height: it.Height()}
	}
	return sizes
}
