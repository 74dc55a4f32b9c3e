package layout

import (
	"testing"

	"github.com/matzehuels/panelfit/pkg/geom"
	"github.com/matzehuels/panelfit/pkg/layout/rows"
)

// spyItem records how often the coordinator positions it.
type spyItem struct {
	w, h   int
	hidden bool
	sets   int
	x, y   int
}

func (p *spyItem) Width() int           { return p.w }
func (p *spyItem) Height() int          { return p.h }
func (p *spyItem) Visible() bool        { return !p.hidden }
func (p *spyItem) SetPosition(x, y int) {
	p.x, p.y = x, y
	p.sets++
}

func spyItems(n, w, h int) []*spyItem {
	out := make([]*spyItem, n)
	for i := range out {
		out[i] = &spyItem{w: w, h: h}
	}
	return out
}

func asItems(ps []*spyItem) []Item {
	items := make([]Item, len(ps))
	for i, p := range ps {
		items[i] = p
	}
	return items
}

func rectOf(p *spyItem) geom.Rect { return geom.Rect{X: p.x, Y: p.y, Width: p.w, Height: p.h} }

func TestLayoutRandomizedSucceeds(t *testing.T) {
	ps := spyItems(4, 40, 40)
	c := New(Options{Randomize: true, Seed: 1}, nil)
	container := geom.Size{Width: 100, Height: 100}

	res := c.Layout(asItems(ps), container)
	if res.Engine != EngineScatter || res.FellBack {
		t.Fatalf("engine = %s fellBack = %v, want scatter without fallback", res.Engine, res.FellBack)
	}
	if res.Size != container {
		t.Errorf("size = %v, want %v", res.Size, container)
	}
	for i, p := range ps {
		if !rectOf(p).Within(container) {
			t.Errorf("item %d at %v escapes container", i, rectOf(p))
		}
		for j := i + 1; j < len(ps); j++ {
			if rectOf(p).Overlaps(rectOf(ps[j])) {
				t.Errorf("items %d and %d overlap", i, j)
			}
		}
	}
}

func TestLayoutFallsBackToRows(t *testing.T) {
	ps := spyItems(5, 60, 60)
	c := New(Options{Randomize: true}, nil)

	res := c.Layout(asItems(ps), geom.Size{Width: 100, Height: 100})
	if res.Engine != EngineRows || !res.FellBack {
		t.Fatalf("engine = %s fellBack = %v, want rows after fallback", res.Engine, res.FellBack)
	}
	// One 60px item per row at width 100.
	for i, p := range ps {
		if p.x != 0 || p.y != 60*i {
			t.Errorf("item %d at (%d,%d), want (0,%d)", i, p.x, p.y, 60*i)
		}
	}
	if got := c.Stats().Fallbacks; got != 1 {
		t.Errorf("fallbacks = %d, want 1", got)
	}
}

func TestLayoutWithoutRandomizeUsesRows(t *testing.T) {
	ps := spyItems(3, 40, 40)
	c := New(Options{}, nil)
	res := c.Layout(asItems(ps), geom.Size{Width: 100, Height: 100})
	if res.Engine != EngineRows || res.FellBack {
		t.Fatalf("engine = %s fellBack = %v, want rows directly", res.Engine, res.FellBack)
	}
	if res.Size != (geom.Size{Width: 80, Height: 80}) {
		t.Errorf("size = %v, want 80x80", res.Size)
	}
}

func TestLayoutSkipsHiddenItems(t *testing.T) {
	ps := spyItems(3, 50, 10)
	ps[1].hidden = true
	ps[1].x, ps[1].y = -7, -7

	c := New(Options{}, nil)
	res := c.Layout(asItems(ps), geom.Size{Width: 120, Height: 100})

	if len(res.Positions) != 2 {
		t.Fatalf("positions = %d, want 2", len(res.Positions))
	}
	if ps[1].sets != 0 || ps[1].x != -7 {
		t.Errorf("hidden item was positioned")
	}
	if ps[0].x != 0 || ps[2].x != 50 {
		t.Errorf("visible items at x=%d,%d, want 0,50", ps[0].x, ps[2].x)
	}
}

func TestLayoutPositionsOncePerCall(t *testing.T) {
	ps := spyItems(4, 20, 20)
	items := asItems(ps)
	c := New(Options{Randomize: true}, nil)
	container := geom.Size{Width: 200, Height: 200}

	for call := 1; call <= 3; call++ {
		c.Layout(items, container)
		for i, p := range ps {
			if p.sets != call {
				t.Fatalf("call %d: item %d set %d times", call, i, p.sets)
			}
		}
	}
	st := c.Stats()
	if st.Computed != 1 || st.CacheHits != 2 {
		t.Errorf("stats = %+v, want 1 computed and 2 hits", st)
	}
}

func TestLayoutCacheInvalidation(t *testing.T) {
	ps := spyItems(3, 30, 30)
	items := asItems(ps)
	c := New(Options{}, nil)
	container := geom.Size{Width: 100, Height: 100}

	c.Layout(items, container)
	steps := []struct {
		name   string
		mutate func()
	}{
		{"container", func() { container.Width = 70 }},
		{"size", func() { ps[0].w = 35 }},
		{"visibility", func() { ps[2].hidden = true }},
		{"count", func() { items = items[:1] }},
		{"invalidate", func() { c.Invalidate() }},
		{"options", func() { c.SetOptions(Options{Randomize: true}) }},
	}
	for i, s := range steps {
		s.mutate()
		c.Layout(items, container)
		if got := c.Stats().Computed; got != i+2 {
			t.Errorf("%s: computed = %d, want %d", s.name, got, i+2)
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	run := func() []geom.Point {
		ps := spyItems(6, 30, 20)
		New(Options{Randomize: true, Seed: 9}, nil).Layout(asItems(ps), geom.Size{Width: 200, Height: 150})
		out := make([]geom.Point, len(ps))
		for i, p := range ps {
			out[i] = geom.Point{X: p.x, Y: p.y}
		}
		return out
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("item %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestLayoutScatterHonorsInsets(t *testing.T) {
	ps := spyItems(4, 40, 40)
	opts := Options{Randomize: true, Seed: 3, Rows: rows.Options{Insets: geom.Uniform(10)}}
	res := New(opts, nil).Layout(asItems(ps), geom.Size{Width: 120, Height: 120})
	if res.Engine != EngineScatter {
		t.Fatalf("engine = %s, want scatter", res.Engine)
	}
	inner := geom.Rect{X: 10, Y: 10, Width: 100, Height: 100}
	for i, p := range ps {
		r := rectOf(p)
		if r.X < inner.X || r.Y < inner.Y || r.Right() > inner.Right() || r.Bottom() > inner.Bottom() {
			t.Errorf("item %d at %v outside %v", i, r, inner)
		}
	}
}

func TestPreferredSize(t *testing.T) {
	ps := spyItems(3, 50, 10)
	c := New(Options{}, nil)
	got := c.PreferredSize(asItems(ps), geom.Size{Width: 120})
	if want := (geom.Size{Width: 100, Height: 20}); got != want {
		t.Errorf("PreferredSize = %v, want %v", got, want)
	}
	for _, p := range ps {
		if p.sets != 0 {
			t.Fatal("PreferredSize positioned an item")
		}
	}
}

func TestEmptyItems(t *testing.T) {
	minSize := geom.Size{Width: 10, Height: 10}
	if got := New(Options{Randomize: true, MinSize: minSize}, nil).PreferredSize(nil, geom.Size{Width: 50, Height: 50}); got != minSize {
		t.Errorf("randomized empty = %v, want %v", got, minSize)
	}
	if got := New(Options{}, nil).PreferredSize(nil, geom.Size{Width: 50, Height: 50}); got != (geom.Size{}) {
		t.Errorf("rows empty = %v, want 0x0", got)
	}
}

type failing struct{ calls int }

func (f *failing) Name() string { return "failing" }
func (f *failing) Arrange([]geom.Size, geom.Size) (Result, bool) {
	f.calls++
	return Result{}, false
}

func TestFallback(t *testing.T) {
	f := &failing{}
	s := Fallback(f, RowsStrategy{})
	if s.Name() != "failing|rows" {
		t.Errorf("name = %q", s.Name())
	}
	res, ok := s.Arrange([]geom.Size{{Width: 5, Height: 5}}, geom.Size{Width: 10, Height: 10})
	if !ok || !res.FellBack || res.Engine != EngineRows || f.calls != 1 {
		t.Errorf("res = %+v ok = %v calls = %d", res, ok, f.calls)
	}

	res, ok = Fallback(RowsStrategy{}, f).Arrange(nil, geom.Size{})
	if !ok || res.FellBack || f.calls != 1 {
		t.Errorf("guaranteed strategy ran after primary succeeded")
	}
}

func TestLayoutForcedSizeReachesItems(t *testing.T) {
	forced := geom.Size{Width: 10, Height: 10}
	for _, randomize := range []bool{false, true} {
		boxes := []*Box{{ID: "a", W: 50, H: 50}, {ID: "b", W: 50, H: 50}, {ID: "c", W: 50, H: 50}}
		items := make([]Item, len(boxes))
		for i, b := range boxes {
			items[i] = b
		}
		c := New(Options{Randomize: randomize, Seed: 4, Rows: rows.Options{ForceSize: &forced}}, nil)
		res := c.Layout(items, geom.Size{Width: 200, Height: 100})
		if randomize && res.Engine != EngineScatter {
			t.Fatalf("engine = %s, want scatter", res.Engine)
		}
		for i, b := range boxes {
			if b.Bounds != forced || b.Rect().Size() != forced {
				t.Errorf("randomize=%v: box %s bounds = %v, want %v", randomize, b.ID, b.Bounds, forced)
			}
			if res.Sizes[i] != forced {
				t.Errorf("randomize=%v: Sizes[%d] = %v", randomize, i, res.Sizes[i])
			}
			for _, o := range boxes[i+1:] {
				if b.Rect().Overlaps(o.Rect()) {
					t.Errorf("randomize=%v: %s %v overlaps %s %v", randomize, b.ID, b.Rect(), o.ID, o.Rect())
				}
			}
		}
		// Intrinsic sizes still drive the result cache.
		if b := boxes[0]; b.Width() != 50 || b.Height() != 50 {
			t.Errorf("intrinsic size changed to %dx%d", b.Width(), b.Height())
		}
	}
}

func TestBoxHelpers(t *testing.T) {
	boxes := []*Box{{ID: "a", W: 10, H: 5}, {ID: "b", W: 3, H: 3, Hidden: true}, {ID: "c", W: 7, H: 2}}
	vis := Visible(boxes)
	if len(vis) != 2 || vis[1].ID != "c" {
		t.Fatalf("Visible = %v", vis)
	}
	sizes := Sizes(vis)
	if sizes[0] != (geom.Size{Width: 10, Height: 5}) || sizes[1] != (geom.Size{Width: 7, Height: 2}) {
		t.Errorf("Sizes = %v", sizes)
	}
	boxes[0].SetPosition(4, 6)
	if r := boxes[0].Rect(); r != (geom.Rect{X: 4, Y: 6, Width: 10, Height: 5}) {
		t.Errorf("Rect = %v", r)
	}
	boxes[0].SetSize(8, 3)
	if r := boxes[0].Rect(); r != (geom.Rect{X: 4, Y: 6, Width: 8, Height: 3}) {
		t.Errorf("Rect after SetSize = %v", r)
	}
}
