package layout

import (
	"slices"

	"github.com/matzehuels/panelfit/pkg/geom"
	"github.com/matzehuels/panelfit/pkg/layout/rows"
	"github.com/matzehuels/panelfit/pkg/layout/scatter"
)

// Engine names reported in [Result.Engine].
const (
	EngineScatter = "scatter"
	EngineRows    = "rows"
)

// Result is one finished layout. Positions and Sizes are indexed like the
// sizes the strategy was given.
type Result struct {
	Size      geom.Size    `json:"size"`
	Positions []geom.Point `json:"positions"`
	// Sizes are the sizes the items were laid out at.
	Sizes  []geom.Size `json:"sizes"`
	Engine string      `json:"engine"`
	// FellBack is set when a guaranteed strategy replaced a failed one.
	FellBack bool `json:"fell_back,omitempty"`
	// Padding is the spacing the scatter engine enforced, if it won.
	Padding int `json:"padding,omitempty"`
}

// Strategy arranges sizes inside a container. Arrange reports false when
// it could not produce a layout.
type Strategy interface {
	Name() string
	Arrange(sizes []geom.Size, container geom.Size) (Result, bool)
}

// ScatterStrategy wraps [scatter.Place]. Positions are offset by Insets and
// the reported size is the container size.
type ScatterStrategy struct {
	Seed    uint64
	Options *scatter.Options
	Insets  geom.Insets
	// MinSize is reported when there is nothing to place.
	MinSize geom.Size
}

func (s ScatterStrategy) Name() string { return EngineScatter }

func (s ScatterStrategy) Arrange(sizes []geom.Size, container geom.Size) (Result, bool) {
	if len(sizes) == 0 {
		return Result{Size: s.MinSize, Engine: EngineScatter}, true
	}
	out, ok := scatter.Place(sizes, container.Shrink(s.Insets), s.Seed, s.Options)
	if !ok {
		return Result{}, false
	}
	positions := make([]geom.Point, len(out.Positions))
	for i, p := range out.Positions {
		positions[i] = geom.Point{X: p.X + s.Insets.Left, Y: p.Y + s.Insets.Top}
	}
	return Result{
		Size:      container,
		Positions: positions,
		Sizes:     slices.Clone(sizes),
		Engine:    EngineScatter,
		Padding:   out.Padding,
	}, true
}

// RowsStrategy wraps [rows.Pack]. It always succeeds.
type RowsStrategy struct {
	Options rows.Options
}

func (s RowsStrategy) Name() string { return EngineRows }

func (s RowsStrategy) Arrange(sizes []geom.Size, container geom.Size) (Result, bool) {
	in := s.Options.Insets
	r := rows.Pack(sizes, container.Width-in.Left-in.Right, s.Options)
	return Result{Size: r.Size, Positions: r.Positions, Sizes: r.Sizes, Engine: EngineRows}, true
}

// Fallback tries primary and uses guaranteed when primary fails.
func Fallback(primary, guaranteed Strategy) Strategy {
	return fallback{primary: primary, guaranteed: guaranteed}
}

type fallback struct {
	primary, guaranteed Strategy
}

func (f fallback) Name() string { return f.primary.Name() + "|" + f.guaranteed.Name() }

func (f fallback) Arrange(sizes []geom.Size, container geom.Size) (Result, bool) {
	if res, ok := f.primary.Arrange(sizes, container); ok {
		return res, true
	}
	res, ok := f.guaranteed.Arrange(sizes, container)
	res.FellBack = true
	return res, ok
}
