package pipeline

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/panelfit/pkg/geom"
	"github.com/matzehuels/panelfit/pkg/layout"
	"github.com/matzehuels/panelfit/pkg/render"
	"github.com/matzehuels/panelfit/pkg/scene"
)

// Layout is the serializable result of the arrange stage. It is what gets
// cached and what the server returns.
type Layout struct {
	Size     geom.Size   `json:"size"`
	Engine   string      `json:"engine"`
	FellBack bool        `json:"fell_back,omitempty"`
	Seed     uint64      `json:"seed"`
	Padding  int         `json:"padding,omitempty"`
	Items    []Placement `json:"items"`
}

// Placement is one positioned visible item.
type Placement struct {
	ID     string `json:"id"`
	Label  string `json:"label,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Frame converts the layout for the renderers.
func (l Layout) Frame() render.Frame {
	f := render.Frame{
		Size:     l.Size,
		Engine:   l.Engine,
		FellBack: l.FellBack,
		Seed:     l.Seed,
		Padding:  l.Padding,
		Blocks:   make([]render.Block, len(l.Items)),
	}
	for i, p := range l.Items {
		f.Blocks[i] = render.Block{
			ID:    p.ID,
			Label: p.Label,
			Rect:  geom.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height},
		}
	}
	return f
}

// MarshalLayout encodes a layout for caching.
func MarshalLayout(l Layout) ([]byte, error) { return json.Marshal(l) }

// UnmarshalLayout decodes a cached layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	err := json.Unmarshal(data, &l)
	return l, err
}

// Arrange computes the layout of sc without caching.
func Arrange(sc *scene.Scene, opts Options) (Layout, layout.Stats, error) {
	lo, err := opts.LayoutOptions(sc)
	if err != nil {
		return Layout{}, layout.Stats{}, err
	}
	logger := opts.logger()

	boxes := sc.Boxes()
	coord := layout.New(lo, logger)
	start := time.Now()
	res := coord.Layout(scene.LayoutItems(boxes), opts.Container())
	logger.Debug("arranged scene",
		"items", len(res.Positions),
		"engine", res.Engine,
		"fell_back", res.FellBack,
		"took", time.Since(start))

	l := Layout{
		Size:     res.Size,
		Engine:   res.Engine,
		FellBack: res.FellBack,
		Seed:     lo.Seed,
		Padding:  res.Padding,
		Items:    make([]Placement, 0, len(res.Positions)),
	}
	for _, b := range layout.Visible(boxes) {
		r := b.Rect()
		l.Items = append(l.Items, Placement{
			ID: b.ID, Label: b.Label,
			X: r.X, Y: r.Y,
			Width: r.Width, Height: r.Height,
		})
	}
	return l, coord.Stats(), nil
}
