package render

import (
	"encoding/json"

	"github.com/matzehuels/panelfit/pkg/layout"
)

type jsonOutput struct {
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	Engine   string      `json:"engine"`
	FellBack bool        `json:"fell_back,omitempty"`
	Seed     uint64      `json:"seed,omitempty"`
	Padding  int         `json:"padding,omitempty"`
	Items    []jsonBlock `json:"items"`
}

type jsonBlock struct {
	ID     string `json:"id"`
	Label  string `json:"label,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// RenderJSON exports the frame as a pretty-printed JSON document. The seed
// is recorded only for scatter layouts, where it determines the result.
func RenderJSON(f Frame) ([]byte, error) {
	out := jsonOutput{
		Width:    f.Size.Width,
		Height:   f.Size.Height,
		Engine:   f.Engine,
		FellBack: f.FellBack,
		Padding:  f.Padding,
		Items:    make([]jsonBlock, len(f.Blocks)),
	}
	if f.Engine == layout.EngineScatter {
		out.Seed = f.Seed
	}
	for i, b := range f.Blocks {
		out.Items[i] = jsonBlock{
			ID:     b.ID,
			Label:  b.Label,
			X:      b.Rect.X,
			Y:      b.Rect.Y,
			Width:  b.Rect.Width,
			Height: b.Rect.Height,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
