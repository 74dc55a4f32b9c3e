package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/panelfit/pkg/geom"
	"github.com/matzehuels/panelfit/pkg/layout"
)

// Block is one visible item in a frame.
type Block struct {
	ID    string
	Label string
	Rect  geom.Rect
}

// Text returns the label, falling back to the id.
func (b Block) Text() string {
	if b.Label != "" {
		return b.Label
	}
	return b.ID
}

// Frame is a positioned set of blocks ready for output.
type Frame struct {
	Size     geom.Size
	Engine   string
	FellBack bool
	Seed     uint64
	Padding  int
	Blocks   []Block
}

// NewFrame collects the visible boxes, in order, with the positions the
// coordinator wrote into them.
func NewFrame(boxes []*layout.Box, res layout.Result, seed uint64) Frame {
	f := Frame{
		Size:     res.Size,
		Engine:   res.Engine,
		FellBack: res.FellBack,
		Seed:     seed,
		Padding:  res.Padding,
	}
	for _, b := range boxes {
		if !b.Visible() {
			continue
		}
		f.Blocks = append(f.Blocks, Block{ID: b.ID, Label: b.Label, Rect: b.Rect()})
	}
	return f
}

// Format is an output format name.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatSVG, FormatPNG, FormatDOT, FormatJSON}

// ParseFormats splits a comma-separated list such as "svg,json".
// Duplicates are dropped; an empty list yields svg.
func ParseFormats(list string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, part := range strings.Split(list, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))
		if f == "" || seen[f] {
			continue
		}
		switch f {
		case FormatSVG, FormatPNG, FormatDOT, FormatJSON:
		default:
			return nil, fmt.Errorf("unknown format %q (want svg, png, dot or json)", f)
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		out = []Format{FormatSVG}
	}
	return out, nil
}

// ContentType returns the MIME type of a format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	default:
		return "text/vnd.graphviz"
	}
}
