package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// palette cycles over blocks in document order.
var palette = []string{"#8ecae6", "#ffb703", "#90be6d", "#f28482", "#cdb4db", "#f6bd60", "#84a59d", "#a8dadc"}

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels     bool
	padding    bool
	background string
}

// WithLabels draws each block's label (or id) at its centre.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithPaddingOutlines draws the spacing the scatter engine enforced as a
// dashed outline around every block.
func WithPaddingOutlines() SVGOption { return func(r *svgRenderer) { r.padding = true } }

// WithBackground fills the frame with a colour.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// RenderSVG renders the frame as a standalone SVG document.
func RenderSVG(f Frame, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := max(1, f.Size.Width), max(1, f.Size.Height)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, h, w, h)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	half := f.Padding / 2
	for i, b := range f.Blocks {
		if r.padding && half > 0 {
			o := b.Rect.Expand(half)
			fmt.Fprintf(&buf, `  <rect class="padding" x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#999" stroke-dasharray="4 3"/>`+"\n",
				o.X, o.Y, o.Width, o.Height)
		}
		fmt.Fprintf(&buf, `  <rect id="block-%s" class="block" x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="#333" stroke-width="1"/>`+"\n",
			escapeXML(b.ID), b.Rect.X, b.Rect.Y, b.Rect.Width, b.Rect.Height, palette[i%len(palette)])
	}
	if r.labels {
		for _, b := range f.Blocks {
			cx := float64(b.Rect.X) + float64(b.Rect.Width)/2
			cy := float64(b.Rect.Y) + float64(b.Rect.Height)/2
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="12">%s</text>`+"\n",
				cx, cy, escapeXML(b.Text()))
		}
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
