package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// pointsPerInch converts layout units to the inches Graphviz sizes nodes in.
const pointsPerInch = 72.0

// ToDOT converts a frame to a Graphviz graph whose nodes are pinned to the
// layout positions. Graphviz puts the origin at the bottom left, so y is
// flipped. The result is meant for the neato engine.
func ToDOT(f Frame) string {
	var buf bytes.Buffer
	buf.WriteString("graph layout {\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  bb=\"0,0,%d,%d\";\n", f.Size.Width, f.Size.Height)
	buf.WriteString("  node [shape=box, style=filled, fixedsize=true, fontname=\"sans-serif\", fontsize=10];\n")
	buf.WriteString("\n")

	for i, b := range f.Blocks {
		cx := float64(b.Rect.X) + float64(b.Rect.Width)/2
		cy := float64(f.Size.Height) - (float64(b.Rect.Y) + float64(b.Rect.Height)/2)
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%.1f,%.1f!\", width=%.4f, height=%.4f, fillcolor=%q];\n",
			b.ID, b.Text(), cx, cy,
			float64(b.Rect.Width)/pointsPerInch, float64(b.Rect.Height)/pointsPerInch,
			palette[i%len(palette)])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderGraphviz lays out dot with neato and renders it as SVG or PNG.
func RenderGraphviz(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("graphviz cannot render %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG renders the frame as PNG through Graphviz.
func RenderPNG(ctx context.Context, f Frame) ([]byte, error) {
	return RenderGraphviz(ctx, ToDOT(f), FormatPNG)
}
