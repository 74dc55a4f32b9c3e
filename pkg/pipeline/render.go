package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/panelfit/pkg/render"
)

// Render produces every requested format from a layout.
func Render(ctx context.Context, l Layout, opts Options) (map[string][]byte, error) {
	formats, err := opts.RenderFormats()
	if err != nil {
		return nil, err
	}
	frame := l.Frame()
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := renderFormat(ctx, frame, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[string(format)] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, f render.Frame, format render.Format, opts Options) ([]byte, error) {
	switch format {
	case render.FormatSVG:
		return render.RenderSVG(f, svgOptions(opts)...), nil
	case render.FormatPNG:
		return render.RenderPNG(ctx, f)
	case render.FormatDOT:
		return []byte(render.ToDOT(f)), nil
	case render.FormatJSON:
		return render.RenderJSON(f)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func svgOptions(opts Options) []render.SVGOption {
	var out []render.SVGOption
	if opts.Labels {
		out = append(out, render.WithLabels())
	}
	if opts.PaddingOutlines {
		out = append(out, render.WithPaddingOutlines())
	}
	return out
}
