package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/panelfit/pkg/layout/rows"
	"github.com/matzehuels/panelfit/pkg/pipeline"
)

// optionFlags are the layout flags shared by layout, render and preview.
// Only flags the user actually set override the scene and config file.
type optionFlags struct {
	width, height int
	randomize     bool
	seed          uint64
	style         string
	align         string
	gap           string
	minHGap       int
	maxHGap       int
	minVGap       int
	padding       int
	maxTries      int
}

func (f *optionFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.width, "width", pipeline.DefaultWidth, "container width")
	fs.IntVar(&f.height, "height", pipeline.DefaultHeight, "container height")
	fs.BoolVar(&f.randomize, "randomize", pipeline.DefaultRandomize, "try random placement before row packing")
	fs.Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "random placement seed")
	fs.StringVar(&f.style, "style", pipeline.DefaultStyle, "row style: "+strings.Join(rows.StyleNames, ", "))
	fs.StringVar(&f.align, "align", pipeline.DefaultAlign, "row alignment: "+strings.Join(rows.AlignNames, ", "))
	fs.StringVar(&f.gap, "gap", pipeline.DefaultGap, "horizontal gap policy: "+strings.Join(rows.GapNames, ", "))
	fs.IntVar(&f.minHGap, "min-hgap", 0, "minimum horizontal gap between items")
	fs.IntVar(&f.maxHGap, "max-hgap", 0, "maximum horizontal gap (0 = unbounded)")
	fs.IntVar(&f.minVGap, "min-vgap", 0, "minimum vertical gap between rows")
	fs.IntVar(&f.padding, "padding", 0, "starting padding for random placement (0 = default)")
	fs.IntVar(&f.maxTries, "max-tries", 0, "random placement rounds (0 = default)")

	cmd.ValidArgsFunction = completeSceneFile
	registerOptionCompletions(cmd)
}

// options returns the overrides for the flags that were changed.
func (f *optionFlags) options(cmd *cobra.Command) pipeline.Options {
	fs := cmd.Flags()
	var o pipeline.Options
	if fs.Changed("width") {
		o.Width = f.width
	}
	if fs.Changed("height") {
		o.Height = f.height
	}
	if fs.Changed("randomize") {
		o.Randomize = pipeline.Bool(f.randomize)
	}
	if fs.Changed("seed") {
		o.Seed = pipeline.Uint64(f.seed)
	}
	if fs.Changed("style") {
		o.Style = f.style
	}
	if fs.Changed("align") {
		o.Align = f.align
	}
	if fs.Changed("gap") {
		o.Gap = f.gap
	}
	if fs.Changed("min-hgap") {
		o.MinHGap = f.minHGap
	}
	if fs.Changed("max-hgap") {
		o.MaxHGap = f.maxHGap
	}
	if fs.Changed("min-vgap") {
		o.MinVGap = f.minVGap
	}
	if fs.Changed("padding") {
		o.Padding = f.padding
	}
	if fs.Changed("max-tries") {
		o.MaxTries = f.maxTries
	}
	return o
}

// parseFormats splits the --format flag. Empty means the configured formats.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
