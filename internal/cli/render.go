package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/panelfit/pkg/render"
)

// renderOpts holds the render-specific flags.
type renderOpts struct {
	output          string
	formats         string
	labels          bool
	paddingOutlines bool
	noCache         bool
	refresh         bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts  renderOpts
		flags optionFlags
	)

	cmd := &cobra.Command{
		Use:   "render [scene.json|scene.toml]",
		Short: "Arrange a scene and render it to SVG, PNG, DOT or JSON",
		Long: `Arrange a scene and render it.

Formats:
  svg   vector drawing with one rectangle per visible item
  png   raster image, rendered through Graphviz
  dot   Graphviz source with pinned node positions
  json  the layout (same as the layout command)

With a single format, -o names the output file. With several formats, -o is
the base path and the format is appended as the extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &flags, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(formatNames(), ", ")+" (comma-separated)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw item labels")
	cmd.Flags().BoolVar(&opts.paddingOutlines, "padding-outlines", false, "outline the padding used by random placement")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	flags.register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formatNames(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, flags *optionFlags, ro *renderOpts) error {
	ctx := cmd.Context()
	sc, opts, err := c.loadScene(cmd, input, flags)
	if err != nil {
		return err
	}
	if formats := parseFormats(ro.formats); len(formats) > 0 {
		opts.Formats = formats
	}
	opts.Labels = opts.Labels || ro.labels
	opts.PaddingOutlines = opts.PaddingOutlines || ro.paddingOutlines
	opts.Refresh = ro.refresh
	formats, err := opts.RenderFormats()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(input)+"...")
	spinner.Start()
	result, err := runner.Execute(ctx, sc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(ro.output, input, formats)
	for _, f := range formats {
		if err := writeFile(ctx, paths[f], result.Artifacts[string(f)]); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(formats)))

	printSuccess("Render complete")
	for _, f := range formats {
		printFile(paths[f])
	}
	printStats(result.Layout, result.Stats.Items, result.CacheInfo.LayoutHit)
	if result.Layout.FellBack {
		printWarning("random placement failed, items were packed into rows")
	}
	return nil
}

// outputPaths maps each format to its output file. A single format with
// an explicit output uses it verbatim; otherwise the base path (output
// without a known extension, or the input without its extension) gets
// the format appended.
func outputPaths(output, input string, formats []render.Format) map[render.Format]string {
	paths := make(map[render.Format]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + string(f)
	}
	return paths
}

func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(render.Formats, render.Format(strings.TrimPrefix(ext, "."))) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func formatNames() []string {
	names := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		names[i] = string(f)
	}
	return names
}
