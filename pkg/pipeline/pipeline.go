// Package pipeline runs the scene → layout → render pipeline for panelfit.
//
// The CLI and the HTTP server share this package so that defaults,
// validation and caching behave identically on every entry point.
//
// # Stages
//
//  1. Arrange: run the layout coordinator over a scene's items
//  2. Render: produce SVG, PNG, DOT or JSON from the arranged layout
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.Defaults().Merge(pipeline.FromScene(sc))
//	res, err := runner.Execute(ctx, sc, opts)
//	if err != nil {
//	    return err
//	}
//	svg := res.Artifacts["svg"]
//
// # Option precedence
//
// Options are merged in this order, later sources winning for every field
// they set: [Defaults], the config file ([LoadConfig]), the scene document
// ([FromScene]) and finally command-line flags or request parameters.
package pipeline

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/panelfit/pkg/cache"
	"github.com/matzehuels/panelfit/pkg/errors"
	"github.com/matzehuels/panelfit/pkg/geom"
	"github.com/matzehuels/panelfit/pkg/layout"
	"github.com/matzehuels/panelfit/pkg/layout/rows"
	"github.com/matzehuels/panelfit/pkg/layout/scatter"
	"github.com/matzehuels/panelfit/pkg/render"
	"github.com/matzehuels/panelfit/pkg/scene"
)

// Default values shared by the CLI and the server.
const (
	DefaultWidth     = 800
	DefaultHeight    = 600
	DefaultSeed      = layout.DefaultSeed
	DefaultStyle     = "prefer-top"
	DefaultAlign     = "left"
	DefaultGap       = "none"
	DefaultRandomize = true
)

// Options configures one pipeline run. Zero fields mean "not set" so that
// option sources can be layered with [Options.Merge].
type Options struct {
	// Layout options
	Width     int     `json:"width,omitempty" toml:"width,omitempty"`
	Height    int     `json:"height,omitempty" toml:"height,omitempty"`
	Randomize *bool   `json:"randomize,omitempty" toml:"randomize,omitempty"`
	Seed      *uint64 `json:"seed,omitempty" toml:"seed,omitempty"`
	Style     string  `json:"style,omitempty" toml:"style,omitempty"`
	Align     string  `json:"align,omitempty" toml:"align,omitempty"`
	Gap       string  `json:"gap,omitempty" toml:"gap,omitempty"`
	MinHGap   int     `json:"min_hgap,omitempty" toml:"min_hgap,omitempty"`
	MaxHGap   int     `json:"max_hgap,omitempty" toml:"max_hgap,omitempty"`
	MinVGap   int     `json:"min_vgap,omitempty" toml:"min_vgap,omitempty"`
	// Padding is the scatter engine's starting padding.
	Padding int `json:"padding,omitempty" toml:"padding,omitempty"`
	// MaxTries is the number of scatter rounds.
	MaxTries int `json:"max_tries,omitempty" toml:"max_tries,omitempty"`

	// Render options
	Formats         []string `json:"formats,omitempty" toml:"formats,omitempty"`
	Labels          bool     `json:"labels,omitempty" toml:"labels,omitempty"`
	PaddingOutlines bool     `json:"padding_outlines,omitempty" toml:"padding_outlines,omitempty"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	Logger *log.Logger `json:"-" toml:"-"`
}

// Defaults returns the built-in options.
func Defaults() Options {
	randomize := DefaultRandomize
	return Options{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Randomize: &randomize,
		Seed:      Uint64(DefaultSeed),
		Style:     DefaultStyle,
		Align:     DefaultAlign,
		Gap:       DefaultGap,
		Formats:   []string{string(render.FormatSVG)},
	}
}

// Bool returns a pointer to b, for Options.Randomize.
func Bool(b bool) *bool { return &b }

// Uint64 returns a pointer to v, for Options.Seed.
func Uint64(v uint64) *uint64 { return &v }

// Merge returns o overlaid with every field over sets.
func (o Options) Merge(over Options) Options {
	out := o
	setInt(&out.Width, over.Width)
	setInt(&out.Height, over.Height)
	if over.Randomize != nil {
		out.Randomize = Bool(*over.Randomize)
	}
	if over.Seed != nil {
		out.Seed = Uint64(*over.Seed)
	}
	setString(&out.Style, over.Style)
	setString(&out.Align, over.Align)
	setString(&out.Gap, over.Gap)
	setInt(&out.MinHGap, over.MinHGap)
	setInt(&out.MaxHGap, over.MaxHGap)
	setInt(&out.MinVGap, over.MinVGap)
	setInt(&out.Padding, over.Padding)
	setInt(&out.MaxTries, over.MaxTries)
	if len(over.Formats) > 0 {
		out.Formats = append([]string(nil), over.Formats...)
	}
	out.Labels = out.Labels || over.Labels
	out.PaddingOutlines = out.PaddingOutlines || over.PaddingOutlines
	out.Refresh = out.Refresh || over.Refresh
	if over.Logger != nil {
		out.Logger = over.Logger
	}
	return out
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// FromScene extracts the options a scene document sets.
func FromScene(sc *scene.Scene) Options {
	o := Options{
		Width:     sc.Container.Width,
		Height:    sc.Container.Height,
		Randomize: sc.Randomize,
		Style:     sc.Rows.Style,
		Align:     sc.Rows.Align,
		Gap:       sc.Rows.Gap,
		MinHGap:   sc.Rows.MinHorizontalGap,
		MaxHGap:   sc.Rows.MaxHorizontalGap,
		MinVGap:   sc.Rows.MinVerticalGap,
	}
	if sc.Seed != nil {
		o.Seed = Uint64(*sc.Seed)
	}
	return o
}

// IsRandomized reports whether scatter placement is enabled.
func (o Options) IsRandomized() bool {
	if o.Randomize == nil {
		return DefaultRandomize
	}
	return *o.Randomize
}

// SeedValue returns the seed, or DefaultSeed when none is set.
func (o Options) SeedValue() uint64 {
	if o.Seed == nil {
		return DefaultSeed
	}
	return *o.Seed
}

// Container returns the container size.
func (o Options) Container() geom.Size {
	return geom.Size{Width: o.Width, Height: o.Height}
}

// Validate checks every option. It does not fill defaults.
func (o Options) Validate() error {
	if err := errors.ValidateDimensions(errors.ErrCodeInvalidContainer, "container", o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateEnum("style", o.Style, rows.StyleNames); err != nil {
		return err
	}
	if err := errors.ValidateEnum("align", o.Align, rows.AlignNames); err != nil {
		return err
	}
	if err := errors.ValidateEnum("gap", o.Gap, rows.GapNames); err != nil {
		return err
	}
	if o.MinHGap < 0 || o.MaxHGap < 0 || o.MinVGap < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "gaps must not be negative")
	}
	if o.Padding < 0 || o.MaxTries < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "padding and max_tries must not be negative")
	}
	if _, err := o.RenderFormats(); err != nil {
		return err
	}
	return nil
}

// RenderFormats parses Formats.
func (o Options) RenderFormats() ([]render.Format, error) {
	formats, err := render.ParseFormats(strings.Join(o.Formats, ","))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "formats")
	}
	return formats, nil
}

// LayoutOptions builds coordinator options for sc. Size overrides and
// insets always come from the scene.
func (o Options) LayoutOptions(sc *scene.Scene) (layout.Options, error) {
	ro, err := scene.Rows{
		Style:            o.Style,
		Align:            o.Align,
		Gap:              o.Gap,
		MinHorizontalGap: o.MinHGap,
		MaxHorizontalGap: o.MaxHGap,
		MinVerticalGap:   o.MinVGap,
		ForceSize:        sc.Rows.ForceSize,
		Uniform:          sc.Rows.Uniform,
	}.Apply(rows.Options{}, sc.Insets)
	if err != nil {
		return layout.Options{}, err
	}

	so := scatter.DefaultOptions()
	if o.Padding > 0 {
		so.Padding = o.Padding
	}
	if o.MaxTries > 0 {
		so.MaxTotalTries = o.MaxTries
	}

	return layout.Options{
		Randomize: o.IsRandomized(),
		Seed:      o.SeedValue(),
		Scatter:   &so,
		Rows:      ro,
		MinSize:   geom.Size{}.Grow(sc.Insets),
	}, nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:     o.Width,
		Height:    o.Height,
		Randomize: o.IsRandomized(),
		Seed:      o.SeedValue(),
		Style:     o.Style,
		Align:     o.Align,
		Gap:       o.Gap,
		MinHGap:   o.MinHGap,
		MaxHGap:   o.MaxHGap,
		MinVGap:   o.MinVGap,
		Padding:   o.Padding,
		MaxTries:  o.MaxTries,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o Options) ArtifactKeyOpts(format render.Format) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  string(format),
		Labels:  o.Labels,
		Padding: o.PaddingOutlines,
	}
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Logger
}
