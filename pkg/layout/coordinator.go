package layout

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/panelfit/pkg/geom"
	"github.com/matzehuels/panelfit/pkg/layout/rows"
	"github.com/matzehuels/panelfit/pkg/layout/scatter"
)

// DefaultSeed is the seed callers use when none is given.
const DefaultSeed = uint64(42)

// Options configures a [Coordinator].
type Options struct {
	// Randomize enables the scatter engine ahead of row packing.
	Randomize bool
	// Seed drives the scatter engine. Zero is a seed like any other.
	Seed uint64
	// Scatter tunes the search; nil uses scatter.DefaultOptions.
	Scatter *scatter.Options
	// Rows configures the row packer, including container insets.
	Rows rows.Options
	// MinSize is reported by randomized layouts of an empty item set.
	MinSize geom.Size
}

// Stats counts coordinator work.
type Stats struct {
	Computed  int
	CacheHits int
	Fallbacks int
}

// Coordinator computes layouts and applies them to items.
type Coordinator struct {
	opts     Options
	strategy Strategy
	logger   *log.Logger
	stats    Stats

	valid     bool
	container geom.Size
	visible   []bool
	sizes     []geom.Size
	last      Result
}

// New creates a coordinator. A nil logger discards output.
func New(opts Options, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	c := &Coordinator{logger: logger}
	c.SetOptions(opts)
	return c
}

// Options returns the active options.
func (c *Coordinator) Options() Options { return c.opts }

// SetOptions replaces the options and drops the cached result.
func (c *Coordinator) SetOptions(opts Options) {
	c.opts = opts
	c.strategy = buildStrategy(opts)
	c.Invalidate()
}

// Strategy returns the strategy chain in use.
func (c *Coordinator) Strategy() Strategy { return c.strategy }

// Stats returns counters since creation.
func (c *Coordinator) Stats() Stats { return c.stats }

// Invalidate drops the cached result.
func (c *Coordinator) Invalidate() {
	c.valid = false
	c.last = Result{}
}

func buildStrategy(opts Options) Strategy {
	packer := RowsStrategy{Options: opts.Rows}
	if !opts.Randomize {
		return packer
	}
	return Fallback(ScatterStrategy{
		Seed:    opts.Seed,
		Options: opts.Scatter,
		Insets:  opts.Rows.Insets,
		MinSize: opts.MinSize,
	}, packer)
}

// PreferredSize returns the size the items want inside a container of the
// given hint size.
func (c *Coordinator) PreferredSize(items []Item, hint geom.Size) geom.Size {
	return c.Compute(items, hint).Size
}

// Layout computes the layout for container and writes the position of
// every visible item. Items implementing [Sizer] also receive the size
// they were laid out at.
func (c *Coordinator) Layout(items []Item, container geom.Size) Result {
	res := c.Compute(items, container)
	k := 0
	for _, it := range items {
		if !it.Visible() {
			continue
		}
		p := res.Positions[k]
		it.SetPosition(p.X, p.Y)
		if s, ok := it.(Sizer); ok {
			sz := res.Sizes[k]
			s.SetSize(sz.Width, sz.Height)
		}
		k++
	}
	return res
}

// Compute returns the layout for the visible items without touching them.
// Size overrides in the row options apply to every engine. The result is
// served from cache when nothing relevant changed.
func (c *Coordinator) Compute(items []Item, container geom.Size) Result {
	visible := make([]bool, len(items))
	sizes := make([]geom.Size, 0, len(items))
	for i, it := range items {
		visible[i] = it.Visible()
		if visible[i] {
			sizes = append(sizes, geom.Size{Width: it.Width(), Height: it.Height()})
		}
	}

	if c.valid && c.container == container && slices.Equal(c.visible, visible) && slices.Equal(c.sizes, sizes) {
		c.stats.CacheHits++
		return c.last
	}

	eff := rows.EffectiveSizes(sizes, c.opts.Rows)
	res, _ := c.strategy.Arrange(eff, container)
	if len(res.Sizes) != len(eff) {
		res.Sizes = eff
	}
	c.stats.Computed++
	if res.FellBack {
		c.stats.Fallbacks++
		c.logger.Debug("random placement gave up, packed rows instead",
			"items", len(sizes), "container", container, "seed", c.opts.Seed)
	}
	c.logger.Debug("layout computed",
		"engine", res.Engine, "items", len(sizes), "size", res.Size)

	c.valid = true
	c.container = container
	c.visible = visible
	c.sizes = sizes
	c.last = res
	return res
}
