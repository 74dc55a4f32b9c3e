// Package rows packs fixed-size items into horizontal rows, left to right,
// wrapping whenever the next item would exceed the width bound. Packing
// never fails: an item wider than the bound gets a row of its own.
package rows

import (
	"slices"

	"github.com/matzehuels/panelfit/pkg/geom"
)

// Row is one horizontal band of the result.
type Row struct {
	// Items are input indices in left-to-right order.
	Items []int
	// Width is the packed width: item widths plus mandatory gaps.
	Width int
	// Height is the tallest item in the row.
	Height int
	// X is the absolute x of the first item after alignment.
	X int
	// Y is the absolute y of the row.
	Y int
	// Gap is the final gap between neighbours, distributed extra included.
	Gap int
}

// Attempt records one packing pass of the compaction search.
type Attempt struct {
	MaxWidth int
	Width    int // widest row produced
	Height   int
	Kept     bool
}

// Result is a finished row layout. Positions are indexed like the input.
type Result struct {
	Size      geom.Size
	Positions []geom.Point
	// Sizes are the sizes the items were packed at, after ForceSize or
	// UniformSize. Each item's final bounds are Positions[i] with Sizes[i].
	Sizes []geom.Size
	Rows  []Row
	// Attempts holds the baseline pass followed by compaction passes.
	Attempts []Attempt
}

// Pack distributes sizes over rows no wider than maxWidth and positions
// them. A zero or negative maxWidth puts every item on its own row.
func Pack(sizes []geom.Size, maxWidth int, opts Options) Result {
	if len(sizes) == 0 {
		return Result{}
	}

	eff := EffectiveSizes(sizes, opts)
	order := make([]int, len(eff))
	for i := range order {
		order[i] = i
	}
	reverse := opts.Style == PreferBottom
	if reverse {
		slices.Reverse(order)
	}

	gap := opts.mandatoryGap()
	rows := packPass(eff, order, maxWidth, gap)
	height := totalHeight(rows, opts.MinVerticalGap)
	attempts := []Attempt{{MaxWidth: maxWidth, Width: widest(rows), Height: height, Kept: true}}

	if opts.Style == Balanced {
		rows, attempts = compact(eff, order, rows, gap, opts, attempts)
		height = totalHeight(rows, opts.MinVerticalGap)
	}

	if reverse {
		mirror(rows)
	}

	positions := make([]geom.Point, len(eff))
	finalize(rows, eff, max(maxWidth, widest(rows)), gap, opts, positions)

	content := geom.Size{Width: widest(rows), Height: height}
	return Result{
		Size:      content.Grow(opts.Insets),
		Positions: positions,
		Sizes:     eff,
		Rows:      rows,
		Attempts:  attempts,
	}
}

// compact narrows the bound to one unit less than the widest row, keeping
// each pass only while the total height does not grow.
func compact(eff []geom.Size, order []int, rows []Row, gap int, opts Options, attempts []Attempt) ([]Row, []Attempt) {
	height := totalHeight(rows, opts.MinVerticalGap)
	for range opts.compressTries() {
		prev := widest(rows)
		bound := prev - 1
		if bound <= 0 {
			break
		}
		next := packPass(eff, order, bound, gap)
		a := Attempt{MaxWidth: bound, Width: widest(next), Height: totalHeight(next, opts.MinVerticalGap)}
		if a.Height > height || a.Width >= prev {
			attempts = append(attempts, a)
			break
		}
		a.Kept = true
		attempts = append(attempts, a)
		rows, height = next, a.Height
	}
	return rows, attempts
}

// packPass walks items in order and wraps greedily at maxWidth.
func packPass(eff []geom.Size, order []int, maxWidth, gap int) []Row {
	var rows []Row
	var cur Row
	for _, idx := range order {
		s := eff[idx]
		need := s.Width
		if len(cur.Items) > 0 {
			need += gap
			if cur.Width+need > maxWidth {
				rows = append(rows, cur)
				cur = Row{}
				need = s.Width
			}
		}
		cur.Items = append(cur.Items, idx)
		cur.Width += need
		cur.Height = max(cur.Height, s.Height)
	}
	if len(cur.Items) > 0 {
		rows = append(rows, cur)
	}
	return rows
}

// mirror flips row order and the item order inside every row. Packed
// widths and heights are order independent and stay valid.
func mirror(rows []Row) {
	slices.Reverse(rows)
	for i := range rows {
		slices.Reverse(rows[i].Items)
	}
}

// finalize spreads auto gaps, aligns each row inside bound and writes
// absolute positions.
func finalize(rows []Row, eff []geom.Size, bound, gap int, opts Options, positions []geom.Point) {
	y := opts.Insets.Top
	for i := range rows {
		r := &rows[i]
		n := len(r.Items)
		leftover := max(0, bound-r.Width)

		r.Gap = gap
		if n > 1 && opts.Gap.appliesTo(i, len(rows)) {
			extra := leftover / (n - 1)
			if opts.MaxHorizontalGap > 0 {
				extra = min(extra, max(0, opts.MaxHorizontalGap-gap))
			}
			r.Gap += extra
			leftover -= extra * (n - 1)
		}

		r.X = opts.Insets.Left + alignOffset(opts.Align, leftover)
		r.Y = y
		x := r.X
		for _, idx := range r.Items {
			positions[idx] = geom.Point{X: x, Y: y}
			x += eff[idx].Width + r.Gap
		}
		y += r.Height + opts.MinVerticalGap
	}
}

func alignOffset(a Align, leftover int) int {
	if leftover <= 0 {
		return 0
	}
	switch a {
	case AlignCenter:
		return leftover / 2
	case AlignRight:
		return leftover
	default:
		return 0
	}
}

// EffectiveSizes returns the sizes items are laid out at: ForceSize for
// every item, or the largest width and height when UniformSize is set, or
// a copy of sizes otherwise.
func EffectiveSizes(sizes []geom.Size, opts Options) []geom.Size {
	eff := make([]geom.Size, len(sizes))
	switch {
	case opts.ForceSize != nil:
		for i := range eff {
			eff[i] = *opts.ForceSize
		}
	case opts.UniformSize:
		var largest geom.Size
		for _, s := range sizes {
			largest.Width = max(largest.Width, s.Width)
			largest.Height = max(largest.Height, s.Height)
		}
		for i := range eff {
			eff[i] = largest
		}
	default:
		copy(eff, sizes)
	}
	return eff
}

func widest(rows []Row) int {
	w := 0
	for _, r := range rows {
		w = max(w, r.Width)
	}
	return w
}

func totalHeight(rows []Row, vgap int) int {
	if len(rows) == 0 {
		return 0
	}
	h := vgap * (len(rows) - 1)
	for _, r := range rows {
		h += r.Height
	}
	return h
}
