package scatter

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/panelfit/pkg/geom"
)

// Outcome is the result of a search. Positions are indexed like the input
// sizes and are only set when the search succeeded.
type Outcome struct {
	Positions []geom.Point
	Size      geom.Size
	// Padding is the padding of the winning round.
	Padding int
	// Rounds and Trials count the work done, successful or not.
	Rounds int
	Trials int
}

// Place searches for non-overlapping positions for sizes inside area.
// It reports false when the rectangles cannot fit by total area, or when
// every round of the schedule failed. A nil opts uses [DefaultOptions].
func Place(sizes []geom.Size, area geom.Size, seed uint64, opts *Options) (Outcome, bool) {
	if opts == nil {
		opts = &defaultOpts
	}
	if len(sizes) == 0 {
		return Outcome{}, true
	}
	if geom.TotalArea(sizes) > area.Area() {
		return Outcome{}, false
	}

	p := placer{
		sizes: sizes,
		area:  area,
		order: largestFirst(sizes),
		rng:   rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
		entry: opts.MaxPlaceEntry,
	}

	var out Outcome
	for _, round := range NewSchedule(*opts) {
		out.Rounds++
		positions, ok := p.run(round, &out.Trials)
		if ok {
			out.Positions = positions
			out.Size = area
			out.Padding = round.Padding
			return out, true
		}
	}
	return out, false
}

type placer struct {
	sizes []geom.Size
	area  geom.Size
	order []int
	rng   *rand.Rand
	entry int
}

func (p *placer) run(round Round, trials *int) ([]geom.Point, bool) {
	positions := make([]geom.Point, len(p.sizes))
	occupied := make([]geom.Rect, 0, len(p.order))
	half := round.Padding / 2

	start := 0
	if round.Corners {
		start = min(len(p.order), 4)
		for k := range start {
			idx := p.order[k]
			pt := corner(k, p.sizes[idx], p.area)
			r := geom.NewRect(pt, p.sizes[idx])
			if !r.Within(p.area) {
				return nil, false
			}
			padded := r.Expand(half)
			if collides(padded, occupied) {
				return nil, false
			}
			occupied = append(occupied, padded)
			positions[idx] = pt
		}
	}

	for i := start; i < len(p.order); i++ {
		idx := p.order[i]
		size := p.sizes[idx]
		spanX := p.area.Width - size.Width
		spanY := p.area.Height - size.Height
		if spanX <= 0 || spanY <= 0 {
			return nil, false
		}

		placed := false
		for range trialBudget(p.entry, len(p.order)-i) {
			*trials++
			pt := geom.Point{X: p.rng.IntN(spanX), Y: p.rng.IntN(spanY)}
			padded := geom.NewRect(pt, size).Expand(half)
			if collides(padded, occupied) {
				continue
			}
			occupied = append(occupied, padded)
			positions[idx] = pt
			placed = true
			break
		}
		if !placed {
			return nil, false
		}
	}
	return positions, true
}

// corner returns the k-th pin: top-left, bottom-left, top-right, bottom-right.
func corner(k int, s, area geom.Size) geom.Point {
	switch k {
	case 0:
		return geom.Point{X: 0, Y: 0}
	case 1:
		return geom.Point{X: 0, Y: area.Height - s.Height}
	case 2:
		return geom.Point{X: area.Width - s.Width, Y: 0}
	default:
		return geom.Point{X: area.Width - s.Width, Y: area.Height - s.Height}
	}
}

func collides(r geom.Rect, occupied []geom.Rect) bool {
	for _, o := range occupied {
		if geom.Overlaps(r, o) {
			return true
		}
	}
	return false
}

// largestFirst returns input indices sorted by area, descending. Ties keep
// input order.
func largestFirst(sizes []geom.Size) []int {
	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(sizes[b].Area(), sizes[a].Area())
	})
	return order
}
