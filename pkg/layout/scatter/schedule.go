package scatter

const (
	DefaultPadding          = 16
	DefaultMaxTotalTries    = 24
	DefaultMaxFreePlacement = 6
	DefaultMaxPlaceEntry    = 10000
)

// Options tunes the search. Use [DefaultOptions] for the standard values.
type Options struct {
	// Padding is the spacing enforced between rectangles in the first round.
	Padding int
	// MaxTotalTries is the number of rounds.
	MaxTotalTries int
	// MaxFreePlacement is the last round index that scatters every rectangle;
	// later rounds pin the four largest to the corners.
	MaxFreePlacement int
	// MaxPlaceEntry is divided by remaining² to get a rectangle's trial budget.
	MaxPlaceEntry int
}

var defaultOpts = Options{
	Padding:          DefaultPadding,
	MaxTotalTries:    DefaultMaxTotalTries,
	MaxFreePlacement: DefaultMaxFreePlacement,
	MaxPlaceEntry:    DefaultMaxPlaceEntry,
}

// DefaultOptions returns the standard search options.
func DefaultOptions() Options { return defaultOpts }

// Round is one full attempt at placing every rectangle.
type Round struct {
	Index   int
	Padding int
	Corners bool
}

// Schedule is the ordered list of rounds a search may run.
type Schedule []Round

// NewSchedule enumerates the rounds for opts. Padding halves after every
// round and never goes below zero.
func NewSchedule(opts Options) Schedule {
	n := max(0, opts.MaxTotalTries)
	pad := max(0, opts.Padding)
	rounds := make(Schedule, 0, n)
	for i := range n {
		rounds = append(rounds, Round{
			Index:   i,
			Padding: pad,
			Corners: i > opts.MaxFreePlacement,
		})
		pad /= 2
	}
	return rounds
}

// trialBudget returns how many candidates a rectangle may draw when
// remaining rectangles (itself included) are still unplaced.
func trialBudget(maxPlaceEntry, remaining int) int {
	if remaining <= 0 {
		return 0
	}
	return max(1, maxPlaceEntry/(remaining*remaining))
}

// MaxTrials is the upper bound on candidate draws for n rectangles.
func (s Schedule) MaxTrials(n, maxPlaceEntry int) int {
	perRound := 0
	for remaining := 1; remaining <= n; remaining++ {
		perRound += trialBudget(maxPlaceEntry, remaining)
	}
	return perRound * len(s)
}
