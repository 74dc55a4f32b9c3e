package rows

import (
	"fmt"
	"strings"

	"github.com/matzehuels/panelfit/pkg/geom"
)

// DefaultMaxCompressTries bounds the Balanced compaction search.
const DefaultMaxCompressTries = 3

// Style selects how items are distributed over rows.
type Style int

const (
	// PreferTop packs items in order; partial rows end up at the bottom.
	PreferTop Style = iota
	// PreferBottom packs items in reverse and mirrors the result so the
	// fullest rows end up at the bottom.
	PreferBottom
	// Balanced narrows the width bound as long as that adds no height.
	Balanced
)

var styleNames = map[Style]string{
	PreferTop:    "prefer-top",
	PreferBottom: "prefer-bottom",
	Balanced:     "balanced",
}

func (s Style) String() string { return enumString(styleNames, s) }

// ParseStyle parses "prefer-top", "prefer-bottom" or "balanced".
func ParseStyle(name string) (Style, error) { return parseEnum(styleNames, "style", name) }

// Align positions a row inside the available width.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

var alignNames = map[Align]string{
	AlignLeft:   "left",
	AlignCenter: "center",
	AlignRight:  "right",
}

func (a Align) String() string { return enumString(alignNames, a) }

// ParseAlign parses "left", "center" or "right".
func ParseAlign(name string) (Align, error) { return parseEnum(alignNames, "align", name) }

// GapPolicy decides which rows spread their leftover width as extra gaps.
type GapPolicy int

const (
	GapNone GapPolicy = iota
	GapAuto
	GapAutoTop
	GapAutoBottom
)

var gapNames = map[GapPolicy]string{
	GapNone:       "none",
	GapAuto:       "auto",
	GapAutoTop:    "auto-top",
	GapAutoBottom: "auto-bottom",
}

func (g GapPolicy) String() string { return enumString(gapNames, g) }

// ParseGapPolicy parses "none", "auto", "auto-top" or "auto-bottom".
func ParseGapPolicy(name string) (GapPolicy, error) { return parseEnum(gapNames, "gap", name) }

// appliesTo reports whether row index i of n distributes leftover width.
func (g GapPolicy) appliesTo(i, n int) bool {
	switch g {
	case GapAuto:
		return true
	case GapAutoTop:
		return i == 0
	case GapAutoBottom:
		return i == n-1
	default:
		return false
	}
}

// Options configures [Pack]. The zero value packs items at their own size,
// left aligned, with no gaps.
type Options struct {
	Style Style
	Align Align
	Gap   GapPolicy

	// MinHorizontalGap is the mandatory gap between neighbours in a row.
	MinHorizontalGap int
	// MaxHorizontalGap caps every gap, mandatory or distributed. Zero means
	// no cap.
	MaxHorizontalGap int
	// MinVerticalGap separates consecutive rows.
	MinVerticalGap int

	// Insets offset every position and are added to the overall size.
	Insets geom.Insets

	// ForceSize makes every item use this size.
	ForceSize *geom.Size
	// UniformSize makes every item use the largest width and height found.
	// Ignored when ForceSize is set.
	UniformSize bool

	// MaxCompressTries bounds the Balanced search. Zero means
	// DefaultMaxCompressTries; negative disables compaction.
	MaxCompressTries int
}

func (o Options) compressTries() int {
	switch {
	case o.MaxCompressTries == 0:
		return DefaultMaxCompressTries
	case o.MaxCompressTries < 0:
		return 0
	default:
		return o.MaxCompressTries
	}
}

// mandatoryGap is MinHorizontalGap clamped by the ceiling.
func (o Options) mandatoryGap() int {
	gap := max(0, o.MinHorizontalGap)
	if o.MaxHorizontalGap > 0 {
		gap = min(gap, o.MaxHorizontalGap)
	}
	return gap
}

func enumString[T ~int](names map[T]string, v T) string {
	if s, ok := names[v]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", int(v))
}

// Names lists the accepted spellings of each enum, in declaration order.
var (
	StyleNames = []string{"prefer-top", "prefer-bottom", "balanced"}
	AlignNames = []string{"left", "center", "right"}
	GapNames   = []string{"none", "auto", "auto-top", "auto-bottom"}
)

func parseEnum[T ~int](names map[T]string, kind, name string) (T, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for v, s := range names {
		if s == want {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("invalid %s: %q", kind, name)
}
