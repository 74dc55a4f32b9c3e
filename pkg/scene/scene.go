package scene

import (
	"fmt"

	"github.com/matzehuels/panelfit/pkg/errors"
	"github.com/matzehuels/panelfit/pkg/geom"
	"github.com/matzehuels/panelfit/pkg/layout"
	"github.com/matzehuels/panelfit/pkg/layout/rows"
)

// Scene is one container and its items.
type Scene struct {
	Container geom.Size   `json:"container" toml:"container"`
	Insets    geom.Insets `json:"insets,omitzero" toml:"insets,omitempty"`
	Seed      *uint64     `json:"seed,omitempty" toml:"seed,omitempty"`
	Randomize *bool       `json:"randomize,omitempty" toml:"randomize,omitempty"`
	Rows      Rows        `json:"rows,omitzero" toml:"rows,omitempty"`
	Items     []Item      `json:"items" toml:"items"`
}

// Rows holds the row packer settings in their textual form.
type Rows struct {
	Style            string     `json:"style,omitempty" toml:"style,omitempty"`
	Align            string     `json:"align,omitempty" toml:"align,omitempty"`
	Gap              string     `json:"gap,omitempty" toml:"gap,omitempty"`
	MinHorizontalGap int        `json:"min_hgap,omitempty" toml:"min_hgap,omitempty"`
	MaxHorizontalGap int        `json:"max_hgap,omitempty" toml:"max_hgap,omitempty"`
	MinVerticalGap   int        `json:"min_vgap,omitempty" toml:"min_vgap,omitempty"`
	ForceSize        *geom.Size `json:"force_size,omitempty" toml:"force_size,omitempty"`
	Uniform          bool       `json:"uniform,omitempty" toml:"uniform,omitempty"`
}

// Item is one rectangle in a scene.
type Item struct {
	ID     string `json:"id,omitempty" toml:"id,omitempty"`
	Label  string `json:"label,omitempty" toml:"label,omitempty"`
	Width  int    `json:"width" toml:"width"`
	Height int    `json:"height" toml:"height"`
	Hidden bool   `json:"hidden,omitempty" toml:"hidden,omitempty"`
}

// Normalize assigns positional ids to items that have none.
func (s *Scene) Normalize() {
	for i := range s.Items {
		if s.Items[i].ID == "" {
			s.Items[i].ID = fmt.Sprintf("item-%d", i+1)
		}
	}
}

// Validate checks dimensions, ids and row settings.
func (s *Scene) Validate() error {
	if err := errors.ValidateDimensions(errors.ErrCodeInvalidContainer, "container", s.Container.Width, s.Container.Height); err != nil {
		return err
	}
	in := s.Insets
	if in.Top < 0 || in.Left < 0 || in.Bottom < 0 || in.Right < 0 {
		return errors.New(errors.ErrCodeInvalidContainer, "insets must not be negative")
	}
	seen := make(map[string]int, len(s.Items))
	for i, it := range s.Items {
		if err := errors.ValidateItemID(it.ID); err != nil {
			return err
		}
		name := it.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		if err := errors.ValidateDimensions(errors.ErrCodeInvalidItem, "item "+name, it.Width, it.Height); err != nil {
			return err
		}
		if it.ID == "" {
			continue
		}
		if j, dup := seen[it.ID]; dup {
			return errors.New(errors.ErrCodeInvalidItem, "duplicate item id %q (items %d and %d)", it.ID, j+1, i+1)
		}
		seen[it.ID] = i
	}
	if err := s.Rows.validate(); err != nil {
		return err
	}
	return nil
}

func (r Rows) validate() error {
	if err := errors.ValidateEnum("style", r.Style, rows.StyleNames); err != nil {
		return err
	}
	if err := errors.ValidateEnum("align", r.Align, rows.AlignNames); err != nil {
		return err
	}
	if err := errors.ValidateEnum("gap", r.Gap, rows.GapNames); err != nil {
		return err
	}
	if r.MinHorizontalGap < 0 || r.MaxHorizontalGap < 0 || r.MinVerticalGap < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "row gaps must not be negative")
	}
	if r.ForceSize != nil {
		return errors.ValidateDimensions(errors.ErrCodeInvalidOption, "force_size", r.ForceSize.Width, r.ForceSize.Height)
	}
	return nil
}

// Apply overlays the scene's row settings on base. Empty fields keep
// base's value; insets always come from the scene.
func (r Rows) Apply(base rows.Options, insets geom.Insets) (rows.Options, error) {
	out := base
	out.Insets = insets
	if r.Style != "" {
		st, err := rows.ParseStyle(r.Style)
		if err != nil {
			return out, errors.Wrap(errors.ErrCodeInvalidOption, err, "rows")
		}
		out.Style = st
	}
	if r.Align != "" {
		al, err := rows.ParseAlign(r.Align)
		if err != nil {
			return out, errors.Wrap(errors.ErrCodeInvalidOption, err, "rows")
		}
		out.Align = al
	}
	if r.Gap != "" {
		gp, err := rows.ParseGapPolicy(r.Gap)
		if err != nil {
			return out, errors.Wrap(errors.ErrCodeInvalidOption, err, "rows")
		}
		out.Gap = gp
	}
	if r.MinHorizontalGap != 0 {
		out.MinHorizontalGap = r.MinHorizontalGap
	}
	if r.MaxHorizontalGap != 0 {
		out.MaxHorizontalGap = r.MaxHorizontalGap
	}
	if r.MinVerticalGap != 0 {
		out.MinVerticalGap = r.MinVerticalGap
	}
	if r.ForceSize != nil {
		fs := *r.ForceSize
		out.ForceSize = &fs
	}
	if r.Uniform {
		out.UniformSize = true
	}
	return out, nil
}

// Boxes converts every item, hidden ones included, to layout boxes.
func (s *Scene) Boxes() []*layout.Box {
	boxes := make([]*layout.Box, len(s.Items))
	for i, it := range s.Items {
		boxes[i] = &layout.Box{ID: it.ID, Label: it.Label, W: it.Width, H: it.Height, Hidden: it.Hidden}
	}
	return boxes
}

// LayoutItems returns boxes as a slice of [layout.Item].
func LayoutItems(boxes []*layout.Box) []layout.Item {
	items := make([]layout.Item, len(boxes))
	for i, b := range boxes {
		items[i] = b
	}
	return items
}

// VisibleCount returns the number of items that take part in layout.
func (s *Scene) VisibleCount() int {
	n := 0
	for _, it := range s.Items {
		if !it.Hidden {
			n++
		}
	}
	return n
}
