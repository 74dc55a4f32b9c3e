// Package layout positions a dynamic set of fixed-size items inside a
// resizable container.
//
// # Overview
//
// A [Coordinator] owns the policy: when randomized placement is enabled it
// first asks the scatter engine for a free-form arrangement and, if that
// search gives up, falls back to the row packer, which never fails. The
// chain is an explicit [Fallback] of two [Strategy] values.
//
//	c := layout.New(layout.Options{Randomize: true, Seed: 42}, logger)
//	res := c.Layout(items, geom.Size{Width: 800, Height: 600})
//	fmt.Println(res.Engine, res.Size)
//
// # Items
//
// Items are opaque: the coordinator reads [Item.Width], [Item.Height] and
// [Item.Visible], and writes [Item.SetPosition] once per Layout call for
// every visible item. Invisible items are ignored entirely.
//
// # Caching
//
// The last [Result] is kept until the container size, the item count, any
// item size or any visibility flag changes, or until [Coordinator.Invalidate]
// is called. A Coordinator is meant to be driven from one goroutine, the
// same way a widget toolkit drives its layout managers.
package layout
