// Package pkg provides the libraries behind panelfit, a layout engine that
// places rectangles inside a container.
//
// # Overview
//
// A layout takes an ordered list of items (width, height, visibility) and a
// container size and assigns every visible item a top-left position. Two
// engines are available and the coordinator chains them:
//
//	items + container
//	       ↓
//	  [layout] coordinator (cache, visibility, fallback)
//	       ↓                     ↓
//	  [layout/scatter]   →   [layout/rows]
//	  seeded random          row packing,
//	  placement (may fail)   always succeeds
//	       ↓
//	  positions written back to the items
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/panelfit/pkg/geom"
//	    "github.com/matzehuels/panelfit/pkg/layout"
//	)
//
//	boxes := []*layout.Box{
//	    {ID: "chart", W: 320, H: 200},
//	    {ID: "legend", W: 120, H: 80},
//	}
//	items := []layout.Item{boxes[0], boxes[1]}
//
//	c := layout.New(layout.Options{Randomize: true, Seed: 7}, nil)
//	res := c.Layout(items, geom.Size{Width: 800, Height: 600})
//	fmt.Println(res.Engine, boxes[0].Pos, boxes[1].Pos)
//
// # Main Packages
//
// ## Layout
//
// [geom] - Integer points, sizes, rectangles and insets shared by the engines.
//
// [layout/scatter] - Random placement. Tries free placement with shrinking
// padding, then pins the largest items to the corners. Deterministic for a
// given seed.
//
// [layout/rows] - Row packing with three styles (prefer-top, prefer-bottom,
// balanced), alignment, gap policies and width compaction.
//
// [layout] - The coordinator: visibility filtering, engine fallback, result
// caching and the [layout.Strategy] abstraction.
//
// ## Documents and output
//
// [scene] - Scene documents (container, insets, seed, row settings, items)
// in JSON or TOML.
//
// [render] - SVG, JSON and Graphviz (DOT, PNG) output of an arranged scene.
//
// ## Infrastructure
//
// [pipeline] - Options with layered precedence (defaults, config file,
// scene, flags) and a cache-aware runner used by the CLI and the server.
//
// [cache] - Layout and artifact caches: memory, file and Redis back ends.
//
// [store] - Saved layouts: file and MongoDB back ends.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for layout, render, cache and HTTP events.
//
// # Testing
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/layout/...       # Engines and coordinator
//	go test -run Example ./pkg/... # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/panelfit/pkg/geom
// [layout]: https://pkg.go.dev/github.com/matzehuels/panelfit/pkg/layout
// [layout/scatter]: https://pkg.go.dev/github.com/matzehuels/panelfit/pkg/layout/scatter
// [layout/rows]: https://pkg.go.dev/github.com/matzehuels/panelfit/pkg/layout/rows
// [scene]: https://pkg.go.dev/github.com/matzehuels/panelfit/pkg/scene
// [render]: https://pkg.go.dev/github.com/matzehuels/panelfit/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/panelfit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/panelfit/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/panelfit/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/panelfit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/panelfit/pkg/observability
package pkg
