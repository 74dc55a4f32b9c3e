// Package render turns finished layouts into output documents.
//
// # Overview
//
// A [Frame] is the renderer-facing view of one layout call: the overall
// size, the engine that produced it and one [Block] per visible item.
// Build it with [NewFrame] after the coordinator has positioned the boxes.
//
//	res := coord.Layout(scene.LayoutItems(boxes), container)
//	f := render.NewFrame(boxes, res, seed)
//	svg := render.RenderSVG(f, render.WithLabels())
//
// # Formats
//
//   - SVG ([RenderSVG]): one <rect> per block, optional labels and dashed
//     padding outlines for scatter layouts
//   - JSON ([RenderJSON]): positions and sizes for other tools
//   - DOT ([ToDOT]): a Graphviz graph with every node pinned to its layout
//     position, rendered to SVG or PNG by [RenderGraphviz]
//
// Graphviz runs in-process through github.com/goccy/go-graphviz, so PNG
// output needs no external tools.
package render
