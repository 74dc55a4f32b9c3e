// Package scene reads and writes layout scene documents.
//
// A scene describes one container and the items to arrange inside it,
// together with the arrangement options. Scenes are stored as JSON or
// TOML; the format is chosen from the file extension.
//
// # JSON Format
//
//	{
//	  "container": {"width": 400, "height": 300},
//	  "insets": {"top": 8, "left": 8, "bottom": 8, "right": 8},
//	  "seed": 7,
//	  "randomize": true,
//	  "rows": {"style": "balanced", "align": "center", "gap": "auto", "min_hgap": 4},
//	  "items": [
//	    {"id": "chart", "width": 160, "height": 120},
//	    {"id": "legend", "width": 80, "height": 40, "label": "Legend"},
//	    {"id": "notes", "width": 120, "height": 60, "hidden": true}
//	  ]
//	}
//
// # TOML Format
//
//	randomize = false
//
//	[container]
//	width = 400
//	height = 300
//
//	[rows]
//	style = "prefer-bottom"
//
//	[[items]]
//	id = "chart"
//	width = 160
//	height = 120
//
// Seed and randomize are optional; when absent the caller's defaults
// apply. Items keep their document order, which is the order the layout
// engines see. Items without an id get a positional one ("item-1", ...)
// from [Scene.Normalize].
package scene
