// Package scatter places fixed-size rectangles at seeded random positions
// inside a container so that no two of them overlap.
//
// # Overview
//
// [Place] sorts the rectangles by area (largest first) and runs a fixed
// [Schedule] of rounds. In every round each rectangle draws candidate
// positions until one is free of all previously placed rectangles or its
// trial budget runs out. A round that places every rectangle wins; a round
// that does not is abandoned and the next round starts from scratch with
// half the padding.
//
//	out, ok := scatter.Place(sizes, geom.Size{Width: 800, Height: 600}, seed, nil)
//	if !ok {
//	    // fall back to a guaranteed strategy such as rows.Pack
//	}
//
// # Padding
//
// Padding is breathing room between rectangles. Every occupied rectangle and
// every candidate is grown by padding/2 on each side before the overlap test,
// so the grown rectangles of a successful placement are pairwise disjoint.
// Padding does not apply at the container edge: only the rectangles
// themselves are kept inside the container.
//
// # Corner seeding
//
// Rounds with an index above MaxFreePlacement pin the four largest rectangles
// to the top-left, bottom-left, top-right and bottom-right corners before
// scattering the rest.
//
// # Determinism
//
// The generator is a PCG seeded from the caller's seed. The same seed, the
// same sizes in the same order and the same container always produce the
// same positions. Place holds no state between calls and is safe for
// concurrent use.
//
// # Termination
//
// Work is bounded by the schedule: at most MaxTotalTries rounds, each giving
// the i-th remaining rectangle MaxPlaceEntry/remaining² trials. There is no
// timeout.
package scatter
