// Package transform provides pre-layout reorderings of the image sequence.
//
// # Overview
//
// The layout engine always keeps its input order. Any reordering is applied
// here, before pagination, so the engine's ordering contract stays simple:
//
//   - [OrderIdentity]: keep the input order
//   - [OrderReverse]: last image first
//   - [OrderShuffle]: seeded pseudo-random permutation
//
// # Shuffling
//
// [Apply] seeds a PCG generator from the given seed so the same seed always
// yields the same permutation. [Shuffle] accepts any *rand.Rand for callers
// and tests that want to control the randomness directly:
//
//	ordered := transform.Apply(images, transform.OrderShuffle, 42)
//	plan, err := layout.Assemble(ordered, grid, page, sep, consts)
//
// All functions return a new slice and never modify their input.
package transform
