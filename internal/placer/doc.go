// Package placer implements the frontier-growth algorithm that lays out an
// all-colors image.
//
// # Algorithm
//
// The color space is enumerated and shuffled with a seeded generator. Colors
// are then placed one at a time:
//
//  1. If the frontier (open set) is empty, the color goes to the seed point:
//     the canvas center, or a random cell in strict mode.
//  2. Otherwise every frontier position is scored by the evaluator against
//     the colors already placed around it, and the color goes to the lowest
//     score. Ties are broken by row-major position (smallest y, then x).
//  3. The chosen position leaves the frontier and its unplaced neighbors
//     join it.
//
// # Determinism
//
// A run depends only on its Options. The frontier's internal order is never
// observable: the tie-break compares positions, not iteration order, and the
// parallel scan reduces per-worker winners with the same rule.
//
// # Cost
//
// Each placement scans the whole frontier and evaluates up to eight
// neighbors per position, so a run is O(N * |open|) for N colors. Setting
// Options.Workers spreads each scan across goroutines.
package placer
