// Package evaluator implements the library of scoring strategies used to
// decide where a color fits best on the canvas.
//
// An Evaluator compares a candidate color against the colors already placed
// around a frontier position and returns an integer score; the placer picks
// the position with the lowest score. Every evaluator is built from a Metric
// (a pairwise distance) and a Reduction:
//
//   - min: the distance to the closest neighbor
//   - avg: the mean distance to all neighbors, truncated toward zero
//
// # Metrics
//
// Pairwise distances on the packed RGB value:
//   - euclidean, taxicab, chebyshev, minkowski (p=8)
//   - hamming (popcount of XOR), jaccard (AND/OR ratio of the packed integers)
//   - damerau-levenshtein (edit distance of the decimal strings)
//   - hellinger, kullback-leibler (channels treated as distributions)
//   - cielab, ciede2000 (perceptual distances via go-colorful)
//
// Differences of single-color properties:
//   - brightness, warmth, luminance, luma, chroma, saturation, hue
//
// Evaluators are looked up by name, e.g. "avg-euclidean" or "min-hamming":
//
//	e, err := evaluator.Lookup("min-chebyshev")
//	score := e.Evaluate(candidate, neighbors)
//
// An empty neighbor list always scores 0, and no metric divides by zero.
package evaluator
