package cursor

import "sort"

// DefaultBoundaryEpsilon keeps navigation from re-selecting the boundary
// currently under the cursor.
const DefaultBoundaryEpsilon = 0.01

// PreviousBoundary returns the greatest boundary strictly less than
// t - epsilon. bounds must be sorted ascending.
func PreviousBoundary(bounds []float64, t, epsilon float64) (float64, bool) {
	limit := t - epsilon
	i := sort.Search(len(bounds), func(i int) bool { return bounds[i] >= limit })
	if i == 0 {
		return 0, false
	}
	return bounds[i-1], true
}

// NextBoundary returns the least boundary strictly greater than
// t + epsilon. bounds must be sorted ascending.
func NextBoundary(bounds []float64, t, epsilon float64) (float64, bool) {
	limit := t + epsilon
	i := sort.Search(len(bounds), func(i int) bool { return bounds[i] > limit })
	if i == len(bounds) {
		return 0, false
	}
	return bounds[i], true
}

// SeekPreviousBoundary moves the cursor to the previous boundary.
// Returns false, leaving the cursor in place, when there is none.
func (c *Cursor) SeekPreviousBoundary(bounds []float64, epsilon float64) bool {
	b, ok := PreviousBoundary(bounds, c.time, epsilon)
	if ok {
		c.Seek(b)
	}
	return ok
}

// SeekNextBoundary moves the cursor to the next boundary.
func (c *Cursor) SeekNextBoundary(bounds []float64, epsilon float64) bool {
	b, ok := NextBoundary(bounds, c.time, epsilon)
	if ok {
		c.Seek(b)
	}
	return ok
}
