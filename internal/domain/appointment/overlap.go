package appointment

import "time"

// Overlaps reports whether the half-open intervals [startA, endA) and
// [startB, endB) intersect. Touching intervals (endA == startB) do not
// overlap, so back-to-back appointments are permitted. Callers guarantee
// start < end for both intervals.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return !(!endA.After(startB) || !startA.Before(endB))
}
