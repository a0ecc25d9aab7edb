package silence

import "math"

// BuildKeepList computes the keep intervals complementary to the detected
// silences over [0, total]. Each keep segment runs from just before the
// previous silence ended to just after the current silence begins, expanded
// outward by padding so cuts do not land on abrupt transitions. Segments
// shorter than minSegment are dropped; the padding formula clamps the end to
// never precede the start, so degenerate candidates fall to the duration
// filter rather than producing negative lengths.
//
// Callers must short-circuit before invoking this when silences is empty:
// no detected silence means nothing to cut, which is a distinct outcome from
// an empty keep list.
func BuildKeepList(silences []Interval, total, minSegment, padding float64) []Interval {
	keeps := make([]Interval, 0, len(silences)+1)
	lastEnd := 0.0
	for _, s := range silences {
		start := math.Max(0, lastEnd-padding)
		end := math.Max(start, s.Start+padding)
		if end-start >= minSegment {
			keeps = append(keeps, Interval{Start: start, End: end})
		}
		lastEnd = s.End
	}
	if total-lastEnd >= minSegment {
		keeps = append(keeps, Interval{Start: math.Max(lastEnd-padding, 0), End: total})
	}
	return keeps
}
