package silence

import "fmt"

// Interval is a time range in seconds from stream start, Start < End.
// The parser produces silence intervals; BuildKeepList produces the
// complementary keep intervals using the same shape.
type Interval struct {
	Start float64
	End   float64
}

// Duration returns the interval length in seconds.
func (i Interval) Duration() float64 {
	return i.End - i.Start
}

func (i Interval) String() string {
	return fmt.Sprintf("[%.3f, %.3f]", i.Start, i.End)
}
