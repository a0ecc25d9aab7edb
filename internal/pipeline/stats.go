package pipeline

import (
	"time"

	"hushcut/internal/silence"
)

// Stats summarizes one run for the final report and the history row.
type Stats struct {
	RunID           string
	OutputPath      string
	InputFiles      int
	OriginalSeconds float64
	FinalSeconds    float64
	SilencesFound   int
	SegmentsKept    int
	SegmentsFailed  int
	KeepIntervals   []silence.Interval
	Elapsed         time.Duration
	DryRun          bool
	NothingToCut    bool
}

// ReductionPercent reports how much shorter the output is than the input.
func (s *Stats) ReductionPercent() float64 {
	if s.OriginalSeconds <= 0 {
		return 0
	}
	return (s.OriginalSeconds - s.FinalSeconds) / s.OriginalSeconds * 100
}
