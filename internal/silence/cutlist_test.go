package silence_test

import (
	"math"
	"testing"

	"hushcut/internal/silence"
)

const tolerance = 1e-9

func intervalsEqual(got, want []silence.Interval) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math.Abs(got[i].Start-want[i].Start) > tolerance || math.Abs(got[i].End-want[i].End) > tolerance {
			return false
		}
	}
	return true
}

func TestBuildKeepListSingleSilence(t *testing.T) {
	silences := []silence.Interval{{Start: 2.0, End: 3.0}}
	got := silence.BuildKeepList(silences, 10.0, 0.2, 0.1)
	want := []silence.Interval{{Start: 0.0, End: 2.1}, {Start: 2.9, End: 10.0}}
	if !intervalsEqual(got, want) {
		t.Fatalf("unexpected keep list:\n got %v\nwant %v", got, want)
	}
}

func TestBuildKeepListTable(t *testing.T) {
	cases := []struct {
		name       string
		silences   []silence.Interval
		total      float64
		minSegment float64
		padding    float64
		want       []silence.Interval
	}{
		{
			name:       "silence at stream start drops zero-length lead",
			silences:   []silence.Interval{{Start: 0.0, End: 1.0}},
			total:      5.0,
			minSegment: 0.2,
			padding:    0.0,
			want:       []silence.Interval{{Start: 1.0, End: 5.0}},
		},
		{
			name:       "trailing remainder below minimum is dropped",
			silences:   []silence.Interval{{Start: 1.0, End: 4.95}},
			total:      5.0,
			minSegment: 0.2,
			padding:    0.0,
			want:       []silence.Interval{{Start: 0.0, End: 1.0}},
		},
		{
			name:       "adjacent silences suppress the short middle segment",
			silences:   []silence.Interval{{Start: 1.0, End: 2.0}, {Start: 2.05, End: 3.0}},
			total:      4.0,
			minSegment: 0.2,
			padding:    0.0,
			want:       []silence.Interval{{Start: 0.0, End: 1.0}, {Start: 3.0, End: 4.0}},
		},
		{
			name:       "segments between close silences fall to duration filter",
			silences:   []silence.Interval{{Start: 0.5, End: 0.6}, {Start: 0.7, End: 5.0}},
			total:      10.0,
			minSegment: 1.0,
			padding:    0.05,
			want:       []silence.Interval{{Start: 4.95, End: 10.0}},
		},
		{
			name:       "overlapping silences clamp end to start instead of going negative",
			silences:   []silence.Interval{{Start: 1.0, End: 3.0}, {Start: 2.5, End: 4.0}},
			total:      10.0,
			minSegment: 0.2,
			padding:    0.1,
			want:       []silence.Interval{{Start: 0.0, End: 1.1}, {Start: 3.9, End: 10.0}},
		},
		{
			name:       "no silences yields single full-length segment",
			silences:   nil,
			total:      7.5,
			minSegment: 0.2,
			padding:    0.1,
			want:       []silence.Interval{{Start: 0.0, End: 7.5}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := silence.BuildKeepList(tc.silences, tc.total, tc.minSegment, tc.padding)
			if !intervalsEqual(got, tc.want) {
				t.Fatalf("unexpected keep list:\n got %v\nwant %v", got, tc.want)
			}
		})
	}
}

func TestBuildKeepListOrderingAndMinimumDuration(t *testing.T) {
	cases := [][]silence.Interval{
		{{Start: 2.0, End: 3.0}},
		{{Start: 0.0, End: 0.5}, {Start: 1.0, End: 1.2}, {Start: 6.0, End: 8.0}},
		{{Start: 0.1, End: 0.2}, {Start: 0.3, End: 0.4}, {Start: 0.5, End: 0.6}, {Start: 9.0, End: 9.9}},
		{{Start: 5.0, End: 10.0}},
	}
	const (
		total      = 10.0
		minSegment = 0.2
		padding    = 0.1
	)

	for _, silences := range cases {
		keeps := silence.BuildKeepList(silences, total, minSegment, padding)
		for i, keep := range keeps {
			if keep.Duration() < minSegment-tolerance {
				t.Fatalf("segment %d shorter than minimum: %v", i, keep)
			}
			if keep.End > total+tolerance {
				t.Fatalf("segment %d extends past total duration: %v", i, keep)
			}
			if i == 0 {
				continue
			}
			if keeps[i-1].Start >= keep.Start {
				t.Fatalf("segments not strictly increasing by start: %v then %v", keeps[i-1], keep)
			}
		}
	}
}
