package silence_test

import (
	"strings"
	"testing"

	"hushcut/internal/silence"
)

const detectorDiagnostics = `Input #0, matroska,webm, from 'merged_input.mp4':
  Duration: 00:00:10.00, start: 0.000000, bitrate: 2953 kb/s
[silencedetect @ 0x55d1c0] silence_start: 2.00438
[silencedetect @ 0x55d1c0] silence_end: 3.10771 | silence_duration: 1.10333
[silencedetect @ 0x55d1c0] silence_start: 6.5
[silencedetect @ 0x55d1c0] silence_end: 7.25 | silence_duration: 0.75
size=N/A time=00:00:10.00 bitrate=N/A speed= 312x
`

func TestParseDetectorOutputPairsMarkers(t *testing.T) {
	intervals, err := silence.ParseDetectorOutput(detectorDiagnostics, 10.0, silence.TailDrop)
	if err != nil {
		t.Fatalf("ParseDetectorOutput returned error: %v", err)
	}
	want := []silence.Interval{{Start: 2.00438, End: 3.10771}, {Start: 6.5, End: 7.25}}
	if !intervalsEqual(intervals, want) {
		t.Fatalf("unexpected intervals:\n got %v\nwant %v", intervals, want)
	}
}

func TestParseDetectorOutputEmptyStream(t *testing.T) {
	intervals, err := silence.ParseDetectorOutput("frame=100 fps=25\n", 4.0, silence.TailDrop)
	if err != nil {
		t.Fatalf("ParseDetectorOutput returned error: %v", err)
	}
	if len(intervals) != 0 {
		t.Fatalf("expected no intervals, got %v", intervals)
	}
}

func TestParseDetectorOutputTrailingStart(t *testing.T) {
	diagnostics := detectorDiagnostics + "[silencedetect @ 0x55d1c0] silence_start: 9.5\n"

	t.Run("drop discards the unmatched start", func(t *testing.T) {
		intervals, err := silence.ParseDetectorOutput(diagnostics, 10.0, silence.TailDrop)
		if err != nil {
			t.Fatalf("ParseDetectorOutput returned error: %v", err)
		}
		if len(intervals) != 2 {
			t.Fatalf("expected 2 intervals after drop, got %v", intervals)
		}
	})

	t.Run("extend synthesizes end at total duration", func(t *testing.T) {
		intervals, err := silence.ParseDetectorOutput(diagnostics, 10.0, silence.TailExtend)
		if err != nil {
			t.Fatalf("ParseDetectorOutput returned error: %v", err)
		}
		if len(intervals) != 3 {
			t.Fatalf("expected 3 intervals after extend, got %v", intervals)
		}
		last := intervals[len(intervals)-1]
		if last.Start != 9.5 || last.End != 10.0 {
			t.Fatalf("unexpected synthesized interval: %v", last)
		}
	})
}

func TestParseDetectorOutputMismatchBeyondTail(t *testing.T) {
	diagnostics := strings.Repeat("silence_start: 1.0\n", 3) + "silence_end: 2.0\n"
	if _, err := silence.ParseDetectorOutput(diagnostics, 10.0, silence.TailDrop); err == nil {
		t.Fatal("expected error for start/end count mismatch")
	}
}

func TestParseTailPolicy(t *testing.T) {
	cases := []struct {
		value   string
		want    silence.TailPolicy
		wantErr bool
	}{
		{value: "", want: silence.TailDrop},
		{value: "drop", want: silence.TailDrop},
		{value: " Extend ", want: silence.TailExtend},
		{value: "guess", wantErr: true},
	}
	for _, tc := range cases {
		got, err := silence.ParseTailPolicy(tc.value)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.value)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseTailPolicy(%q) returned error: %v", tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("ParseTailPolicy(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
