package ffprobe

import (
	"encoding/json"
	"testing"
)

const sampleInspection = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "duration": "10.005"}
  ],
  "format": {
    "filename": "merged_input.mp4",
    "nb_streams": 2,
    "duration": "10.005333",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2"
  }
}`

func TestResultDurationSeconds(t *testing.T) {
	var result Result
	if err := json.Unmarshal([]byte(sampleInspection), &result); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	duration, err := result.DurationSeconds()
	if err != nil {
		t.Fatalf("DurationSeconds returned error: %v", err)
	}
	if duration != 10.005333 {
		t.Fatalf("unexpected duration: %g", duration)
	}
	if result.AudioStreamCount() != 1 {
		t.Fatalf("unexpected audio stream count: %d", result.AudioStreamCount())
	}
}

func TestResultDurationSecondsErrors(t *testing.T) {
	cases := []struct {
		name     string
		duration string
	}{
		{"missing", ""},
		{"garbage", "N/A"},
		{"zero", "0"},
		{"negative", "-3.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Result{Format: Format{Duration: tc.duration}}
			if _, err := result.DurationSeconds(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
