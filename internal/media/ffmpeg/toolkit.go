package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"hushcut/internal/media/ffprobe"
)

var commandContext = exec.CommandContext

// Toolkit is the external media toolkit surface the pipeline depends on.
type Toolkit interface {
	// Merge joins the containers listed in listFile into output via stream copy.
	Merge(ctx context.Context, listFile, output string) error
	// DetectSilence runs the silence analysis pass and returns the raw
	// diagnostic text containing silence_start/silence_end markers.
	DetectSilence(ctx context.Context, input string, noiseDB, minSilence float64) (string, error)
	// Duration queries the container duration in seconds.
	Duration(ctx context.Context, path string) (float64, error)
	// TrimEncode extracts [start, start+duration) of input into output,
	// re-encoding with the configured settings.
	TrimEncode(ctx context.Context, input string, start, duration float64, output string) error
	// Concat joins the artifacts listed in listFile into output via stream copy.
	Concat(ctx context.Context, listFile, output string) error
	// ConcatReencode joins the artifacts listed in listFile into output,
	// re-encoding instead of copying streams.
	ConcatReencode(ctx context.Context, listFile, output string) error
}

// EncodeSettings carries the re-encode parameters for segment extraction.
type EncodeSettings struct {
	VideoCodec   string
	Preset       string
	CRF          int
	AudioCodec   string
	AudioBitrate string
}

// Option configures the CLI toolkit.
type Option func(*CLI)

// WithFFmpeg overrides the ffmpeg binary name.
func WithFFmpeg(binary string) Option {
	return func(c *CLI) {
		if strings.TrimSpace(binary) != "" {
			c.ffmpeg = binary
		}
	}
}

// WithFFprobe overrides the ffprobe binary name.
func WithFFprobe(binary string) Option {
	return func(c *CLI) {
		if strings.TrimSpace(binary) != "" {
			c.ffprobe = binary
		}
	}
}

// WithEncodeSettings overrides the segment re-encode parameters.
func WithEncodeSettings(settings EncodeSettings) Option {
	return func(c *CLI) {
		c.encode = settings
	}
}

// WithTimeout bounds every external invocation; zero disables the limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *CLI) {
		c.timeout = timeout
	}
}

// CLI invokes the ffmpeg and ffprobe binaries.
type CLI struct {
	ffmpeg  string
	ffprobe string
	encode  EncodeSettings
	timeout time.Duration
}

// NewCLI constructs a toolkit using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		ffmpeg:  "ffmpeg",
		ffprobe: "ffprobe",
		encode: EncodeSettings{
			VideoCodec:   "libx264",
			Preset:       "faster",
			CRF:          18,
			AudioCodec:   "aac",
			AudioBitrate: "192k",
		},
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

func (c *CLI) Merge(ctx context.Context, listFile, output string) error {
	if listFile == "" || output == "" {
		return errors.New("merge: list file and output required")
	}
	_, err := c.run(ctx, "concat copy", "-hide_banner", "-loglevel", "error", "-f", "concat", "-safe", "0", "-i", listFile, "-c", "copy", "-y", output)
	return err
}

func (c *CLI) DetectSilence(ctx context.Context, input string, noiseDB, minSilence float64) (string, error) {
	if input == "" {
		return "", errors.New("detect silence: input required")
	}
	filter := fmt.Sprintf("silencedetect=noise=%sdB:d=%s", formatSeconds(noiseDB), formatSeconds(minSilence))
	return c.run(ctx, "silencedetect", "-hide_banner", "-i", input, "-af", filter, "-vn", "-f", "null", "-")
}

func (c *CLI) Duration(ctx context.Context, path string) (float64, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	result, err := ffprobe.Inspect(ctx, c.ffprobe, path)
	if err != nil {
		return 0, err
	}
	return result.DurationSeconds()
}

func (c *CLI) TrimEncode(ctx context.Context, input string, start, duration float64, output string) error {
	if input == "" || output == "" {
		return errors.New("trim encode: input and output required")
	}
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-ss", formatSeconds(start),
		"-i", input,
		"-t", formatSeconds(duration),
		"-c:v", c.encode.VideoCodec,
		"-preset", c.encode.Preset,
		"-crf", strconv.Itoa(c.encode.CRF),
		"-c:a", c.encode.AudioCodec,
		"-b:a", c.encode.AudioBitrate,
		"-avoid_negative_ts", "1",
		"-y", output,
	}
	_, err := c.run(ctx, "trim encode", args...)
	return err
}

func (c *CLI) Concat(ctx context.Context, listFile, output string) error {
	return c.Merge(ctx, listFile, output)
}

func (c *CLI) ConcatReencode(ctx context.Context, listFile, output string) error {
	if listFile == "" || output == "" {
		return errors.New("concat: list file and output required")
	}
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "concat", "-safe", "0",
		"-i", listFile,
		"-c:v", c.encode.VideoCodec,
		"-preset", c.encode.Preset,
		"-crf", strconv.Itoa(c.encode.CRF),
		"-c:a", c.encode.AudioCodec,
		"-b:a", c.encode.AudioBitrate,
		"-y", output,
	}
	_, err := c.run(ctx, "concat reencode", args...)
	return err
}

// run executes ffmpeg with the given arguments and returns the combined
// output. ffmpeg writes diagnostics to stderr, so the combined stream is
// what silence detection parses.
func (c *CLI) run(ctx context.Context, operation string, args ...string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	cmd := commandContext(ctx, c.ffmpeg, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%s %s: %w: %s", c.ffmpeg, operation, err, lastLines(string(output), 3))
	}
	return string(output), nil
}

func lastLines(text string, n int) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}

// formatSeconds renders a float without exponent notation or trailing zeros.
func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

var _ Toolkit = (*CLI)(nil)
