package config

import "runtime"

const (
	defaultOutputFile     = "output_no_silence.mp4"
	defaultMergedFile     = "merged_input.mp4"
	defaultLogDir         = "~/.local/share/hushcut/logs"
	defaultNoiseDB        = -38.0
	defaultMinSilence     = 0.15
	defaultTailSilence    = "drop"
	defaultMinSegment     = 0.1
	defaultPadding        = 0.05
	defaultVideoCodec     = "libx264"
	defaultPreset         = "faster"
	defaultCRF            = 18
	defaultAudioCodec     = "aac"
	defaultAudioBitrate   = "192k"
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFprobeBinary  = "ffprobe"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultHistoryEnabled = true

	maxAutoWorkers = 8
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:    ".",
			OutputFile: defaultOutputFile,
			MergedFile: defaultMergedFile,
			LogDir:     defaultLogDir,
		},
		Detection: Detection{
			NoiseDB:     defaultNoiseDB,
			MinSilence:  defaultMinSilence,
			TailSilence: defaultTailSilence,
		},
		Segments: Segments{
			MinDuration:  defaultMinSegment,
			Padding:      defaultPadding,
			VideoCodec:   defaultVideoCodec,
			Preset:       defaultPreset,
			CRF:          defaultCRF,
			AudioCodec:   defaultAudioCodec,
			AudioBitrate: defaultAudioBitrate,
		},
		Concat: Concat{
			ReencodeFallback: true,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// WorkerCount resolves the configured segment concurrency. Zero selects
// min(available parallelism, 8).
func (c *Config) WorkerCount() int {
	if c.Segments.Workers > 0 {
		return c.Segments.Workers
	}
	workers := runtime.NumCPU()
	if workers > maxAutoWorkers {
		workers = maxAutoWorkers
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
