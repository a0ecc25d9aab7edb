package config

import (
	"path/filepath"
	"strings"
)

// Normalize expands path fields, fills derived defaults, and trims string
// values. It runs before Validate on every load.
func (c *Config) Normalize() error {
	workDir, err := expandPath(defaultString(c.Paths.WorkDir, "."))
	if err != nil {
		return err
	}
	c.Paths.WorkDir = workDir

	logDir, err := expandPath(defaultString(c.Paths.LogDir, defaultLogDir))
	if err != nil {
		return err
	}
	c.Paths.LogDir = logDir

	c.Paths.OutputFile = defaultString(c.Paths.OutputFile, defaultOutputFile)
	c.Paths.MergedFile = defaultString(c.Paths.MergedFile, defaultMergedFile)

	c.Detection.TailSilence = strings.ToLower(defaultString(c.Detection.TailSilence, defaultTailSilence))

	c.Segments.VideoCodec = defaultString(c.Segments.VideoCodec, defaultVideoCodec)
	c.Segments.Preset = defaultString(c.Segments.Preset, defaultPreset)
	c.Segments.AudioCodec = defaultString(c.Segments.AudioCodec, defaultAudioCodec)
	c.Segments.AudioBitrate = defaultString(c.Segments.AudioBitrate, defaultAudioBitrate)

	c.Tools.FFmpeg = defaultString(c.Tools.FFmpeg, defaultFFmpegBinary)
	c.Tools.FFprobe = defaultString(c.Tools.FFprobe, defaultFFprobeBinary)

	if c.History.Enabled {
		historyPath := strings.TrimSpace(c.History.Path)
		if historyPath == "" {
			historyPath = filepath.Join(c.Paths.LogDir, "history.db")
		}
		expanded, err := expandPath(historyPath)
		if err != nil {
			return err
		}
		c.History.Path = expanded
	}

	c.Logging.Format = strings.ToLower(defaultString(c.Logging.Format, defaultLogFormat))
	c.Logging.Level = strings.ToLower(defaultString(c.Logging.Level, defaultLogLevel))

	return nil
}

func defaultString(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
