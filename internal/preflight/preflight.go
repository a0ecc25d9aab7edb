package preflight

import (
	"hushcut/internal/config"
)

// RunAll executes all preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := CheckBinaries([]Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Tools.FFmpeg,
			Description: "Required for merging, silence detection, and re-encoding",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Tools.FFprobe,
			Description: "Required for duration queries",
		},
	})

	results = append(results, CheckDirectoryAccess("Working directory", cfg.Paths.WorkDir))
	results = append(results, CheckDiskSpace("Disk space", cfg.Paths.WorkDir))
	return results
}

// FirstFailure returns the first non-optional failed check, if any.
func FirstFailure(results []Result) (Result, bool) {
	for _, result := range results {
		if !result.Passed && !result.Optional {
			return result, true
		}
	}
	return Result{}, false
}
