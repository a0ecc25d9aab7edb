package segments

import (
	"context"
	"log/slog"
	"sort"

	"hushcut/internal/logging"
	"hushcut/internal/media/ffmpeg"
	"hushcut/internal/services"
)

// Assemble joins the artifacts into a single output file. The fast path
// stream-copies through the concat demuxer; when that fails and fallback is
// enabled, a re-encoding concatenation runs instead. Artifacts are ordered
// by their explicit index before the list file is written.
func Assemble(ctx context.Context, toolkit ffmpeg.Toolkit, logger *slog.Logger, artifacts []Artifact, listPath, output string, reencodeFallback bool) error {
	if len(artifacts) == 0 {
		return services.Wrap(services.ErrNothingToConcatenate, "concatenating", "", "no surviving artifacts to join", nil)
	}
	logger = logging.NewComponentLogger(logger, "segments")

	ordered := make([]Artifact, len(artifacts))
	copy(ordered, artifacts)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	paths := make([]string, len(ordered))
	for i, artifact := range ordered {
		paths[i] = artifact.Path
	}
	if err := ffmpeg.WriteConcatList(listPath, paths); err != nil {
		return services.Wrap(services.ErrMerge, "concatenating", "write list", "", err)
	}

	err := toolkit.Concat(ctx, listPath, output)
	if err == nil {
		return nil
	}
	if !reencodeFallback {
		return services.Wrap(services.ErrMerge, "concatenating", "stream copy", "concatenation failed", err)
	}

	logger.Warn("stream-copy concatenation failed; retrying with re-encode",
		logging.Error(err),
		logging.String(logging.FieldEventType, "concat_fallback"),
	)
	if err := toolkit.ConcatReencode(ctx, listPath, output); err != nil {
		return services.Wrap(services.ErrMerge, "concatenating", "re-encode", "concatenation failed", err)
	}
	return nil
}
