package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"hushcut/internal/config"
	"hushcut/internal/discovery"
	"hushcut/internal/history"
	"hushcut/internal/logging"
	"hushcut/internal/media/ffmpeg"
	"hushcut/internal/preflight"
	"hushcut/internal/segments"
	"hushcut/internal/services"
	"hushcut/internal/silence"
)

const lockFileName = ".hushcut.lock"

// Option configures a Runner.
type Option func(*Runner)

// WithToolkit replaces the default CLI toolkit.
func WithToolkit(toolkit ffmpeg.Toolkit) Option {
	return func(r *Runner) {
		if toolkit != nil {
			r.toolkit = toolkit
		}
	}
}

// WithHistory attaches a run-history store.
func WithHistory(store *history.Store) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// WithProgress registers a per-segment completion callback.
func WithProgress(progress func(index int, err error)) Option {
	return func(r *Runner) {
		r.progress = progress
	}
}

// WithDryRun computes the cut list and stops before any encoding.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

// WithKeepMerged preserves the merged intermediate file after the run.
func WithKeepMerged(keep bool) Option {
	return func(r *Runner) {
		r.keepMerged = keep
	}
}

// WithSkipPreflight bypasses environment checks.
func WithSkipPreflight(skip bool) Option {
	return func(r *Runner) {
		r.skipPreflight = skip
	}
}

// Runner drives one silence-removal run from discovery through cleanup.
type Runner struct {
	cfg           *config.Config
	logger        *slog.Logger
	toolkit       ffmpeg.Toolkit
	store         *history.Store
	progress      func(index int, err error)
	dryRun        bool
	keepMerged    bool
	skipPreflight bool
}

// NewRunner constructs a runner over cfg. Without WithToolkit the real
// ffmpeg/ffprobe binaries from the configuration are used.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	runner := &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "pipeline"),
		toolkit: ffmpeg.NewCLI(
			ffmpeg.WithFFmpeg(cfg.Tools.FFmpeg),
			ffmpeg.WithFFprobe(cfg.Tools.FFprobe),
			ffmpeg.WithTimeout(time.Duration(cfg.Tools.TimeoutSeconds)*time.Second),
			ffmpeg.WithEncodeSettings(ffmpeg.EncodeSettings{
				VideoCodec:   cfg.Segments.VideoCodec,
				Preset:       cfg.Segments.Preset,
				CRF:          cfg.Segments.CRF,
				AudioCodec:   cfg.Segments.AudioCodec,
				AudioBitrate: cfg.Segments.AudioBitrate,
			}),
		),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// Run executes the pipeline once and returns its summary. The returned
// stats are valid even when err is non-nil. All intermediates are removed
// before Run returns; the merged file survives only under WithKeepMerged.
func (r *Runner) Run(ctx context.Context) (*Stats, error) {
	started := time.Now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	stats := &Stats{RunID: runID, OutputPath: r.cfg.OutputPath(), DryRun: r.dryRun}
	err := r.execute(ctx, logger, stats)
	stats.Elapsed = time.Since(started)

	r.record(ctx, logger, stats, started, err)
	if err != nil {
		r.enter(ctx, logger, StateFailed)
		return stats, err
	}
	r.enter(ctx, logger, StateDone)
	return stats, nil
}

func (r *Runner) execute(ctx context.Context, logger *slog.Logger, stats *Stats) error {
	cfg := r.cfg
	if err := cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, string(StateCheckingPrereqs), "ensure directories", "", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.WorkDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrPrerequisite, string(StateCheckingPrereqs), "acquire lock", "", err)
	}
	if !locked {
		return services.Wrap(services.ErrPrerequisite, string(StateCheckingPrereqs), "acquire lock",
			"another run is active in this working directory", nil)
	}
	defer func() { _ = lock.Unlock() }()

	if !r.skipPreflight {
		ctx = r.enter(ctx, logger, StateCheckingPrereqs)
		if failure, found := preflight.FirstFailure(preflight.RunAll(cfg)); found {
			return services.Wrap(services.ErrPrerequisite, string(StateCheckingPrereqs), failure.Name, failure.Detail, nil)
		}
	}

	ctx = r.enter(ctx, logger, StateDiscoveringInputs)
	recordings, err := discovery.FindRecordings(cfg.Paths.WorkDir)
	if err != nil {
		return services.Wrap(services.ErrNoInput, string(StateDiscoveringInputs), "scan directory", "", err)
	}
	if len(recordings) == 0 {
		return services.Wrap(services.ErrNoInput, string(StateDiscoveringInputs), "",
			"no timestamped recordings in "+cfg.Paths.WorkDir, nil)
	}
	stats.InputFiles = len(recordings)
	logger.Info("recordings discovered",
		logging.Int("count", len(recordings)),
		logging.Int64("total_bytes", discovery.TotalSize(recordings)),
	)

	tempDir, err := os.MkdirTemp(cfg.Paths.WorkDir, "hushcut-")
	if err != nil {
		return services.Wrap(services.ErrInternal, string(StateDiscoveringInputs), "create temp dir", "", err)
	}
	defer func() {
		if removeErr := os.RemoveAll(tempDir); removeErr != nil {
			logger.Warn("temp dir cleanup failed", logging.Error(removeErr))
		}
	}()

	ctx = r.enter(ctx, logger, StateMerging)
	merged := cfg.MergedPath()
	inputs := make([]string, len(recordings))
	for i, recording := range recordings {
		inputs[i] = recording.Path
	}
	inputList := filepath.Join(tempDir, "inputs.txt")
	if err := ffmpeg.WriteConcatList(inputList, inputs); err != nil {
		return services.Wrap(services.ErrMerge, string(StateMerging), "write list", "", err)
	}
	if err := r.toolkit.Merge(ctx, inputList, merged); err != nil {
		return services.Wrap(services.ErrMerge, string(StateMerging), "concat copy", "", err)
	}
	if !r.keepMerged {
		defer func() { _ = os.Remove(merged) }()
	}

	ctx = r.enter(ctx, logger, StateDetectingSilence)
	total, err := r.toolkit.Duration(ctx, merged)
	if err != nil {
		return services.Wrap(services.ErrDuration, string(StateDetectingSilence), "probe duration", "", err)
	}
	stats.OriginalSeconds = total

	diagnostics, err := r.toolkit.DetectSilence(ctx, merged, cfg.Detection.NoiseDB, cfg.Detection.MinSilence)
	if err != nil {
		return services.Wrap(services.ErrDetection, string(StateDetectingSilence), "silencedetect", "", err)
	}
	tail, err := silence.ParseTailPolicy(cfg.Detection.TailSilence)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, string(StateDetectingSilence), "tail policy", "", err)
	}
	silences, err := silence.ParseDetectorOutput(diagnostics, total, tail)
	if err != nil {
		return services.Wrap(services.ErrDetection, string(StateDetectingSilence), "parse markers", "", err)
	}
	stats.SilencesFound = len(silences)
	if len(silences) == 0 {
		stats.NothingToCut = true
		stats.FinalSeconds = total
		logger.Info("no silence found; nothing to cut",
			logging.Float64("duration_seconds", total),
			logging.String(logging.FieldEventType, "nothing_to_cut"),
		)
		return nil
	}

	ctx = r.enter(ctx, logger, StateBuildingCutList)
	keeps := silence.BuildKeepList(silences, total, cfg.Segments.MinDuration, cfg.Segments.Padding)
	if len(keeps) == 0 {
		return services.Wrap(services.ErrNothingToConcatenate, string(StateBuildingCutList), "",
			"cut list left no intervals to keep", nil)
	}
	stats.KeepIntervals = keeps
	logger.Info("cut list built",
		logging.Int("silences", len(silences)),
		logging.Int("keep_intervals", len(keeps)),
	)

	if r.dryRun {
		stats.FinalSeconds = sumDurations(keeps)
		return nil
	}

	ctx = r.enter(ctx, logger, StateExecutingSegments)
	executor := segments.NewExecutor(r.toolkit, logger,
		segments.WithWorkers(cfg.WorkerCount()),
		segments.WithFailFast(cfg.Segments.FailFast),
		segments.WithProgress(r.progress),
	)
	artifacts, failures, err := executor.Run(ctx, merged, keeps, tempDir)
	if err != nil {
		return err
	}
	stats.SegmentsKept = len(artifacts)
	stats.SegmentsFailed = len(failures)

	ctx = r.enter(ctx, logger, StateConcatenating)
	listPath := filepath.Join(tempDir, "concat_list.txt")
	if err := segments.Assemble(ctx, r.toolkit, logger, artifacts, listPath, cfg.OutputPath(), cfg.Concat.ReencodeFallback); err != nil {
		return err
	}

	ctx = r.enter(ctx, logger, StateReportingStats)
	final, err := r.toolkit.Duration(ctx, cfg.OutputPath())
	if err != nil {
		logger.Warn("could not probe output duration; estimating from cut list", logging.Error(err))
		final = survivingDuration(keeps, artifacts)
	}
	stats.FinalSeconds = final
	logger.Info("run complete",
		logging.Float64("original_seconds", stats.OriginalSeconds),
		logging.Float64("final_seconds", stats.FinalSeconds),
		logging.Float64("reduction_percent", stats.ReductionPercent()),
		logging.Int("segments_kept", stats.SegmentsKept),
		logging.Int("segments_failed", stats.SegmentsFailed),
		logging.String(logging.FieldEventType, "run_complete"),
	)
	return nil
}

func (r *Runner) enter(ctx context.Context, logger *slog.Logger, state State) context.Context {
	logger.Info("entering stage",
		logging.String(logging.FieldStage, state.String()),
		logging.String(logging.FieldEventType, "stage_transition"),
	)
	return services.WithStage(ctx, state.String())
}

func (r *Runner) record(ctx context.Context, logger *slog.Logger, stats *Stats, started time.Time, runErr error) {
	if r.store == nil || !r.cfg.History.Enabled || stats.DryRun {
		return
	}
	record := history.Record{
		RunID:           stats.RunID,
		Status:          history.StatusCompleted,
		InputFiles:      stats.InputFiles,
		OriginalSeconds: stats.OriginalSeconds,
		FinalSeconds:    stats.FinalSeconds,
		SilencesFound:   stats.SilencesFound,
		SegmentsKept:    stats.SegmentsKept,
		SegmentsFailed:  stats.SegmentsFailed,
		StartedAt:       started,
		FinishedAt:      time.Now(),
	}
	if runErr != nil {
		record.Status = history.StatusFailed
		record.ErrorSummary = runErr.Error()
	}
	if err := r.store.Append(context.WithoutCancel(ctx), record); err != nil {
		logger.Warn("history append failed", logging.Error(err))
	}
}

func sumDurations(intervals []silence.Interval) float64 {
	var sum float64
	for _, interval := range intervals {
		sum += interval.Duration()
	}
	return sum
}

// survivingDuration sums the keep intervals that produced an artifact.
func survivingDuration(keeps []silence.Interval, artifacts []segments.Artifact) float64 {
	var sum float64
	for _, artifact := range artifacts {
		if artifact.Index >= 0 && artifact.Index < len(keeps) {
			sum += keeps[artifact.Index].Duration()
		}
	}
	return sum
}
