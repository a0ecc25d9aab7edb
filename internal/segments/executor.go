package segments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"hushcut/internal/logging"
	"hushcut/internal/media/ffmpeg"
	"hushcut/internal/services"
	"hushcut/internal/silence"
)

// Artifact is one produced segment file. Index ties it back to its keep
// interval and fixes reconstruction order.
type Artifact struct {
	Index int
	Path  string
}

// Failure records a failed trim/re-encode for one keep interval.
type Failure struct {
	Index int
	Err   error
}

// Option configures the executor.
type Option func(*Executor)

// WithWorkers sets the bounded pool size.
func WithWorkers(workers int) Option {
	return func(e *Executor) {
		if workers > 0 {
			e.workers = workers
		}
	}
}

// WithFailFast aborts all in-flight work on the first segment failure.
func WithFailFast(failFast bool) Option {
	return func(e *Executor) {
		e.failFast = failFast
	}
}

// WithProgress registers a callback invoked once per completed unit of
// work, successful or not.
func WithProgress(progress func(index int, err error)) Option {
	return func(e *Executor) {
		e.progress = progress
	}
}

// Executor runs trim/re-encode operations for keep intervals.
type Executor struct {
	toolkit  ffmpeg.Toolkit
	logger   *slog.Logger
	workers  int
	failFast bool
	progress func(index int, err error)
}

// NewExecutor constructs an executor over the given toolkit.
func NewExecutor(toolkit ffmpeg.Toolkit, logger *slog.Logger, opts ...Option) *Executor {
	executor := &Executor{
		toolkit: toolkit,
		logger:  logging.NewComponentLogger(logger, "segments"),
		workers: 1,
	}
	for _, opt := range opts {
		opt(executor)
	}
	return executor
}

// Run re-encodes every keep interval of input into dir and waits for all
// units to finish. Artifacts come back ordered by index with failed units
// missing; failures are reported alongside. The returned error is non-nil
// only when the run as a whole must stop: context cancellation, or the
// first segment failure under fail-fast.
func (e *Executor) Run(ctx context.Context, input string, keeps []silence.Interval, dir string) ([]Artifact, []Failure, error) {
	if len(keeps) == 0 {
		return nil, nil, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	paths := make([]string, len(keeps))
	errs := make([]error, len(keeps))
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup

	for i, keep := range keeps {
		wg.Add(1)
		go func(index int, keep silence.Interval) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-runCtx.Done():
				errs[index] = runCtx.Err()
				return
			}
			if runCtx.Err() != nil {
				errs[index] = runCtx.Err()
				return
			}

			output := filepath.Join(dir, fmt.Sprintf("segment_%04d.mp4", index))
			err := e.toolkit.TrimEncode(runCtx, input, keep.Start, keep.Duration(), output)
			if err != nil {
				errs[index] = services.Wrap(services.ErrSegment, "executing_segments",
					fmt.Sprintf("segment %d", index), keep.String(), err)
				if e.failFast {
					cancel()
				}
			} else {
				paths[index] = output
			}
			if e.progress != nil {
				e.progress(index, err)
			}
		}(i, keep)
	}
	wg.Wait()

	artifacts := make([]Artifact, 0, len(keeps))
	failures := make([]Failure, 0)
	for i := range keeps {
		switch {
		case errs[i] != nil:
			failures = append(failures, Failure{Index: i, Err: errs[i]})
		case paths[i] != "":
			artifacts = append(artifacts, Artifact{Index: i, Path: paths[i]})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, failures, err
	}
	if e.failFast && len(failures) > 0 {
		return nil, failures, firstSegmentError(failures)
	}

	for _, failure := range failures {
		e.logger.Warn("segment failed; output will omit this interval",
			logging.Int("segment_index", failure.Index),
			logging.Error(failure.Err),
			logging.String(logging.FieldEventType, "segment_failure"),
		)
	}
	return artifacts, failures, nil
}

func firstSegmentError(failures []Failure) error {
	for _, failure := range failures {
		if !isCancellation(failure.Err) {
			return failure.Err
		}
	}
	return failures[0].Err
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
