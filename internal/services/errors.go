package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPrerequisite marks a missing external binary or critically low disk space.
	ErrPrerequisite = errors.New("prerequisite missing")
	// ErrNoInput marks a run with no matching recording files.
	ErrNoInput = errors.New("no input files")
	// ErrMerge marks a failed external concatenation call.
	ErrMerge = errors.New("merge failure")
	// ErrDetection marks a failed silence-detection invocation.
	ErrDetection = errors.New("silence detection failure")
	// ErrDuration marks a failed media duration query.
	ErrDuration = errors.New("duration unavailable")
	// ErrSegment marks a failed trim/re-encode call for one keep interval.
	ErrSegment = errors.New("segment failure")
	// ErrNothingToConcatenate marks an empty cut list or surviving-artifact list.
	ErrNothingToConcatenate = errors.New("nothing to concatenate")
	// ErrConfiguration marks invalid or inconsistent configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrInternal marks failures with no more specific classification.
	ErrInternal = errors.New("internal error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrInternal
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
