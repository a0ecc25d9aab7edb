package services_test

import (
	"context"
	"errors"
	"testing"

	"hushcut/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 1")
	err := services.Wrap(services.ErrMerge, "merging", "ffmpeg concat", "merge call failed", base)
	if !errors.Is(err, services.ErrMerge) {
		t.Fatalf("expected error to match ErrMerge, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to retain cause, got %v", err)
	}
	want := "merge failure: merging: ffmpeg concat: merge call failed: exit status 1"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrInternal) {
		t.Fatalf("expected nil marker to default to ErrInternal, got %v", err)
	}
	if err.Error() != "internal error: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestStageAndRunIDContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage on fresh context")
	}
	ctx = services.WithStage(ctx, "detecting_silence")
	ctx = services.WithRunID(ctx, "run-123")

	stage, ok := services.StageFromContext(ctx)
	if !ok || stage != "detecting_silence" {
		t.Fatalf("unexpected stage: %q ok=%v", stage, ok)
	}
	runID, ok := services.RunIDFromContext(ctx)
	if !ok || runID != "run-123" {
		t.Fatalf("unexpected run id: %q ok=%v", runID, ok)
	}
}

func TestWithStageIgnoresBlank(t *testing.T) {
	ctx := services.WithStage(context.Background(), "   ")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("blank stage should not be stored")
	}
}
