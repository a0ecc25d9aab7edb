package segments_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hushcut/internal/logging"
	"hushcut/internal/segments"
	"hushcut/internal/services"
)

func TestAssembleRequiresArtifacts(t *testing.T) {
	err := segments.Assemble(context.Background(), &fakeToolkit{}, logging.NewNop(), nil, "list.txt", "out.mp4", false)
	if !errors.Is(err, services.ErrNothingToConcatenate) {
		t.Fatalf("expected nothing-to-concatenate error, got %v", err)
	}
}

func TestAssembleOrdersListByIndex(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "concat.txt")
	fake := &fakeToolkit{}

	artifacts := []segments.Artifact{
		{Index: 2, Path: "/tmp/work/segment_0002.mp4"},
		{Index: 0, Path: "/tmp/work/segment_0000.mp4"},
		{Index: 1, Path: "/tmp/work/segment_0001.mp4"},
	}
	if err := segments.Assemble(context.Background(), fake, logging.NewNop(), artifacts, listPath, "out.mp4", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.concatLists) != 1 || fake.concatLists[0] != listPath {
		t.Fatalf("concat not invoked with list file: %v", fake.concatLists)
	}

	data, err := os.ReadFile(listPath)
	if err != nil {
		t.Fatalf("read list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{
		"file '/tmp/work/segment_0000.mp4'",
		"file '/tmp/work/segment_0001.mp4'",
		"file '/tmp/work/segment_0002.mp4'",
	}
	if len(lines) != len(want) {
		t.Fatalf("unexpected list contents: %q", lines)
	}
	for i, line := range lines {
		if line != want[i] {
			t.Fatalf("line %d: got %q want %q", i, line, want[i])
		}
	}
}

func TestAssembleFallsBackToReencode(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeToolkit{concatErr: errors.New("codec mismatch")}

	artifacts := []segments.Artifact{{Index: 0, Path: filepath.Join(dir, "segment_0000.mp4")}}
	err := segments.Assemble(context.Background(), fake, logging.NewNop(), artifacts, filepath.Join(dir, "concat.txt"), "out.mp4", true)
	if err != nil {
		t.Fatalf("fallback should succeed, got %v", err)
	}
	if len(fake.reencodeLists) != 1 {
		t.Fatalf("expected one re-encode invocation, got %d", len(fake.reencodeLists))
	}
}

func TestAssembleWithoutFallbackPropagates(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeToolkit{concatErr: errors.New("codec mismatch")}

	artifacts := []segments.Artifact{{Index: 0, Path: filepath.Join(dir, "segment_0000.mp4")}}
	err := segments.Assemble(context.Background(), fake, logging.NewNop(), artifacts, filepath.Join(dir, "concat.txt"), "out.mp4", false)
	if !errors.Is(err, services.ErrMerge) {
		t.Fatalf("expected merge error, got %v", err)
	}
	if len(fake.reencodeLists) != 0 {
		t.Fatal("fallback must not run when disabled")
	}
}

func TestAssembleFallbackFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeToolkit{
		concatErr:   errors.New("codec mismatch"),
		reencodeErr: errors.New("encoder exploded"),
	}

	artifacts := []segments.Artifact{{Index: 0, Path: filepath.Join(dir, "segment_0000.mp4")}}
	err := segments.Assemble(context.Background(), fake, logging.NewNop(), artifacts, filepath.Join(dir, "concat.txt"), "out.mp4", true)
	if !errors.Is(err, services.ErrMerge) {
		t.Fatalf("expected merge error, got %v", err)
	}
}
