package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"hushcut/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		record := history.Record{
			RunID:           "run-" + string(rune('a'+i)),
			Status:          history.StatusCompleted,
			InputFiles:      2,
			OriginalSeconds: 600,
			FinalSeconds:    450,
			SilencesFound:   12,
			SegmentsKept:    13,
			StartedAt:       base.Add(time.Duration(i) * time.Hour),
			FinishedAt:      base.Add(time.Duration(i)*time.Hour + 5*time.Minute),
		}
		if err := store.Append(ctx, record); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	records, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].RunID != "run-c" || records[1].RunID != "run-b" {
		t.Fatalf("expected newest first, got %q then %q", records[0].RunID, records[1].RunID)
	}
	if !records[0].FinishedAt.Equal(base.Add(2*time.Hour + 5*time.Minute)) {
		t.Fatalf("timestamp did not round-trip: %v", records[0].FinishedAt)
	}
}

func TestFailedRunKeepsErrorSummary(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	record := history.Record{
		RunID:        "run-x",
		Status:       history.StatusFailed,
		ErrorSummary: "silence detection failed: exit status 1",
		StartedAt:    time.Now(),
		FinishedAt:   time.Now(),
	}
	if err := store.Append(ctx, record); err != nil {
		t.Fatalf("append: %v", err)
	}

	records, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Status != history.StatusFailed {
		t.Fatalf("unexpected status %q", records[0].Status)
	}
	if records[0].ErrorSummary != "silence detection failed: exit status 1" {
		t.Fatalf("unexpected error summary %q", records[0].ErrorSummary)
	}
}

func TestReductionPercent(t *testing.T) {
	cases := []struct {
		name     string
		record   history.Record
		expected float64
	}{
		{"quarter removed", history.Record{OriginalSeconds: 600, FinalSeconds: 450}, 25},
		{"nothing removed", history.Record{OriginalSeconds: 600, FinalSeconds: 600}, 0},
		{"zero original", history.Record{OriginalSeconds: 0, FinalSeconds: 0}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.record.ReductionPercent(); got != tc.expected {
				t.Fatalf("got %.2f want %.2f", got, tc.expected)
			}
		})
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := history.Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Append(context.Background(), history.Record{RunID: "run-1", Status: history.StatusCompleted}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	records, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 1 || records[0].RunID != "run-1" {
		t.Fatalf("expected persisted record, got %+v", records)
	}
	if errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatal("matching schema should not mismatch")
	}
}
