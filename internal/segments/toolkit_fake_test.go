package segments_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"
)

// fakeToolkit satisfies ffmpeg.Toolkit without invoking real binaries.
type fakeToolkit struct {
	mu            sync.Mutex
	trimOutputs   []string
	concatLists   []string
	reencodeLists []string
	failIndexes   map[int]bool
	concatErr     error
	reencodeErr   error
	trimDelay     time.Duration
	current       int
	maxConcurrent int
}

func (f *fakeToolkit) Merge(ctx context.Context, listFile, output string) error { return nil }

func (f *fakeToolkit) DetectSilence(ctx context.Context, input string, noiseDB, minSilence float64) (string, error) {
	return "", nil
}

func (f *fakeToolkit) Duration(ctx context.Context, path string) (float64, error) { return 0, nil }

func (f *fakeToolkit) TrimEncode(ctx context.Context, input string, start, duration float64, output string) error {
	f.mu.Lock()
	f.current++
	if f.current > f.maxConcurrent {
		f.maxConcurrent = f.current
	}
	f.mu.Unlock()

	if f.trimDelay > 0 {
		select {
		case <-time.After(f.trimDelay):
		case <-ctx.Done():
			f.finishTrim()
			return ctx.Err()
		}
	}

	var index int
	fmt.Sscanf(filepath.Base(output), "segment_%04d.mp4", &index)

	f.mu.Lock()
	f.trimOutputs = append(f.trimOutputs, output)
	fail := f.failIndexes[index]
	f.mu.Unlock()
	f.finishTrim()

	if fail {
		return errors.New("exit status 1")
	}
	return nil
}

func (f *fakeToolkit) finishTrim() {
	f.mu.Lock()
	f.current--
	f.mu.Unlock()
}

func (f *fakeToolkit) Concat(ctx context.Context, listFile, output string) error {
	f.mu.Lock()
	f.concatLists = append(f.concatLists, listFile)
	f.mu.Unlock()
	return f.concatErr
}

func (f *fakeToolkit) ConcatReencode(ctx context.Context, listFile, output string) error {
	f.mu.Lock()
	f.reencodeLists = append(f.reencodeLists, listFile)
	f.mu.Unlock()
	return f.reencodeErr
}
