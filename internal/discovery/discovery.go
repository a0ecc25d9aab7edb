package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// recordingPattern matches the recorder's `YYYY-MM-DD HH-MM-SS` naming.
var recordingPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}-\d{2}-\d{2}\.(mkv|mp4)$`)

// Recording describes one discovered input fragment.
type Recording struct {
	Path string
	Size int64
}

// FindRecordings returns the timestamped recordings in dir, sorted so that
// lexical order gives chronological order. Paths are absolute.
func FindRecordings(dir string) ([]Recording, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read working directory: %w", err)
	}

	recordings := make([]Recording, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !recordingPattern.MatchString(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat recording %q: %w", entry.Name(), err)
		}
		absPath, err := filepath.Abs(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("resolve recording path: %w", err)
		}
		recordings = append(recordings, Recording{Path: absPath, Size: info.Size()})
	}

	sort.Slice(recordings, func(i, j int) bool {
		return filepath.Base(recordings[i].Path) < filepath.Base(recordings[j].Path)
	})
	return recordings, nil
}

// TotalSize sums the sizes of the given recordings in bytes.
func TotalSize(recordings []Recording) int64 {
	var total int64
	for _, recording := range recordings {
		total += recording.Size
	}
	return total
}
