package ffmpeg

import (
	"fmt"
	"os"
	"strings"
)

// WriteConcatList writes a concat-demuxer list file naming the given paths
// in order. Single quotes inside paths are escaped per the demuxer's quoting
// rules.
func WriteConcatList(path string, files []string) error {
	var sb strings.Builder
	for _, file := range files {
		escaped := strings.ReplaceAll(file, `'`, `'\''`)
		fmt.Fprintf(&sb, "file '%s'\n", escaped)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}
