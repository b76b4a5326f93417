package emit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// WriteAtomic writes content to path by creating a temp file in the
// same directory and renaming it into place, matching spec.md §5's
// resource discipline: the temp file is always either promoted or
// discarded, and the target is never partially written.
//
// When cmpOut is true and the existing file's content already equals
// content byte-for-byte, the temp file is discarded and the target is
// left untouched - spec.md §8's idempotence property ("with --cmp-out,
// the second run does not touch the file").
func WriteAtomic(path string, content []byte, cmpOut bool) error {
	if path == "" {
		_, err := os.Stdout.Write(content)
		return err
	}
	if cmpOut {
		if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
			return nil
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".nlgen-*")
	if err != nil {
		return fmt.Errorf("emit: creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("emit: writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("emit: closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("emit: renaming %s to %s: %w", tmpPath, path, err)
	}
	return nil
}
