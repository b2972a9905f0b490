package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write writes data to dir/name. The destination file is only opened once
// data is fully available in memory, so a failure earlier in the pipeline
// (a bad QFS stream, a read error) never leaves a partial file on disk.
// An existing file is left untouched unless overwrite is set.
func Write(dir, name string, data []byte, overwrite bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(dir, name)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: already exists", path)
		}
	}

	return os.WriteFile(path, data, 0o644)
}
