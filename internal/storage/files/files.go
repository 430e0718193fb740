package files

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store writes rendered artifact bytes under a base directory. Artifact
// paths are the externally served /visualizations/... locations; the store
// roots them on local disk.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Save(path string, data []byte) error {
	const op = "storage.files.Save"

	full := filepath.Join(s.baseDir, filepath.FromSlash(path))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
