package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/finance-assistant/backend/internal/application/adapter"
)

// fileArtifactStore implements the adapter.ArtifactStore interface on a
// single file path.
type fileArtifactStore struct {
	path string
}

// NewFileArtifactStore creates a file-backed artifact store.
func NewFileArtifactStore(path string) adapter.ArtifactStore {
	return &fileArtifactStore{
		path: path,
	}
}

// Save writes the artifact to a temporary file and renames it into place,
// so readers never observe a partially written artifact.
func (s *fileArtifactStore) Save(blob []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary artifact file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close artifact file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace artifact: %w", err)
	}
	return nil
}

// Load returns the stored artifact, or (nil, nil) when none exists yet.
func (s *fileArtifactStore) Load() ([]byte, error) {
	blob, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return blob, nil
}
