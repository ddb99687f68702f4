package adapter

// ArtifactStore persists the trained categorizer artifact as an opaque blob.
type ArtifactStore interface {
	// Save atomically replaces the stored artifact.
	Save(blob []byte) error

	// Load returns the stored artifact, or (nil, nil) when none exists.
	Load() ([]byte, error)
}
