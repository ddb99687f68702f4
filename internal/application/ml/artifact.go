package ml

import (
	"encoding/json"
	"fmt"

	"github.com/finance-assistant/backend/internal/domain/entity"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
)

// ArtifactSchemaVersion is the current serialization format version. Loading
// an artifact with any other version is treated as incompatible and triggers
// a retrain instead of a startup failure.
const ArtifactSchemaVersion = 1

// artifact is the persisted form of a trained model: vectorizer state,
// ensemble parameters and the class index, all under one schema version.
type artifact struct {
	SchemaVersion int              `json:"schema_version"`
	Classes       []string         `json:"classes"`
	Vectorizer    *tfidfVectorizer `json:"vectorizer"`
	Forest        *forest          `json:"forest"`
}

// model is the in-memory runtime of a trained artifact. It is immutable
// after construction and shared read-only across concurrent predictions.
type model struct {
	vectorizer *tfidfVectorizer
	forest     *forest
	classes    []entity.TransactionCategory
}

// encodeModel serializes a trained model into a versioned artifact blob.
func encodeModel(m *model) ([]byte, error) {
	classes := make([]string, len(m.classes))
	for i, c := range m.classes {
		classes[i] = string(c)
	}

	blob, err := json.Marshal(artifact{
		SchemaVersion: ArtifactSchemaVersion,
		Classes:       classes,
		Vectorizer:    m.vectorizer,
		Forest:        m.forest,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode model artifact: %w", err)
	}
	return blob, nil
}

// decodeModel deserializes an artifact blob, rejecting corrupt blobs and
// unsupported schema versions.
func decodeModel(blob []byte) (*model, error) {
	var a artifact
	if err := json.Unmarshal(blob, &a); err != nil {
		return nil, domainerror.NewCategorizationError(
			domainerror.ErrCodeIncompatibleArtifact,
			"model artifact is corrupt",
			domainerror.ErrIncompatibleArtifact,
		)
	}

	if a.SchemaVersion != ArtifactSchemaVersion {
		return nil, domainerror.NewCategorizationError(
			domainerror.ErrCodeIncompatibleArtifact,
			fmt.Sprintf("unsupported artifact schema version %d", a.SchemaVersion),
			domainerror.ErrIncompatibleArtifact,
		)
	}

	if a.Vectorizer == nil || a.Forest == nil || len(a.Classes) == 0 {
		return nil, domainerror.NewCategorizationError(
			domainerror.ErrCodeIncompatibleArtifact,
			"model artifact is missing required sections",
			domainerror.ErrIncompatibleArtifact,
		)
	}

	a.Vectorizer.buildIndex()

	classes := make([]entity.TransactionCategory, len(a.Classes))
	for i, c := range a.Classes {
		classes[i] = entity.TransactionCategory(c)
	}

	return &model{
		vectorizer: a.Vectorizer,
		forest:     a.Forest,
		classes:    classes,
	}, nil
}
