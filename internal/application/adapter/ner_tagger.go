// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// NERTagger tags named-entity spans (dates, times) inside free text. The
// extraction pipeline treats the tagger as optional: an unavailable or
// failing tagger degrades to an empty result, never to a pipeline failure.
type NERTagger interface {
	// Tag returns the tagged spans of the message in source order.
	Tag(ctx context.Context, message string) ([]entity.ExtractedEntity, error)

	// IsAvailable checks if the tagger is configured and usable.
	IsAvailable() bool
}
