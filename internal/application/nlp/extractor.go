package nlp

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// amountPattern matches monetary amounts: an optional currency marker, digits
// with optional thousands separators, and an optional two-digit fraction.
var amountPattern = regexp.MustCompile(`\$?(\d+(?:,\d{3})*(?:\.\d{2})?)`)

// categoryVocabulary is the fixed list of financial category keywords
// recognized in chat messages. Order is significant: matches are returned in
// vocabulary order.
var categoryVocabulary = []string{
	"food", "dining", "restaurant", "grocery", "shopping", "gas", "transportation",
	"entertainment", "bills", "utilities", "healthcare", "insurance", "rent",
	"mortgage", "salary", "income", "investment", "savings",
}

// EntityExtractor pulls monetary amounts, date/time mentions and category
// keywords out of raw chat text. Amount and category extraction are pure;
// date extraction delegates to an optional NER tagger and degrades to an
// empty result when the tagger is missing or fails.
type EntityExtractor struct {
	tagger adapter.NERTagger
}

// NewEntityExtractor creates an entity extractor. The tagger may be nil.
func NewEntityExtractor(tagger adapter.NERTagger) *EntityExtractor {
	return &EntityExtractor{tagger: tagger}
}

// Extract returns the structured entities found in the message. It never
// fails: absent features yield empty slices.
func (e *EntityExtractor) Extract(ctx context.Context, message string) entity.StructuredEntities {
	return entity.StructuredEntities{
		Amounts:    e.extractAmounts(message),
		Dates:      e.extractDates(ctx, message),
		Categories: e.extractCategories(message),
	}
}

// Tag runs the generic NER tagger over the message, returning the tagged
// spans in source order. A missing or failing tagger yields no spans.
func (e *EntityExtractor) Tag(ctx context.Context, message string) []entity.ExtractedEntity {
	if e.tagger == nil || !e.tagger.IsAvailable() {
		return nil
	}

	spans, err := e.tagger.Tag(ctx, message)
	if err != nil {
		slog.Debug("NER tagger failed, continuing without tagged entities", "error", err)
		return nil
	}

	return spans
}

// extractAmounts parses every monetary amount in the message, with thousands
// separators stripped.
func (e *EntityExtractor) extractAmounts(message string) []decimal.Decimal {
	matches := amountPattern.FindAllStringSubmatch(message, -1)
	if len(matches) == 0 {
		return nil
	}

	amounts := make([]decimal.Decimal, 0, len(matches))
	for _, match := range matches {
		raw := strings.ReplaceAll(match[1], ",", "")
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		amounts = append(amounts, amount)
	}

	return amounts
}

// extractDates collects DATE and TIME spans from the NER tagger.
func (e *EntityExtractor) extractDates(ctx context.Context, message string) []string {
	var dates []string
	for _, span := range e.Tag(ctx, message) {
		if span.Label == entity.EntityLabelDate || span.Label == entity.EntityLabelTime {
			dates = append(dates, span.Text)
		}
	}
	return dates
}

// extractCategories matches the message against the category vocabulary,
// case-insensitively, returning matches in vocabulary order.
func (e *EntityExtractor) extractCategories(message string) []string {
	lower := strings.ToLower(message)

	var found []string
	for _, keyword := range categoryVocabulary {
		if strings.Contains(lower, keyword) {
			found = append(found, keyword)
		}
	}

	return found
}
