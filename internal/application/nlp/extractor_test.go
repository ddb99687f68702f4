package nlp

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// stubTagger is a canned NERTagger for extractor tests.
type stubTagger struct {
	spans     []entity.ExtractedEntity
	err       error
	available bool
}

func (s *stubTagger) Tag(_ context.Context, _ string) ([]entity.ExtractedEntity, error) {
	return s.spans, s.err
}

func (s *stubTagger) IsAvailable() bool {
	return s.available
}

func TestEntityExtractor_Amounts(t *testing.T) {
	extractor := NewEntityExtractor(nil)
	ctx := context.Background()

	t.Run("parses plain and currency-marked amounts", func(t *testing.T) {
		got := extractor.Extract(ctx, "I spent $45.50 and then 12 more")

		if len(got.Amounts) != 2 {
			t.Fatalf("expected 2 amounts, got %d: %v", len(got.Amounts), got.Amounts)
		}
		if !got.Amounts[0].Equal(decimal.RequireFromString("45.50")) {
			t.Errorf("expected first amount 45.50, got %s", got.Amounts[0])
		}
		if !got.Amounts[1].Equal(decimal.NewFromInt(12)) {
			t.Errorf("expected second amount 12, got %s", got.Amounts[1])
		}
	})

	t.Run("strips thousands separators", func(t *testing.T) {
		got := extractor.Extract(ctx, "transfer of $1,234.56 please")

		if len(got.Amounts) != 1 {
			t.Fatalf("expected 1 amount, got %d: %v", len(got.Amounts), got.Amounts)
		}
		if got.Amounts[0].String() != "1234.56" {
			t.Errorf("expected 1234.56, got %s", got.Amounts[0])
		}
	})

	t.Run("no amounts yields empty sequence", func(t *testing.T) {
		got := extractor.Extract(ctx, "show me my spending")

		if len(got.Amounts) != 0 {
			t.Errorf("expected no amounts, got %v", got.Amounts)
		}
	})
}

func TestEntityExtractor_Categories(t *testing.T) {
	extractor := NewEntityExtractor(nil)
	ctx := context.Background()

	t.Run("matches keywords case-insensitively in vocabulary order", func(t *testing.T) {
		got := extractor.Extract(ctx, "my RENT and food costs")

		want := []string{"food", "rent"}
		if !reflect.DeepEqual(got.Categories, want) {
			t.Errorf("expected %v, got %v", want, got.Categories)
		}
	})

	t.Run("duplicate mentions are suppressed", func(t *testing.T) {
		got := extractor.Extract(ctx, "gas gas gas")

		want := []string{"gas"}
		if !reflect.DeepEqual(got.Categories, want) {
			t.Errorf("expected %v, got %v", want, got.Categories)
		}
	})
}

func TestEntityExtractor_Dates(t *testing.T) {
	ctx := context.Background()

	t.Run("collects DATE and TIME spans in source order", func(t *testing.T) {
		tagger := &stubTagger{
			available: true,
			spans: []entity.ExtractedEntity{
				{Text: "last month", Label: entity.EntityLabelDate, Start: 11, End: 21},
				{Text: "Acme", Label: "ORG", Start: 25, End: 29},
				{Text: "9am", Label: entity.EntityLabelTime, Start: 33, End: 36},
			},
		}
		extractor := NewEntityExtractor(tagger)

		got := extractor.Extract(ctx, "spending in last month at Acme at 9am")

		want := []string{"last month", "9am"}
		if !reflect.DeepEqual(got.Dates, want) {
			t.Errorf("expected %v, got %v", want, got.Dates)
		}
	})

	t.Run("nil tagger degrades to no dates", func(t *testing.T) {
		extractor := NewEntityExtractor(nil)

		got := extractor.Extract(ctx, "spending last month")

		if len(got.Dates) != 0 {
			t.Errorf("expected no dates, got %v", got.Dates)
		}
	})

	t.Run("unavailable tagger degrades to no dates", func(t *testing.T) {
		extractor := NewEntityExtractor(&stubTagger{available: false})

		got := extractor.Extract(ctx, "spending last month")

		if len(got.Dates) != 0 {
			t.Errorf("expected no dates, got %v", got.Dates)
		}
	})

	t.Run("failing tagger degrades to no dates", func(t *testing.T) {
		extractor := NewEntityExtractor(&stubTagger{available: true, err: errors.New("tagger down")})

		got := extractor.Extract(ctx, "spending last month")

		if len(got.Dates) != 0 {
			t.Errorf("expected no dates, got %v", got.Dates)
		}
	})
}
