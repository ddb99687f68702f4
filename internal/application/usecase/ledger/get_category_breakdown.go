package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/domain/entity"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
)

// TopCategoriesLimit caps the top-category views rendered by the chat
// surface and the summary endpoint. Chart series carry every category.
const TopCategoriesLimit = 5

// GetCategoryBreakdownInput represents the input for getting the spending
// breakdown. Zero dates leave that side of the window open.
type GetCategoryBreakdownInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// CategoryBreakdownItem represents a single category in the breakdown.
type CategoryBreakdownItem struct {
	Category   entity.TransactionCategory `json:"category"`
	Amount     decimal.Decimal            `json:"amount"`
	Percentage float64                    `json:"percentage"`
}

// GetCategoryBreakdownOutput represents the output of getting the spending
// breakdown. Categories holds every category sorted by amount descending;
// TopCategories is the capped view for text rendering.
type GetCategoryBreakdownOutput struct {
	Categories    []CategoryBreakdownItem `json:"categories"`
	TotalExpenses decimal.Decimal         `json:"total_expenses"`
}

// TopCategories returns the breakdown capped to TopCategoriesLimit.
func (o *GetCategoryBreakdownOutput) TopCategories() []CategoryBreakdownItem {
	if len(o.Categories) > TopCategoriesLimit {
		return o.Categories[:TopCategoriesLimit]
	}
	return o.Categories
}

// GetCategoryBreakdownUseCase handles getting spending breakdown by category.
type GetCategoryBreakdownUseCase struct {
	ledgerRepo LedgerRepository
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(ledgerRepo LedgerRepository) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute retrieves expense totals per category for the given window.
func (uc *GetCategoryBreakdownUseCase) Execute(
	ctx context.Context,
	input GetCategoryBreakdownInput,
) (*GetCategoryBreakdownOutput, error) {
	if err := validateWindow(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	totals, err := uc.ledgerRepo.GetCategoryExpenses(ctx, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get category expenses: %w", err)
	}

	total := decimal.Zero
	for _, t := range totals {
		total = total.Add(t.Amount)
	}

	// Amount descending, category name as a deterministic tie-break.
	sort.SliceStable(totals, func(i, j int) bool {
		if !totals[i].Amount.Equal(totals[j].Amount) {
			return totals[i].Amount.GreaterThan(totals[j].Amount)
		}
		return totals[i].Category < totals[j].Category
	})

	items := make([]CategoryBreakdownItem, 0, len(totals))
	for _, t := range totals {
		var percentage float64
		if !total.IsZero() {
			pct := t.Amount.Mul(decimal.NewFromInt(100)).Div(total)
			percentage, _ = pct.Round(2).Float64()
		}

		items = append(items, CategoryBreakdownItem{
			Category:   t.Category,
			Amount:     t.Amount,
			Percentage: percentage,
		})
	}

	return &GetCategoryBreakdownOutput{
		Categories:    items,
		TotalExpenses: total,
	}, nil
}

// validateWindow rejects a window whose end precedes its start. Zero dates
// are open bounds and always valid.
func validateWindow(startDate, endDate time.Time) error {
	if !startDate.IsZero() && !endDate.IsZero() && endDate.Before(startDate) {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDateRange,
			"end date must be after start date",
			domainerror.ErrInvalidDateRange,
		)
	}
	return nil
}
