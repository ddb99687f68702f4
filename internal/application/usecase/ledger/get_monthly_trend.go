package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/finance-assistant/backend/internal/domain/error"
)

// DefaultTrendMonths is the trailing window used when the caller does not
// ask for a specific number of months.
const DefaultTrendMonths = 6

// GetMonthlyTrendInput represents the input for getting the monthly trend.
// Months <= 0 falls back to DefaultTrendMonths when zero and is rejected
// when negative.
type GetMonthlyTrendInput struct {
	UserID uuid.UUID
	Months int
}

// MonthlyTrendItem represents income, expenses and net for one calendar month.
type MonthlyTrendItem struct {
	Year     int             `json:"year"`
	Month    time.Month      `json:"month"`
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// GetMonthlyTrendOutput represents the output of getting the monthly trend,
// ordered chronologically ascending.
type GetMonthlyTrendOutput struct {
	Months []MonthlyTrendItem `json:"months"`
}

// GetMonthlyTrendUseCase handles getting per-month income and expense totals.
type GetMonthlyTrendUseCase struct {
	ledgerRepo LedgerRepository
	now        func() time.Time
}

// NewGetMonthlyTrendUseCase creates a new GetMonthlyTrendUseCase instance.
func NewGetMonthlyTrendUseCase(ledgerRepo LedgerRepository) *GetMonthlyTrendUseCase {
	return &GetMonthlyTrendUseCase{
		ledgerRepo: ledgerRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Execute retrieves per-month totals over the trailing window.
func (uc *GetMonthlyTrendUseCase) Execute(
	ctx context.Context,
	input GetMonthlyTrendInput,
) (*GetMonthlyTrendOutput, error) {
	months := input.Months
	if months == 0 {
		months = DefaultTrendMonths
	}
	if months < 0 {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidMonths,
			"months must be greater than zero",
			domainerror.ErrInvalidMonths,
		)
	}

	now := uc.now()
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(months - 1), 0)

	totals, err := uc.ledgerRepo.GetMonthlyTotals(ctx, input.UserID, windowStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly totals: %w", err)
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Year != totals[j].Year {
			return totals[i].Year < totals[j].Year
		}
		return totals[i].Month < totals[j].Month
	})

	items := make([]MonthlyTrendItem, 0, len(totals))
	for _, t := range totals {
		items = append(items, MonthlyTrendItem{
			Year:     t.Year,
			Month:    t.Month,
			Label:    fmt.Sprintf("%s %d", t.Month.String()[:3], t.Year),
			Income:   t.Income,
			Expenses: t.Expenses,
			Net:      t.Net(),
		})
	}

	return &GetMonthlyTrendOutput{Months: items}, nil
}
