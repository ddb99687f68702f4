package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GetSummaryInput represents the input for getting the transaction summary.
// Zero dates leave that side of the window open.
type GetSummaryInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// GetSummaryOutput represents the output of getting the transaction summary:
// the window's totals and count, the top spending categories, and the
// trailing monthly trend.
type GetSummaryOutput struct {
	TotalIncome      decimal.Decimal         `json:"total_income"`
	TotalExpenses    decimal.Decimal         `json:"total_expenses"`
	NetIncome        decimal.Decimal         `json:"net_income"`
	TransactionCount int                     `json:"transaction_count"`
	TopCategories    []CategoryBreakdownItem `json:"top_categories"`
	MonthlyTrend     []MonthlyTrendItem      `json:"monthly_trend"`
}

// GetSummaryUseCase handles getting the combined transaction summary. It
// composes the net-flow, breakdown and trend aggregations over one window.
type GetSummaryUseCase struct {
	ledgerRepo LedgerRepository
	netFlow    *GetNetFlowUseCase
	breakdown  *GetCategoryBreakdownUseCase
	trend      *GetMonthlyTrendUseCase
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	ledgerRepo LedgerRepository,
	netFlow *GetNetFlowUseCase,
	breakdown *GetCategoryBreakdownUseCase,
	trend *GetMonthlyTrendUseCase,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		ledgerRepo: ledgerRepo,
		netFlow:    netFlow,
		breakdown:  breakdown,
		trend:      trend,
	}
}

// Execute retrieves the summary. The trend always covers the default
// trailing months regardless of the requested window.
func (uc *GetSummaryUseCase) Execute(
	ctx context.Context,
	input GetSummaryInput,
) (*GetSummaryOutput, error) {
	flow, err := uc.netFlow.Execute(ctx, GetNetFlowInput{
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	breakdown, err := uc.breakdown.Execute(ctx, GetCategoryBreakdownInput{
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	trend, err := uc.trend.Execute(ctx, GetMonthlyTrendInput{UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	count, err := uc.ledgerRepo.CountTransactions(ctx, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	return &GetSummaryOutput{
		TotalIncome:      flow.Income,
		TotalExpenses:    flow.Expenses,
		NetIncome:        flow.NetFlow,
		TransactionCount: count,
		TopCategories:    breakdown.TopCategories(),
		MonthlyTrend:     trend.Months,
	}, nil
}
