package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Savings allocation ratios applied to a positive net flow. These are
// product policy constants, not derived values.
var (
	EmergencyAllocationRatio     = decimal.RequireFromString("0.5")
	LongTermAllocationRatio      = decimal.RequireFromString("0.3")
	DiscretionaryAllocationRatio = decimal.RequireFromString("0.2")
)

// GetNetFlowInput represents the input for getting the net cash flow.
// Zero dates leave that side of the window open.
type GetNetFlowInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// SavingsAllocation represents the suggested split of a positive net flow.
type SavingsAllocation struct {
	Emergency     decimal.Decimal `json:"emergency"`
	LongTerm      decimal.Decimal `json:"long_term"`
	Discretionary decimal.Decimal `json:"discretionary"`
}

// GetNetFlowOutput represents the output of getting the net cash flow.
// Allocation is nil when the net flow is not positive.
type GetNetFlowOutput struct {
	Income     decimal.Decimal    `json:"income"`
	Expenses   decimal.Decimal    `json:"expenses"`
	NetFlow    decimal.Decimal    `json:"net_flow"`
	Allocation *SavingsAllocation `json:"allocation,omitempty"`
}

// GetNetFlowUseCase handles getting income minus expenses over a window.
type GetNetFlowUseCase struct {
	ledgerRepo LedgerRepository
}

// NewGetNetFlowUseCase creates a new GetNetFlowUseCase instance.
func NewGetNetFlowUseCase(ledgerRepo LedgerRepository) *GetNetFlowUseCase {
	return &GetNetFlowUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute retrieves the window's net flow and, when positive, the suggested
// savings allocation.
func (uc *GetNetFlowUseCase) Execute(
	ctx context.Context,
	input GetNetFlowInput,
) (*GetNetFlowOutput, error) {
	if err := validateWindow(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	income, expenses, err := uc.ledgerRepo.GetPeriodTotals(ctx, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get period totals: %w", err)
	}

	netFlow := income.Sub(expenses)

	output := &GetNetFlowOutput{
		Income:   income,
		Expenses: expenses,
		NetFlow:  netFlow,
	}

	if netFlow.IsPositive() {
		output.Allocation = &SavingsAllocation{
			Emergency:     netFlow.Mul(EmergencyAllocationRatio).Round(2),
			LongTerm:      netFlow.Mul(LongTermAllocationRatio).Round(2),
			Discretionary: netFlow.Mul(DiscretionaryAllocationRatio).Round(2),
		}
	}

	return output, nil
}
