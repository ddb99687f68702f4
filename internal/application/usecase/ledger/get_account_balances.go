package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// GetAccountBalancesInput represents the input for getting account balances.
type GetAccountBalancesInput struct {
	UserID uuid.UUID
}

// AccountBalanceItem represents one account in the balances output.
type AccountBalanceItem struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	Kind           entity.AccountKind `json:"kind"`
	CurrentBalance decimal.Decimal    `json:"current_balance"`
}

// GetAccountBalancesOutput represents the output of getting account balances.
// TotalBalance sums asset accounts only; credit card and loan balances are
// liabilities and do not count as available funds.
type GetAccountBalancesOutput struct {
	Accounts     []AccountBalanceItem `json:"accounts"`
	TotalBalance decimal.Decimal      `json:"total_balance"`
}

// GetAccountBalancesUseCase handles getting a user's account balances.
type GetAccountBalancesUseCase struct {
	ledgerRepo LedgerRepository
}

// NewGetAccountBalancesUseCase creates a new GetAccountBalancesUseCase instance.
func NewGetAccountBalancesUseCase(ledgerRepo LedgerRepository) *GetAccountBalancesUseCase {
	return &GetAccountBalancesUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute retrieves the user's active accounts and the derived total balance.
func (uc *GetAccountBalancesUseCase) Execute(
	ctx context.Context,
	input GetAccountBalancesInput,
) (*GetAccountBalancesOutput, error) {
	accounts, err := uc.ledgerRepo.GetActiveAccounts(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	items := make([]AccountBalanceItem, 0, len(accounts))
	total := decimal.Zero
	for _, account := range accounts {
		items = append(items, AccountBalanceItem{
			ID:             account.ID,
			Name:           account.Name,
			Kind:           account.Kind,
			CurrentBalance: account.CurrentBalance,
		})

		if !account.IsLiability() {
			total = total.Add(account.CurrentBalance)
		}
	}

	return &GetAccountBalancesOutput{
		Accounts:     items,
		TotalBalance: total,
	}, nil
}
