package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

const (
	// SearchResultsLimit caps how many matching transactions are returned.
	SearchResultsLimit = 10
)

// SearchAmountTolerance widens each searched amount into a band of
// amount*(1±tolerance). A product policy constant.
var SearchAmountTolerance = decimal.RequireFromString("0.10")

// SearchTransactionsInput represents the input for searching transactions.
// Without amounts the search falls back to the most recent transactions.
type SearchTransactionsInput struct {
	UserID  uuid.UUID
	Amounts []decimal.Decimal
}

// SearchTransactionsOutput represents the output of searching transactions,
// newest first.
type SearchTransactionsOutput struct {
	Transactions []entity.Transaction `json:"transactions"`
}

// SearchTransactionsUseCase handles finding transactions, optionally near
// one or more amounts.
type SearchTransactionsUseCase struct {
	ledgerRepo LedgerRepository
}

// NewSearchTransactionsUseCase creates a new SearchTransactionsUseCase instance.
func NewSearchTransactionsUseCase(ledgerRepo LedgerRepository) *SearchTransactionsUseCase {
	return &SearchTransactionsUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute finds the user's most recent transactions. Each positive amount
// contributes a tolerance band; a transaction matches when it falls inside
// any band. With no usable amounts the most recent transactions are
// returned unfiltered.
func (uc *SearchTransactionsUseCase) Execute(
	ctx context.Context,
	input SearchTransactionsInput,
) (*SearchTransactionsOutput, error) {
	ranges := make([]AmountRange, 0, len(input.Amounts))
	for _, amount := range input.Amounts {
		if !amount.IsPositive() {
			continue
		}
		ranges = append(ranges, AmountRange{
			Min: amount.Mul(decimal.NewFromInt(1).Sub(SearchAmountTolerance)),
			Max: amount.Mul(decimal.NewFromInt(1).Add(SearchAmountTolerance)),
		})
	}

	var (
		transactions []entity.Transaction
		err          error
	)
	if len(ranges) == 0 {
		transactions, err = uc.ledgerRepo.GetRecentTransactions(ctx, input.UserID, SearchResultsLimit)
	} else {
		transactions, err = uc.ledgerRepo.SearchTransactionsByAmountRanges(ctx, input.UserID, ranges, SearchResultsLimit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search transactions: %w", err)
	}

	return &SearchTransactionsOutput{Transactions: transactions}, nil
}
