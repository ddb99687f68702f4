// Package ledger contains read-only aggregation use cases over the
// transaction and account store.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// LedgerRepository defines the read accessors the aggregation use cases need.
// Implementations return raw rows; ordering, capping and derived figures are
// applied by the use cases.
type LedgerRepository interface {
	// GetActiveAccounts returns the user's active accounts.
	GetActiveAccounts(ctx context.Context, userID uuid.UUID) ([]entity.Account, error)

	// GetCategoryExpenses returns summed expense amounts per category within
	// the window. Zero start or end dates leave that side of the window open.
	GetCategoryExpenses(
		ctx context.Context,
		userID uuid.UUID,
		startDate, endDate time.Time,
	) ([]entity.CategoryTotal, error)

	// GetMonthlyTotals returns income and expense totals per calendar month
	// within the window.
	GetMonthlyTotals(
		ctx context.Context,
		userID uuid.UUID,
		startDate, endDate time.Time,
	) ([]entity.MonthlyTotals, error)

	// GetPeriodTotals returns overall income and expense totals within the
	// window.
	GetPeriodTotals(
		ctx context.Context,
		userID uuid.UUID,
		startDate, endDate time.Time,
	) (income, expenses decimal.Decimal, err error)

	// CountTransactions returns the number of transactions within the window.
	CountTransactions(
		ctx context.Context,
		userID uuid.UUID,
		startDate, endDate time.Time,
	) (int, error)

	// GetRecentTransactions returns the user's transactions, newest first,
	// capped to limit rows.
	GetRecentTransactions(
		ctx context.Context,
		userID uuid.UUID,
		limit int,
	) ([]entity.Transaction, error)

	// SearchTransactionsByAmountRanges returns the user's transactions whose
	// amount falls inside any of the given bands, newest first, capped to
	// limit rows.
	SearchTransactionsByAmountRanges(
		ctx context.Context,
		userID uuid.UUID,
		ranges []AmountRange,
		limit int,
	) ([]entity.Transaction, error)
}

// AmountRange is an inclusive amount band used by transaction search.
type AmountRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}
