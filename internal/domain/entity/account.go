package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountKind represents the kind of financial account.
type AccountKind string

const (
	AccountKindChecking   AccountKind = "checking"
	AccountKindSavings    AccountKind = "savings"
	AccountKindCreditCard AccountKind = "credit_card"
	AccountKindInvestment AccountKind = "investment"
	AccountKindLoan       AccountKind = "loan"
)

// Account represents a user's financial account. CurrentBalance is maintained
// by the ledger as the exact decimal sum of income minus expense transactions.
type Account struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Kind           AccountKind
	CurrentBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAccount creates a new Account entity with a zero balance.
func NewAccount(userID uuid.UUID, name string, kind AccountKind) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           name,
		Kind:           kind,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsLiability reports whether the account balance represents money owed
// rather than money available.
func (a *Account) IsLiability() bool {
	return a.Kind == AccountKindCreditCard || a.Kind == AccountKindLoan
}
