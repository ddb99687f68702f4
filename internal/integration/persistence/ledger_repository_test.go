package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-assistant/backend/internal/application/usecase/ledger"
	"github.com/finance-assistant/backend/internal/domain/entity"
	"github.com/finance-assistant/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.AccountModel{},
		&model.TransactionModel{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedAccount(t *testing.T, repo *LedgerRepository, userID uuid.UUID, name string, kind entity.AccountKind) *entity.Account {
	t.Helper()

	account := entity.NewAccount(userID, name, kind)
	if err := repo.CreateAccount(context.Background(), account); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	return account
}

func seedTransaction(
	t *testing.T,
	repo *LedgerRepository,
	accountID uuid.UUID,
	date time.Time,
	description string,
	amount string,
	txType entity.TransactionType,
	category entity.TransactionCategory,
) {
	t.Helper()

	tx := entity.NewTransaction(
		accountID, date, description, "",
		decimal.RequireFromString(amount), txType, category,
	)
	if err := repo.CreateTransaction(context.Background(), tx); err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
}

func TestLedgerRepository(t *testing.T) {
	userID := uuid.New()
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	t.Run("balance tracks income minus expenses exactly", func(t *testing.T) {
		repo := NewLedgerRepository(newTestDB(t))
		account := seedAccount(t, repo, userID, "Checking", entity.AccountKindChecking)

		seedTransaction(t, repo, account.ID, jan, "SALARY DEPOSIT", "3500.00", entity.TransactionTypeIncome, entity.CategorySalary)
		seedTransaction(t, repo, account.ID, jan, "RENT", "1200.01", entity.TransactionTypeExpense, entity.CategoryBillsUtilities)
		seedTransaction(t, repo, account.ID, feb, "GROCERIES", "0.99", entity.TransactionTypeExpense, entity.CategoryFoodDining)

		accounts, err := repo.GetActiveAccounts(context.Background(), userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(accounts) != 1 {
			t.Fatalf("expected 1 account, got %d", len(accounts))
		}
		if want := decimal.RequireFromString("2299.00"); !accounts[0].CurrentBalance.Equal(want) {
			t.Errorf("expected balance %s, got %s", want, accounts[0].CurrentBalance)
		}
	})

	t.Run("category expenses exclude income", func(t *testing.T) {
		repo := NewLedgerRepository(newTestDB(t))
		account := seedAccount(t, repo, userID, "Checking", entity.AccountKindChecking)

		seedTransaction(t, repo, account.ID, jan, "SALARY", "3500.00", entity.TransactionTypeIncome, entity.CategorySalary)
		seedTransaction(t, repo, account.ID, jan, "DINNER", "45.00", entity.TransactionTypeExpense, entity.CategoryFoodDining)
		seedTransaction(t, repo, account.ID, jan, "LUNCH", "15.00", entity.TransactionTypeExpense, entity.CategoryFoodDining)

		totals, err := repo.GetCategoryExpenses(context.Background(), userID, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(totals) != 1 {
			t.Fatalf("expected 1 category, got %d", len(totals))
		}
		if totals[0].Category != entity.CategoryFoodDining {
			t.Errorf("expected food_dining, got %s", totals[0].Category)
		}
		if want := decimal.RequireFromString("60.00"); !totals[0].Amount.Equal(want) {
			t.Errorf("expected 60.00, got %s", totals[0].Amount)
		}
	})

	t.Run("monthly totals group by calendar month", func(t *testing.T) {
		repo := NewLedgerRepository(newTestDB(t))
		account := seedAccount(t, repo, userID, "Checking", entity.AccountKindChecking)

		seedTransaction(t, repo, account.ID, jan, "SALARY", "1000.00", entity.TransactionTypeIncome, entity.CategorySalary)
		seedTransaction(t, repo, account.ID, jan, "RENT", "300.00", entity.TransactionTypeExpense, entity.CategoryBillsUtilities)
		seedTransaction(t, repo, account.ID, feb, "SALARY", "1000.00", entity.TransactionTypeIncome, entity.CategorySalary)

		totals, err := repo.GetMonthlyTotals(context.Background(), userID, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(totals) != 2 {
			t.Fatalf("expected 2 months, got %d", len(totals))
		}

		for _, mt := range totals {
			if mt.Month == time.January {
				if want := decimal.RequireFromString("700.00"); !mt.Net().Equal(want) {
					t.Errorf("expected January net %s, got %s", want, mt.Net())
				}
			}
		}
	})

	t.Run("transaction count honors the window", func(t *testing.T) {
		repo := NewLedgerRepository(newTestDB(t))
		account := seedAccount(t, repo, userID, "Checking", entity.AccountKindChecking)

		seedTransaction(t, repo, account.ID, jan, "SALARY", "1000.00", entity.TransactionTypeIncome, entity.CategorySalary)
		seedTransaction(t, repo, account.ID, jan, "RENT", "300.00", entity.TransactionTypeExpense, entity.CategoryBillsUtilities)
		seedTransaction(t, repo, account.ID, feb, "SALARY", "1000.00", entity.TransactionTypeIncome, entity.CategorySalary)

		count, err := repo.CountTransactions(context.Background(), userID, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 3 {
			t.Errorf("expected 3 transactions, got %d", count)
		}

		count, err = repo.CountTransactions(context.Background(), userID, feb.AddDate(0, 0, -1), time.Time{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 transaction in the window, got %d", count)
		}
	})

	t.Run("amount search honors bands and ordering", func(t *testing.T) {
		repo := NewLedgerRepository(newTestDB(t))
		account := seedAccount(t, repo, userID, "Checking", entity.AccountKindChecking)

		seedTransaction(t, repo, account.ID, jan, "OLD MATCH", "100.00", entity.TransactionTypeExpense, entity.CategoryShopping)
		seedTransaction(t, repo, account.ID, feb, "NEW MATCH", "95.00", entity.TransactionTypeExpense, entity.CategoryShopping)
		seedTransaction(t, repo, account.ID, feb, "MISS", "300.00", entity.TransactionTypeExpense, entity.CategoryShopping)

		transactions, err := repo.SearchTransactionsByAmountRanges(
			context.Background(),
			userID,
			[]ledger.AmountRange{{
				Min: decimal.RequireFromString("90.00"),
				Max: decimal.RequireFromString("110.00"),
			}},
			10,
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(transactions) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(transactions))
		}
		if transactions[0].Description != "NEW MATCH" {
			t.Errorf("expected newest first, got %s", transactions[0].Description)
		}
	})

	t.Run("transactions of other users are invisible", func(t *testing.T) {
		repo := NewLedgerRepository(newTestDB(t))
		mine := seedAccount(t, repo, userID, "Checking", entity.AccountKindChecking)
		other := seedAccount(t, repo, uuid.New(), "Other", entity.AccountKindChecking)

		seedTransaction(t, repo, mine.ID, jan, "MINE", "10.00", entity.TransactionTypeExpense, entity.CategoryShopping)
		seedTransaction(t, repo, other.ID, jan, "THEIRS", "10.00", entity.TransactionTypeExpense, entity.CategoryShopping)

		transactions, err := repo.GetRecentTransactions(context.Background(), userID, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(transactions) != 1 || transactions[0].Description != "MINE" {
			t.Errorf("expected only the user's transaction, got %+v", transactions)
		}
	})

	t.Run("labeled samples come from categorized transactions", func(t *testing.T) {
		repo := NewLedgerRepository(newTestDB(t))
		account := seedAccount(t, repo, userID, "Checking", entity.AccountKindChecking)

		seedTransaction(t, repo, account.ID, jan, "STARBUCKS COFFEE", "5.25", entity.TransactionTypeExpense, entity.CategoryFoodDining)
		seedTransaction(t, repo, account.ID, jan, "UNLABELED", "5.25", entity.TransactionTypeExpense, "")

		samples, err := repo.GetLabeledSamples(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(samples) != 1 {
			t.Fatalf("expected 1 sample, got %d", len(samples))
		}
		if samples[0].Category != entity.CategoryFoodDining {
			t.Errorf("expected food_dining, got %s", samples[0].Category)
		}
	})
}
