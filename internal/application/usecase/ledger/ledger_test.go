package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/domain/entity"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
)

// fakeLedgerRepository serves canned rows and records search parameters.
type fakeLedgerRepository struct {
	accounts       []entity.Account
	categoryTotals []entity.CategoryTotal
	monthlyTotals  []entity.MonthlyTotals
	income         decimal.Decimal
	expenses       decimal.Decimal
	transactions   []entity.Transaction
	txCount        int
	err            error

	searchRanges []AmountRange
	searchLimit  int
	recentCalls  int
}

func (r *fakeLedgerRepository) GetActiveAccounts(_ context.Context, _ uuid.UUID) ([]entity.Account, error) {
	return r.accounts, r.err
}

func (r *fakeLedgerRepository) GetCategoryExpenses(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]entity.CategoryTotal, error) {
	return r.categoryTotals, r.err
}

func (r *fakeLedgerRepository) GetMonthlyTotals(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]entity.MonthlyTotals, error) {
	return r.monthlyTotals, r.err
}

func (r *fakeLedgerRepository) GetPeriodTotals(_ context.Context, _ uuid.UUID, _, _ time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return r.income, r.expenses, r.err
}

func (r *fakeLedgerRepository) CountTransactions(_ context.Context, _ uuid.UUID, _, _ time.Time) (int, error) {
	return r.txCount, r.err
}

func (r *fakeLedgerRepository) GetRecentTransactions(_ context.Context, _ uuid.UUID, limit int) ([]entity.Transaction, error) {
	r.recentCalls++
	r.searchLimit = limit
	return r.transactions, r.err
}

func (r *fakeLedgerRepository) SearchTransactionsByAmountRanges(_ context.Context, _ uuid.UUID, ranges []AmountRange, limit int) ([]entity.Transaction, error) {
	r.searchRanges = ranges
	r.searchLimit = limit
	return r.transactions, r.err
}

func TestGetAccountBalances(t *testing.T) {
	userID := uuid.New()

	t.Run("liability accounts are excluded from the total", func(t *testing.T) {
		repo := &fakeLedgerRepository{
			accounts: []entity.Account{
				{ID: uuid.New(), Name: "Checking", Kind: entity.AccountKindChecking, CurrentBalance: decimal.RequireFromString("1000.00")},
				{ID: uuid.New(), Name: "Savings", Kind: entity.AccountKindSavings, CurrentBalance: decimal.RequireFromString("500.50")},
				{ID: uuid.New(), Name: "Visa", Kind: entity.AccountKindCreditCard, CurrentBalance: decimal.RequireFromString("-250.00")},
			},
		}
		uc := NewGetAccountBalancesUseCase(repo)

		output, err := uc.Execute(context.Background(), GetAccountBalancesInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Accounts) != 3 {
			t.Errorf("expected all 3 accounts listed, got %d", len(output.Accounts))
		}
		if want := decimal.RequireFromString("1500.50"); !output.TotalBalance.Equal(want) {
			t.Errorf("expected total %s, got %s", want, output.TotalBalance)
		}
	})

	t.Run("no accounts yields a zero total", func(t *testing.T) {
		uc := NewGetAccountBalancesUseCase(&fakeLedgerRepository{})

		output, err := uc.Execute(context.Background(), GetAccountBalancesInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Accounts) != 0 {
			t.Errorf("expected no accounts, got %d", len(output.Accounts))
		}
		if !output.TotalBalance.IsZero() {
			t.Errorf("expected zero total, got %s", output.TotalBalance)
		}
	})

	t.Run("repository errors are propagated", func(t *testing.T) {
		uc := NewGetAccountBalancesUseCase(&fakeLedgerRepository{err: errors.New("connection lost")})

		if _, err := uc.Execute(context.Background(), GetAccountBalancesInput{UserID: userID}); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestGetCategoryBreakdown(t *testing.T) {
	userID := uuid.New()

	t.Run("sorts descending and caps only the top view", func(t *testing.T) {
		repo := &fakeLedgerRepository{
			categoryTotals: []entity.CategoryTotal{
				{Category: entity.CategoryHealthcare, Amount: decimal.RequireFromString("30.00")},
				{Category: entity.CategoryFoodDining, Amount: decimal.RequireFromString("400.00")},
				{Category: entity.CategoryEntertainment, Amount: decimal.RequireFromString("50.00")},
				{Category: entity.CategoryShopping, Amount: decimal.RequireFromString("300.00")},
				{Category: entity.CategoryTransportation, Amount: decimal.RequireFromString("120.00")},
				{Category: entity.CategoryBillsUtilities, Amount: decimal.RequireFromString("100.00")},
			},
		}
		uc := NewGetCategoryBreakdownUseCase(repo)

		output, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Categories) != 6 {
			t.Fatalf("expected all 6 categories, got %d", len(output.Categories))
		}
		for i := 1; i < len(output.Categories); i++ {
			if output.Categories[i].Amount.GreaterThan(output.Categories[i-1].Amount) {
				t.Errorf("categories not sorted descending at index %d", i)
			}
		}
		if output.Categories[0].Category != entity.CategoryFoodDining {
			t.Errorf("expected food_dining first, got %s", output.Categories[0].Category)
		}

		top := output.TopCategories()
		if len(top) != TopCategoriesLimit {
			t.Fatalf("expected %d top categories, got %d", TopCategoriesLimit, len(top))
		}
		for _, item := range top {
			if item.Category == entity.CategoryHealthcare {
				t.Error("smallest category should have been dropped from the top view")
			}
		}
		if output.Categories[5].Category != entity.CategoryHealthcare {
			t.Error("smallest category must still close the full list")
		}
		if want := decimal.RequireFromString("1000.00"); !output.TotalExpenses.Equal(want) {
			t.Errorf("total must cover every category, got %s", output.TotalExpenses)
		}
	})

	t.Run("percentages are computed against the full total", func(t *testing.T) {
		repo := &fakeLedgerRepository{
			categoryTotals: []entity.CategoryTotal{
				{Category: entity.CategoryFoodDining, Amount: decimal.RequireFromString("75.00")},
				{Category: entity.CategoryShopping, Amount: decimal.RequireFromString("25.00")},
			},
		}
		uc := NewGetCategoryBreakdownUseCase(repo)

		output, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Categories[0].Percentage != 75 {
			t.Errorf("expected 75%%, got %v", output.Categories[0].Percentage)
		}
		if output.Categories[1].Percentage != 25 {
			t.Errorf("expected 25%%, got %v", output.Categories[1].Percentage)
		}
	})

	t.Run("no expenses yields an empty breakdown", func(t *testing.T) {
		uc := NewGetCategoryBreakdownUseCase(&fakeLedgerRepository{})

		output, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Categories) != 0 {
			t.Errorf("expected no categories, got %d", len(output.Categories))
		}
		if !output.TotalExpenses.IsZero() {
			t.Errorf("expected zero total, got %s", output.TotalExpenses)
		}
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		uc := NewGetCategoryBreakdownUseCase(&fakeLedgerRepository{})

		_, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{
			UserID:    userID,
			StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		})

		if !errors.Is(err, domainerror.ErrInvalidDateRange) {
			t.Errorf("expected ErrInvalidDateRange, got %v", err)
		}
	})
}

func TestGetMonthlyTrend(t *testing.T) {
	userID := uuid.New()

	t.Run("orders months chronologically", func(t *testing.T) {
		repo := &fakeLedgerRepository{
			monthlyTotals: []entity.MonthlyTotals{
				{Year: 2026, Month: time.March, Income: decimal.RequireFromString("1000.00"), Expenses: decimal.RequireFromString("300.00")},
				{Year: 2026, Month: time.January, Income: decimal.RequireFromString("900.00"), Expenses: decimal.RequireFromString("400.00")},
				{Year: 2025, Month: time.December, Income: decimal.RequireFromString("800.00"), Expenses: decimal.RequireFromString("500.00")},
			},
		}
		uc := NewGetMonthlyTrendUseCase(repo)

		output, err := uc.Execute(context.Background(), GetMonthlyTrendInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Months) != 3 {
			t.Fatalf("expected 3 months, got %d", len(output.Months))
		}
		if output.Months[0].Label != "Dec 2025" {
			t.Errorf("expected Dec 2025 first, got %s", output.Months[0].Label)
		}
		if output.Months[2].Label != "Mar 2026" {
			t.Errorf("expected Mar 2026 last, got %s", output.Months[2].Label)
		}
		if want := decimal.RequireFromString("700.00"); !output.Months[2].Net.Equal(want) {
			t.Errorf("expected net %s, got %s", want, output.Months[2].Net)
		}
	})

	t.Run("rejects a negative window", func(t *testing.T) {
		uc := NewGetMonthlyTrendUseCase(&fakeLedgerRepository{})

		_, err := uc.Execute(context.Background(), GetMonthlyTrendInput{UserID: userID, Months: -1})

		if !errors.Is(err, domainerror.ErrInvalidMonths) {
			t.Errorf("expected ErrInvalidMonths, got %v", err)
		}
	})

	t.Run("empty ledger yields an empty trend", func(t *testing.T) {
		uc := NewGetMonthlyTrendUseCase(&fakeLedgerRepository{})

		output, err := uc.Execute(context.Background(), GetMonthlyTrendInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Months) != 0 {
			t.Errorf("expected no months, got %d", len(output.Months))
		}
	})
}

func TestGetNetFlow(t *testing.T) {
	userID := uuid.New()

	t.Run("positive net flow gets a savings allocation", func(t *testing.T) {
		repo := &fakeLedgerRepository{
			income:   decimal.RequireFromString("3500.00"),
			expenses: decimal.RequireFromString("2500.00"),
		}
		uc := NewGetNetFlowUseCase(repo)

		output, err := uc.Execute(context.Background(), GetNetFlowInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if want := decimal.RequireFromString("1000.00"); !output.NetFlow.Equal(want) {
			t.Errorf("expected net flow %s, got %s", want, output.NetFlow)
		}
		if output.Allocation == nil {
			t.Fatal("expected a savings allocation")
		}
		if want := decimal.RequireFromString("500.00"); !output.Allocation.Emergency.Equal(want) {
			t.Errorf("expected emergency %s, got %s", want, output.Allocation.Emergency)
		}
		if want := decimal.RequireFromString("300.00"); !output.Allocation.LongTerm.Equal(want) {
			t.Errorf("expected long term %s, got %s", want, output.Allocation.LongTerm)
		}
		if want := decimal.RequireFromString("200.00"); !output.Allocation.Discretionary.Equal(want) {
			t.Errorf("expected discretionary %s, got %s", want, output.Allocation.Discretionary)
		}
	})

	t.Run("negative net flow has no allocation", func(t *testing.T) {
		repo := &fakeLedgerRepository{
			income:   decimal.RequireFromString("1000.00"),
			expenses: decimal.RequireFromString("1500.00"),
		}
		uc := NewGetNetFlowUseCase(repo)

		output, err := uc.Execute(context.Background(), GetNetFlowInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if want := decimal.RequireFromString("-500.00"); !output.NetFlow.Equal(want) {
			t.Errorf("expected net flow %s, got %s", want, output.NetFlow)
		}
		if output.Allocation != nil {
			t.Error("expected no allocation for a negative net flow")
		}
	})
}

func newSummaryUseCase(repo *fakeLedgerRepository) *GetSummaryUseCase {
	return NewGetSummaryUseCase(
		repo,
		NewGetNetFlowUseCase(repo),
		NewGetCategoryBreakdownUseCase(repo),
		NewGetMonthlyTrendUseCase(repo),
	)
}

func TestGetSummary(t *testing.T) {
	userID := uuid.New()

	t.Run("combines totals, top categories and the monthly trend", func(t *testing.T) {
		repo := &fakeLedgerRepository{
			income:   decimal.RequireFromString("3500.00"),
			expenses: decimal.RequireFromString("1000.00"),
			txCount:  9,
			categoryTotals: []entity.CategoryTotal{
				{Category: entity.CategoryHealthcare, Amount: decimal.RequireFromString("30.00")},
				{Category: entity.CategoryFoodDining, Amount: decimal.RequireFromString("400.00")},
				{Category: entity.CategoryEntertainment, Amount: decimal.RequireFromString("50.00")},
				{Category: entity.CategoryShopping, Amount: decimal.RequireFromString("300.00")},
				{Category: entity.CategoryTransportation, Amount: decimal.RequireFromString("120.00")},
				{Category: entity.CategoryBillsUtilities, Amount: decimal.RequireFromString("100.00")},
			},
			monthlyTotals: []entity.MonthlyTotals{
				{Year: 2026, Month: time.July, Income: decimal.RequireFromString("3500.00"), Expenses: decimal.RequireFromString("1000.00")},
			},
		}
		uc := newSummaryUseCase(repo)

		output, err := uc.Execute(context.Background(), GetSummaryInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if want := decimal.RequireFromString("2500.00"); !output.NetIncome.Equal(want) {
			t.Errorf("expected net income %s, got %s", want, output.NetIncome)
		}
		if output.TransactionCount != 9 {
			t.Errorf("expected 9 transactions, got %d", output.TransactionCount)
		}
		if len(output.TopCategories) != TopCategoriesLimit {
			t.Fatalf("expected %d top categories, got %d", TopCategoriesLimit, len(output.TopCategories))
		}
		if output.TopCategories[0].Category != entity.CategoryFoodDining {
			t.Errorf("expected food_dining first, got %s", output.TopCategories[0].Category)
		}
		if len(output.MonthlyTrend) != 1 {
			t.Fatalf("expected 1 trend month, got %d", len(output.MonthlyTrend))
		}
		if output.MonthlyTrend[0].Label != "Jul 2026" {
			t.Errorf("expected Jul 2026, got %s", output.MonthlyTrend[0].Label)
		}
	})

	t.Run("empty ledger yields a zeroed summary", func(t *testing.T) {
		uc := newSummaryUseCase(&fakeLedgerRepository{})

		output, err := uc.Execute(context.Background(), GetSummaryInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.NetIncome.IsZero() || output.TransactionCount != 0 {
			t.Errorf("expected an empty summary, got %+v", output)
		}
		if len(output.TopCategories) != 0 || len(output.MonthlyTrend) != 0 {
			t.Errorf("expected empty lists, got %+v", output)
		}
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		uc := newSummaryUseCase(&fakeLedgerRepository{})

		_, err := uc.Execute(context.Background(), GetSummaryInput{
			UserID:    userID,
			StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		})

		if !errors.Is(err, domainerror.ErrInvalidDateRange) {
			t.Errorf("expected ErrInvalidDateRange, got %v", err)
		}
	})
}

func TestSearchTransactions(t *testing.T) {
	userID := uuid.New()

	t.Run("applies the tolerance bands and result cap", func(t *testing.T) {
		repo := &fakeLedgerRepository{}
		uc := NewSearchTransactionsUseCase(repo)

		_, err := uc.Execute(context.Background(), SearchTransactionsInput{
			UserID: userID,
			Amounts: []decimal.Decimal{
				decimal.RequireFromString("100.00"),
				decimal.RequireFromString("50.00"),
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(repo.searchRanges) != 2 {
			t.Fatalf("expected 2 bands, got %d", len(repo.searchRanges))
		}
		if want := decimal.RequireFromString("90.00"); !repo.searchRanges[0].Min.Equal(want) {
			t.Errorf("expected lower bound %s, got %s", want, repo.searchRanges[0].Min)
		}
		if want := decimal.RequireFromString("110.00"); !repo.searchRanges[0].Max.Equal(want) {
			t.Errorf("expected upper bound %s, got %s", want, repo.searchRanges[0].Max)
		}
		if repo.searchLimit != SearchResultsLimit {
			t.Errorf("expected limit %d, got %d", SearchResultsLimit, repo.searchLimit)
		}
		if repo.recentCalls != 0 {
			t.Error("amount search must not fall back to recent transactions")
		}
	})

	t.Run("no usable amounts falls back to recent transactions", func(t *testing.T) {
		repo := &fakeLedgerRepository{
			transactions: []entity.Transaction{{ID: uuid.New()}},
		}
		uc := NewSearchTransactionsUseCase(repo)

		output, err := uc.Execute(context.Background(), SearchTransactionsInput{
			UserID:  userID,
			Amounts: []decimal.Decimal{decimal.Zero},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.recentCalls != 1 {
			t.Errorf("expected one recent-transactions query, got %d", repo.recentCalls)
		}
		if len(output.Transactions) != 1 {
			t.Errorf("expected the recent transactions, got %d", len(output.Transactions))
		}
	})
}
