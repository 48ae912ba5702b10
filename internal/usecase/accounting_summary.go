package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coderanges/swiftcrm/internal/domain"
)

type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

type AccountingSummaryOutput struct {
	Period            string
	StartDate         time.Time
	EndDate           time.Time
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	NetProfit         decimal.Decimal
	IncomeByCategory  []CategoryAmount
	ExpenseByCategory []CategoryAmount
}

type AccountingSummary struct {
	entries EntryRepo
	now     func() time.Time
}

func NewAccountingSummary(entries EntryRepo) *AccountingSummary {
	return &AccountingSummary{entries: entries, now: time.Now}
}

// Execute aggregates income and expenses over a trailing window:
// week=7d, month=30d, quarter=90d, year=365d; anything else means month.
func (uc *AccountingSummary) Execute(ctx context.Context, userID, period string) (*AccountingSummaryOutput, error) {
	period, days := periodDays(period)
	end := uc.now().UTC()
	start := end.AddDate(0, 0, -days)

	income, err := uc.entries.ListByTypeAndRange(ctx, userID, domain.EntryIncome, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.entries.ListByTypeAndRange(ctx, userID, domain.EntryExpense, start, end)
	if err != nil {
		return nil, err
	}

	totalIncome, incomeByCat := sumByCategory(income)
	totalExpenses, expenseByCat := sumByCategory(expenses)

	return &AccountingSummaryOutput{
		Period:            period,
		StartDate:         start,
		EndDate:           end,
		TotalIncome:       totalIncome,
		TotalExpenses:     totalExpenses,
		NetProfit:         totalIncome.Sub(totalExpenses),
		IncomeByCategory:  incomeByCat,
		ExpenseByCategory: expenseByCat,
	}, nil
}

func periodDays(period string) (string, int) {
	switch period {
	case "week":
		return period, 7
	case "month":
		return period, 30
	case "quarter":
		return period, 90
	case "year":
		return period, 365
	}
	return "month", 30
}

func sumByCategory(entries []*domain.AccountingEntry) (decimal.Decimal, []CategoryAmount) {
	total := decimal.Zero
	byCat := map[string]decimal.Decimal{}
	for _, e := range entries {
		total = total.Add(e.Amount)
		byCat[e.Category] = byCat[e.Category].Add(e.Amount)
	}

	out := make([]CategoryAmount, 0, len(byCat))
	for cat, amount := range byCat {
		out = append(out, CategoryAmount{Category: cat, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return total, out
}
