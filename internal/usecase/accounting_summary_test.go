package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderanges/swiftcrm/internal/domain"
)

func entryFixture(id string, t domain.EntryType, category, amount string, daysAgo int, now time.Time) *domain.AccountingEntry {
	return &domain.AccountingEntry{
		ID:        id,
		EntryType: t,
		Category:  category,
		Amount:    money(amount),
		Date:      now.AddDate(0, 0, -daysAgo),
		UserID:    "user-1",
	}
}

func TestAccountingSummary(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entries := newFakeEntryRepo(
		entryFixture("e1", domain.EntryIncome, "Sales", "500.00", 5, now),
		entryFixture("e2", domain.EntryIncome, "Consulting", "200.00", 10, now),
		entryFixture("e3", domain.EntryIncome, "Sales", "100.00", 20, now),
		entryFixture("e4", domain.EntryExpense, "Rent", "300.00", 3, now),
		entryFixture("e5", domain.EntryExpense, "Software", "50.00", 29, now),
		// outside the 30-day month window
		entryFixture("e6", domain.EntryIncome, "Sales", "999.00", 45, now),
	)

	uc := NewAccountingSummary(entries)
	uc.now = func() time.Time { return now }

	out, err := uc.Execute(context.Background(), "user-1", "month")
	require.NoError(t, err)

	assert.Equal(t, "month", out.Period)
	assert.True(t, out.TotalIncome.Equal(money("800.00")), "income %s", out.TotalIncome)
	assert.True(t, out.TotalExpenses.Equal(money("350.00")))
	assert.True(t, out.NetProfit.Equal(money("450.00")))

	require.Len(t, out.IncomeByCategory, 2)
	assert.Equal(t, "Consulting", out.IncomeByCategory[0].Category)
	assert.True(t, out.IncomeByCategory[0].Amount.Equal(money("200.00")))
	assert.Equal(t, "Sales", out.IncomeByCategory[1].Category)
	assert.True(t, out.IncomeByCategory[1].Amount.Equal(money("600.00")))

	require.Len(t, out.ExpenseByCategory, 2)
	assert.Equal(t, "Rent", out.ExpenseByCategory[0].Category)
	assert.Equal(t, "Software", out.ExpenseByCategory[1].Category)
}

func TestAccountingSummaryPeriods(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entries := newFakeEntryRepo(
		entryFixture("e1", domain.EntryIncome, "Sales", "10.00", 5, now),
		entryFixture("e2", domain.EntryIncome, "Sales", "20.00", 40, now),
		entryFixture("e3", domain.EntryIncome, "Sales", "40.00", 200, now),
	)
	uc := NewAccountingSummary(entries)
	uc.now = func() time.Time { return now }

	testCases := []struct {
		period     string
		wantPeriod string
		wantTotal  string
	}{
		{period: "week", wantPeriod: "week", wantTotal: "10.00"},
		{period: "month", wantPeriod: "month", wantTotal: "10.00"},
		{period: "quarter", wantPeriod: "quarter", wantTotal: "30.00"},
		{period: "year", wantPeriod: "year", wantTotal: "70.00"},
		{period: "bogus", wantPeriod: "month", wantTotal: "10.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.period, func(t *testing.T) {
			out, err := uc.Execute(context.Background(), "user-1", tc.period)
			require.NoError(t, err)
			assert.Equal(t, tc.wantPeriod, out.Period)
			assert.True(t, out.TotalIncome.Equal(money(tc.wantTotal)),
				"got %s, want %s", out.TotalIncome, tc.wantTotal)
		})
	}
}

func TestUpdateInvoiceAmountRederivesStatus(t *testing.T) {
	inv := invoiceFixture("inv-1", "user-1", "100.00", domain.InvoicePartial)
	inv.DueDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	inv.ContactID = "c1"
	invoices := newFakeInvoiceRepo(inv)
	receipts := newFakeReceiptRepo(invoices, &domain.Receipt{
		ID: "r1", Amount: money("80.00"), UserID: "user-1", InvoiceID: "inv-1",
	})
	contacts := newFakeContactRepo(contactFixture("c1", "user-1"))
	cache := newFakeSummaryCache()
	events := &fakeEventPublisher{}

	uc := NewUpdateInvoice(invoices, contacts, newFakeOrderRepo(), receipts, cache, events)

	// lowering the amount below what is already paid flips the invoice to
	// Paid without any receipt change
	updated, err := uc.Execute(context.Background(), UpdateInvoiceInput{
		UserID:    "user-1",
		InvoiceID: "inv-1",
		Amount:    ptr(money("75.00")),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.InvoicePaid, updated.Status)
	assert.Equal(t, domain.InvoicePaid, invoices.invoices["inv-1"].Status)
	assert.Contains(t, cache.invalidated, "inv-1")
	require.Len(t, events.events, 1)
	assert.Equal(t, domain.InvoicePartial, events.events[0].OldStatus)
}
