package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderanges/swiftcrm/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateReceiptAmount(t *testing.T) {
	inv := invoiceFixture("inv-1", "user-1", "100.00", domain.InvoicePartial)
	invoices := newFakeInvoiceRepo(inv)
	receipts := newFakeReceiptRepo(invoices, &domain.Receipt{
		ID: "r1", Amount: money("40.00"), PaymentMethod: "Cash",
		UserID: "user-1", InvoiceID: "inv-1",
	})
	cache := newFakeSummaryCache()
	events := &fakeEventPublisher{}
	uc := NewUpdateReceipt(receipts, invoices, cache, events)

	rec, err := uc.Execute(context.Background(), UpdateReceiptInput{
		UserID:    "user-1",
		ReceiptID: "r1",
		Amount:    ptr(money("100.00")),
	})
	require.NoError(t, err)

	assert.True(t, rec.Amount.Equal(money("100.00")))
	assert.Equal(t, domain.InvoicePaid, invoices.invoices["inv-1"].Status)
	assert.Contains(t, cache.invalidated, "inv-1")
	require.Len(t, events.events, 1)
	assert.Equal(t, domain.InvoicePartial, events.events[0].OldStatus)
	assert.Equal(t, domain.InvoicePaid, events.events[0].NewStatus)
}

func TestUpdateReceiptMoveBetweenInvoices(t *testing.T) {
	// r1 fully pays inv-1; moving it to inv-2 must flip inv-1 back to
	// Unpaid and make inv-2 Partial, both statuses derived from the
	// receipt sets after the move.
	inv1 := invoiceFixture("inv-1", "user-1", "50.00", domain.InvoicePaid)
	inv2 := invoiceFixture("inv-2", "user-1", "200.00", domain.InvoiceUnpaid)
	invoices := newFakeInvoiceRepo(inv1, inv2)
	receipts := newFakeReceiptRepo(invoices, &domain.Receipt{
		ID: "r1", Amount: money("50.00"), PaymentMethod: "Cash",
		UserID: "user-1", InvoiceID: "inv-1",
	})
	cache := newFakeSummaryCache()
	events := &fakeEventPublisher{}
	uc := NewUpdateReceipt(receipts, invoices, cache, events)

	rec, err := uc.Execute(context.Background(), UpdateReceiptInput{
		UserID:    "user-1",
		ReceiptID: "r1",
		InvoiceID: ptr("inv-2"),
	})
	require.NoError(t, err)

	assert.Equal(t, "inv-2", rec.InvoiceID)
	assert.Equal(t, domain.InvoiceUnpaid, invoices.invoices["inv-1"].Status)
	assert.Equal(t, domain.InvoicePartial, invoices.invoices["inv-2"].Status)
	assert.ElementsMatch(t, []string{"inv-1", "inv-2"}, cache.invalidated)
	require.Len(t, events.events, 2)
}

func TestUpdateReceiptMoveToInvalidInvoice(t *testing.T) {
	inv := invoiceFixture("inv-1", "user-1", "50.00", domain.InvoicePaid)
	other := invoiceFixture("inv-9", "user-2", "50.00", domain.InvoiceUnpaid)
	invoices := newFakeInvoiceRepo(inv, other)
	receipts := newFakeReceiptRepo(invoices, &domain.Receipt{
		ID: "r1", Amount: money("50.00"), PaymentMethod: "Cash",
		UserID: "user-1", InvoiceID: "inv-1",
	})
	uc := NewUpdateReceipt(receipts, invoices, newFakeSummaryCache(), &fakeEventPublisher{})

	_, err := uc.Execute(context.Background(), UpdateReceiptInput{
		UserID:    "user-1",
		ReceiptID: "r1",
		InvoiceID: ptr("inv-9"), // belongs to another user
	})
	assert.ErrorIs(t, err, ErrInvalidInvoice)
}

func TestUpdateReceiptRejectsNonPositiveAmount(t *testing.T) {
	inv := invoiceFixture("inv-1", "user-1", "50.00", domain.InvoicePartial)
	invoices := newFakeInvoiceRepo(inv)
	receipts := newFakeReceiptRepo(invoices, &domain.Receipt{
		ID: "r1", Amount: money("10.00"), PaymentMethod: "Cash",
		UserID: "user-1", InvoiceID: "inv-1",
	})
	uc := NewUpdateReceipt(receipts, invoices, newFakeSummaryCache(), &fakeEventPublisher{})

	_, err := uc.Execute(context.Background(), UpdateReceiptInput{
		UserID:    "user-1",
		ReceiptID: "r1",
		Amount:    ptr(money("-5.00")),
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "amount", ve.Field)
}
