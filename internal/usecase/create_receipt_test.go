package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderanges/swiftcrm/internal/domain"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func invoiceFixture(id, userID, amount string, status domain.InvoiceStatus) *domain.Invoice {
	return &domain.Invoice{
		ID:            id,
		InvoiceNumber: "INV-" + id,
		Amount:        money(amount),
		Status:        status,
		UserID:        userID,
	}
}

func TestCreateReceipt(t *testing.T) {
	testCases := []struct {
		name          string
		invoiceAmount string
		existing      []string // amounts already applied
		amount        string
		wantStatus    domain.InvoiceStatus
		wantPaid      string
		wantBalance   string
		wantEvent     bool
	}{
		{
			name:          "first_partial_payment",
			invoiceAmount: "100.00",
			amount:        "40.00",
			wantStatus:    domain.InvoicePartial,
			wantPaid:      "40.00",
			wantBalance:   "60.00",
			wantEvent:     true,
		},
		{
			name:          "second_payment_completes",
			invoiceAmount: "100.00",
			existing:      []string{"40.00", "40.00"},
			amount:        "20.00",
			wantStatus:    domain.InvoicePaid,
			wantPaid:      "100.00",
			wantBalance:   "0.00",
			wantEvent:     true,
		},
		{
			name:          "overpayment_is_paid_with_negative_balance",
			invoiceAmount: "100.00",
			amount:        "120.00",
			wantStatus:    domain.InvoicePaid,
			wantPaid:      "120.00",
			wantBalance:   "-20.00",
			wantEvent:     true,
		},
		{
			name:          "payment_keeping_partial_emits_no_event",
			invoiceAmount: "100.00",
			existing:      []string{"10.00"},
			amount:        "10.00",
			wantStatus:    domain.InvoicePartial,
			wantPaid:      "20.00",
			wantBalance:   "80.00",
			wantEvent:     false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// stored status mirrors the pre-existing receipts
			startStatus := domain.InvoiceUnpaid
			if len(tc.existing) > 0 {
				startStatus = domain.InvoicePartial
			}
			inv := invoiceFixture("inv-1", "user-1", tc.invoiceAmount, startStatus)
			invoices := newFakeInvoiceRepo(inv)
			receipts := newFakeReceiptRepo(invoices)
			for i, amt := range tc.existing {
				receipts.receipts[string(rune('a'+i))] = &domain.Receipt{
					ID: string(rune('a' + i)), Amount: money(amt),
					UserID: "user-1", InvoiceID: "inv-1",
				}
			}
			cache := newFakeSummaryCache()
			cache.entries["inv-1"] = domain.PaymentSummary{Status: startStatus}
			events := &fakeEventPublisher{}

			uc := NewCreateReceipt(receipts, invoices, cache, events)
			rec, summary, err := uc.Execute(context.Background(), CreateReceiptInput{
				UserID:        "user-1",
				InvoiceID:     "inv-1",
				Amount:        money(tc.amount),
				PaymentMethod: "Bank Transfer",
			})
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, summary.Status)
			assert.True(t, summary.AmountPaid.Equal(money(tc.wantPaid)))
			assert.True(t, summary.Balance.Equal(money(tc.wantBalance)))
			assert.Contains(t, rec.ReceiptNumber, "REC-")

			// invoice status written through
			assert.Equal(t, tc.wantStatus, invoices.invoices["inv-1"].Status)
			// stale summary evicted
			_, cached, _ := cache.Get(context.Background(), "inv-1")
			assert.False(t, cached)

			if tc.wantEvent {
				require.Len(t, events.events, 1)
				assert.Equal(t, tc.wantStatus, events.events[0].NewStatus)
			} else {
				assert.Empty(t, events.events)
			}
		})
	}
}

func TestCreateReceiptValidation(t *testing.T) {
	invoices := newFakeInvoiceRepo(invoiceFixture("inv-1", "user-1", "100.00", domain.InvoiceUnpaid))
	receipts := newFakeReceiptRepo(invoices)
	uc := NewCreateReceipt(receipts, invoices, newFakeSummaryCache(), &fakeEventPublisher{})

	t.Run("non_positive_amount", func(t *testing.T) {
		_, _, err := uc.Execute(context.Background(), CreateReceiptInput{
			UserID: "user-1", InvoiceID: "inv-1", Amount: money("0"), PaymentMethod: "Cash",
		})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "amount", ve.Field)
	})

	t.Run("unknown_invoice", func(t *testing.T) {
		_, _, err := uc.Execute(context.Background(), CreateReceiptInput{
			UserID: "user-1", InvoiceID: "nope", Amount: money("5.00"), PaymentMethod: "Cash",
		})
		assert.ErrorIs(t, err, ErrInvalidInvoice)
	})

	t.Run("other_users_invoice", func(t *testing.T) {
		_, _, err := uc.Execute(context.Background(), CreateReceiptInput{
			UserID: "user-2", InvoiceID: "inv-1", Amount: money("5.00"), PaymentMethod: "Cash",
		})
		assert.ErrorIs(t, err, ErrInvalidInvoice)
	})
}
