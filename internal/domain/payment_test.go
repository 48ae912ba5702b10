package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolvePayment(t *testing.T) {
	testCases := []struct {
		name       string
		total      string
		receipts   []string
		wantStatus InvoiceStatus
		wantPaid   string
		wantBal    string
	}{
		{
			name:       "no_receipts",
			total:      "100.00",
			receipts:   nil,
			wantStatus: InvoiceUnpaid,
			wantPaid:   "0",
			wantBal:    "100.00",
		},
		{
			name:       "partial",
			total:      "100.00",
			receipts:   []string{"40.00", "40.00"},
			wantStatus: InvoicePartial,
			wantPaid:   "80.00",
			wantBal:    "20.00",
		},
		{
			name:       "exact_payment",
			total:      "100.00",
			receipts:   []string{"100.00"},
			wantStatus: InvoicePaid,
			wantPaid:   "100.00",
			wantBal:    "0.00",
		},
		{
			name:       "overpayment_not_clamped",
			total:      "100.00",
			receipts:   []string{"120.00"},
			wantStatus: InvoicePaid,
			wantPaid:   "120.00",
			wantBal:    "-20.00",
		},
		{
			name:       "zero_total_zero_paid_is_unpaid",
			total:      "0",
			receipts:   nil,
			wantStatus: InvoiceUnpaid,
			wantPaid:   "0",
			wantBal:    "0",
		},
		{
			name:       "zero_total_with_payment_is_paid",
			total:      "0",
			receipts:   []string{"0.01"},
			wantStatus: InvoicePaid,
			wantPaid:   "0.01",
			wantBal:    "-0.01",
		},
		{
			name:       "receipts_netting_to_zero_is_unpaid",
			total:      "50.00",
			receipts:   []string{"25.00", "-25.00"},
			wantStatus: InvoiceUnpaid,
			wantPaid:   "0.00",
			wantBal:    "50.00",
		},
		{
			name:       "negative_total_resolves_by_same_rule",
			total:      "-10.00",
			receipts:   []string{"5.00"},
			wantStatus: InvoicePaid,
			wantPaid:   "5.00",
			wantBal:    "-15.00",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amounts := make([]decimal.Decimal, 0, len(tc.receipts))
			for _, r := range tc.receipts {
				amounts = append(amounts, money(r))
			}

			got := ResolvePayment(money(tc.total), amounts)

			assert.Equal(t, tc.wantStatus, got.Status)
			assert.True(t, got.AmountPaid.Equal(money(tc.wantPaid)),
				"amount paid: got %s, want %s", got.AmountPaid, tc.wantPaid)
			assert.True(t, got.Balance.Equal(money(tc.wantBal)),
				"balance: got %s, want %s", got.Balance, tc.wantBal)
		})
	}
}

// Deleting the only receipt on a paid invoice must flip it back to Unpaid
// when resolved against the reduced receipt set.
func TestResolvePaymentAfterReceiptRemoval(t *testing.T) {
	total := money("100.00")

	paid := ResolvePayment(total, []decimal.Decimal{money("100.00")})
	assert.Equal(t, InvoicePaid, paid.Status)

	after := ResolvePayment(total, nil)
	assert.Equal(t, InvoiceUnpaid, after.Status)
	assert.True(t, after.Balance.Equal(total))
}
