package domain

import "github.com/shopspring/decimal"

// PaymentSummary is the derived payment state of one invoice.
type PaymentSummary struct {
	Status     InvoiceStatus
	AmountPaid decimal.Decimal
	Balance    decimal.Decimal
}

// ResolvePayment derives an invoice's payment status and balance from the
// receipts applied against it. It is total over its inputs: negative totals
// or amounts resolve by the same rule, never an error. The balance is left
// unclamped so an overpayment shows as a negative remainder.
//
// Status precedence: paid <= 0 is Unpaid, paid >= total is Paid, anything
// in between is Partial. A zero-total invoice with no receipts is Unpaid by
// rule order.
func ResolvePayment(invoiceTotal decimal.Decimal, receipts []decimal.Decimal) PaymentSummary {
	paid := decimal.Zero
	for _, r := range receipts {
		paid = paid.Add(r)
	}

	var status InvoiceStatus
	switch {
	case paid.Sign() <= 0:
		status = InvoiceUnpaid
	case paid.Cmp(invoiceTotal) >= 0:
		status = InvoicePaid
	default:
		status = InvoicePartial
	}

	return PaymentSummary{
		Status:     status,
		AmountPaid: paid,
		Balance:    invoiceTotal.Sub(paid),
	}
}
