package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Receipt struct {
	ID            string
	ReceiptNumber string
	Amount        decimal.Decimal
	PaymentMethod string
	Notes         string
	UserID        string
	InvoiceID     string
	CreatedAt     time.Time
}

// Validate enforces the entry-boundary range check; the payment resolver
// itself stays total over negative inputs.
func (r *Receipt) Validate() error {
	if r.Amount.Sign() <= 0 {
		return &ValidationError{Field: "amount", Message: "must be positive"}
	}
	if strings.TrimSpace(r.PaymentMethod) == "" {
		return &ValidationError{Field: "payment_method", Message: "is required"}
	}
	if r.InvoiceID == "" {
		return &ValidationError{Field: "invoice_id", Message: "is required"}
	}
	return nil
}
