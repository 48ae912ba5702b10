package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "Unpaid"
	InvoicePartial InvoiceStatus = "Partial"
	InvoicePaid    InvoiceStatus = "Paid"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceUnpaid, InvoicePartial, InvoicePaid:
		return true
	}
	return false
}

// Invoice's Status column is a write-through of ResolvePayment output; the
// receipt list is the source of truth.
type Invoice struct {
	ID            string
	InvoiceNumber string
	Amount        decimal.Decimal
	Status        InvoiceStatus
	DueDate       time.Time
	Notes         string
	UserID        string
	ContactID     string
	OrderID       string // empty when not tied to an order
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (i *Invoice) Validate() error {
	if i.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Message: "must not be negative"}
	}
	if i.DueDate.IsZero() {
		return &ValidationError{Field: "due_date", Message: "is required"}
	}
	if i.ContactID == "" {
		return &ValidationError{Field: "contact_id", Message: "is required"}
	}
	return nil
}
