package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/coderanges/swiftcrm/internal/domain"
)

// InvoiceStatusEvent is published whenever a receipt mutation flips an
// invoice's derived payment status.
type InvoiceStatusEvent struct {
	InvoiceID     string               `json:"invoiceId"`
	InvoiceNumber string               `json:"invoiceNumber"`
	UserID        string               `json:"userId"`
	OldStatus     domain.InvoiceStatus `json:"oldStatus"`
	NewStatus     domain.InvoiceStatus `json:"newStatus"`
	AmountPaid    decimal.Decimal      `json:"amountPaid"`
	Balance       decimal.Decimal      `json:"balance"`
	OccurredAt    time.Time            `json:"occurredAt"`
}
