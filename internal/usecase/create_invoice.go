package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/coderanges/swiftcrm/internal/domain"
)

type CreateInvoiceInput struct {
	UserID         string
	ContactID      string
	OrderID        string // optional
	Amount         decimal.Decimal
	DueDate        time.Time
	Notes          string
	IdempotencyKey string
}

type CreateInvoice struct {
	invoices InvoiceRepo
	contacts ContactRepo
	orders   OrderRepo
	idem     IdempotencyStore
}

func NewCreateInvoice(invoices InvoiceRepo, contacts ContactRepo, orders OrderRepo, idem IdempotencyStore) *CreateInvoice {
	return &CreateInvoice{invoices: invoices, contacts: contacts, orders: orders, idem: idem}
}

// Execute creates an invoice with status Unpaid: a fresh invoice has no
// receipts, and status is derived from receipts, never taken from the
// caller.
func (uc *CreateInvoice) Execute(ctx context.Context, in CreateInvoiceInput) (*domain.Invoice, error) {
	if _, err := uc.contacts.GetByID(ctx, in.ContactID, in.UserID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidContact
		}
		return nil, err
	}
	if in.OrderID != "" {
		if _, err := uc.orders.GetByID(ctx, in.OrderID, in.UserID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrInvalidOrder
			}
			return nil, err
		}
	}

	if in.IdempotencyKey != "" {
		if id, ok, _ := uc.idem.Recall(ctx, in.UserID, in.IdempotencyKey); ok {
			return uc.invoices.GetByID(ctx, id, in.UserID)
		}
		ok, err := uc.idem.TryLock(ctx, in.UserID, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDuplicate
		}
	}

	inv := &domain.Invoice{
		ID:            uuid.NewString(),
		InvoiceNumber: docNumber("INV"),
		Amount:        in.Amount,
		Status:        domain.InvoiceUnpaid,
		DueDate:       in.DueDate,
		Notes:         in.Notes,
		UserID:        in.UserID,
		ContactID:     in.ContactID,
		OrderID:       in.OrderID,
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := uc.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, in.UserID, in.IdempotencyKey, inv.ID)
	}
	return inv, nil
}
