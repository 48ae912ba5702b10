package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coderanges/swiftcrm/internal/domain"
)

type UpdateInvoiceInput struct {
	UserID    string
	InvoiceID string
	Amount    *decimal.Decimal
	DueDate   *time.Time
	Notes     *string
	ContactID *string
	OrderID   *string // pointer to "" detaches the order
}

type UpdateInvoice struct {
	invoices InvoiceRepo
	contacts ContactRepo
	orders   OrderRepo
	receipts ReceiptRepo
	cache    SummaryCache
	events   EventPublisher
}

func NewUpdateInvoice(invoices InvoiceRepo, contacts ContactRepo, orders OrderRepo, receipts ReceiptRepo, cache SummaryCache, events EventPublisher) *UpdateInvoice {
	return &UpdateInvoice{invoices: invoices, contacts: contacts, orders: orders, receipts: receipts, cache: cache, events: events}
}

// Execute applies field changes and re-derives the payment status from the
// invoice's receipts; changing the amount can flip the status on its own.
func (uc *UpdateInvoice) Execute(ctx context.Context, in UpdateInvoiceInput) (*domain.Invoice, error) {
	inv, err := uc.invoices.GetByID(ctx, in.InvoiceID, in.UserID)
	if err != nil {
		return nil, err
	}
	oldStatus := inv.Status

	if in.Amount != nil {
		inv.Amount = *in.Amount
	}
	if in.DueDate != nil {
		inv.DueDate = *in.DueDate
	}
	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	if in.ContactID != nil {
		if _, err := uc.contacts.GetByID(ctx, *in.ContactID, in.UserID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrInvalidContact
			}
			return nil, err
		}
		inv.ContactID = *in.ContactID
	}
	if in.OrderID != nil {
		if *in.OrderID != "" {
			if _, err := uc.orders.GetByID(ctx, *in.OrderID, in.UserID); err != nil {
				if errors.Is(err, ErrNotFound) {
					return nil, ErrInvalidOrder
				}
				return nil, err
			}
		}
		inv.OrderID = *in.OrderID
	}

	recs, err := uc.receipts.ListByInvoice(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	summary := domain.ResolvePayment(inv.Amount, receiptAmounts(recs, ""))
	inv.Status = summary.Status

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if err := uc.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}

	_ = uc.cache.Invalidate(ctx, inv.ID)
	if summary.Status != oldStatus {
		notifyStatusChange(ctx, uc.events, inv, oldStatus, summary)
	}
	return inv, nil
}
