package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/coderanges/swiftcrm/internal/domain"
)

type UpdateReceiptInput struct {
	UserID        string
	ReceiptID     string
	Amount        *decimal.Decimal
	PaymentMethod *string
	Notes         *string
	InvoiceID     *string // re-points the receipt at a different invoice
}

type UpdateReceipt struct {
	receipts ReceiptRepo
	invoices InvoiceRepo
	cache    SummaryCache
	events   EventPublisher
}

func NewUpdateReceipt(receipts ReceiptRepo, invoices InvoiceRepo, cache SummaryCache, events EventPublisher) *UpdateReceipt {
	return &UpdateReceipt{receipts: receipts, invoices: invoices, cache: cache, events: events}
}

// Execute edits a receipt and re-derives status for every invoice touched:
// just the owning one for an amount edit, both the old and the new one when
// the receipt is re-pointed.
func (uc *UpdateReceipt) Execute(ctx context.Context, in UpdateReceiptInput) (*domain.Receipt, error) {
	rec, err := uc.receipts.GetByID(ctx, in.ReceiptID, in.UserID)
	if err != nil {
		return nil, err
	}
	oldInvoiceID := rec.InvoiceID

	if in.Amount != nil {
		rec.Amount = *in.Amount
	}
	if in.PaymentMethod != nil {
		rec.PaymentMethod = *in.PaymentMethod
	}
	if in.Notes != nil {
		rec.Notes = *in.Notes
	}
	moved := in.InvoiceID != nil && *in.InvoiceID != oldInvoiceID
	if moved {
		rec.InvoiceID = *in.InvoiceID
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if !moved {
		inv, err := uc.invoices.GetByID(ctx, oldInvoiceID, in.UserID)
		if err != nil {
			return nil, err
		}
		recs, err := uc.receipts.ListByInvoice(ctx, inv.ID)
		if err != nil {
			return nil, err
		}
		amounts := append(receiptAmounts(recs, rec.ID), rec.Amount)
		summary := domain.ResolvePayment(inv.Amount, amounts)

		err = uc.receipts.Update(ctx, rec, []InvoiceStatusChange{{InvoiceID: inv.ID, Status: summary.Status}})
		if err != nil {
			return nil, err
		}
		_ = uc.cache.Invalidate(ctx, inv.ID)
		if summary.Status != inv.Status {
			notifyStatusChange(ctx, uc.events, inv, inv.Status, summary)
		}
		return rec, nil
	}

	newInv, err := uc.invoices.GetByID(ctx, rec.InvoiceID, in.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidInvoice
		}
		return nil, err
	}
	oldInv, err := uc.invoices.GetByID(ctx, oldInvoiceID, in.UserID)
	if err != nil {
		return nil, err
	}

	oldRecs, err := uc.receipts.ListByInvoice(ctx, oldInv.ID)
	if err != nil {
		return nil, err
	}
	newRecs, err := uc.receipts.ListByInvoice(ctx, newInv.ID)
	if err != nil {
		return nil, err
	}

	oldSummary := domain.ResolvePayment(oldInv.Amount, receiptAmounts(oldRecs, rec.ID))
	newSummary := domain.ResolvePayment(newInv.Amount, append(receiptAmounts(newRecs, rec.ID), rec.Amount))

	err = uc.receipts.Update(ctx, rec, []InvoiceStatusChange{
		{InvoiceID: oldInv.ID, Status: oldSummary.Status},
		{InvoiceID: newInv.ID, Status: newSummary.Status},
	})
	if err != nil {
		return nil, err
	}

	_ = uc.cache.Invalidate(ctx, oldInv.ID, newInv.ID)
	if oldSummary.Status != oldInv.Status {
		notifyStatusChange(ctx, uc.events, oldInv, oldInv.Status, oldSummary)
	}
	if newSummary.Status != newInv.Status {
		notifyStatusChange(ctx, uc.events, newInv, newInv.Status, newSummary)
	}
	return rec, nil
}
