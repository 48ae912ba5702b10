package usecase

import (
	"context"

	"github.com/coderanges/swiftcrm/internal/domain"
)

type DeleteReceipt struct {
	receipts ReceiptRepo
	invoices InvoiceRepo
	cache    SummaryCache
	events   EventPublisher
}

func NewDeleteReceipt(receipts ReceiptRepo, invoices InvoiceRepo, cache SummaryCache, events EventPublisher) *DeleteReceipt {
	return &DeleteReceipt{receipts: receipts, invoices: invoices, cache: cache, events: events}
}

// Execute deletes a receipt and re-derives the invoice status from the
// reduced receipt set; removing the only receipt on a paid invoice flips it
// back to Unpaid.
func (uc *DeleteReceipt) Execute(ctx context.Context, receiptID, userID string) error {
	rec, err := uc.receipts.GetByID(ctx, receiptID, userID)
	if err != nil {
		return err
	}
	inv, err := uc.invoices.GetByID(ctx, rec.InvoiceID, userID)
	if err != nil {
		return err
	}
	recs, err := uc.receipts.ListByInvoice(ctx, inv.ID)
	if err != nil {
		return err
	}

	summary := domain.ResolvePayment(inv.Amount, receiptAmounts(recs, rec.ID))

	err = uc.receipts.Delete(ctx, rec.ID, userID, InvoiceStatusChange{InvoiceID: inv.ID, Status: summary.Status})
	if err != nil {
		return err
	}

	_ = uc.cache.Invalidate(ctx, inv.ID)
	if summary.Status != inv.Status {
		notifyStatusChange(ctx, uc.events, inv, inv.Status, summary)
	}
	return nil
}
