package usecase

import (
	"context"

	"github.com/coderanges/swiftcrm/internal/domain"
)

type InvoiceSummary struct {
	invoices InvoiceRepo
	receipts ReceiptRepo
	cache    SummaryCache
}

func NewInvoiceSummary(invoices InvoiceRepo, receipts ReceiptRepo, cache SummaryCache) *InvoiceSummary {
	return &InvoiceSummary{invoices: invoices, receipts: receipts, cache: cache}
}

// Execute loads an invoice with its receipts and resolved payment summary.
// The summary is served from cache when present; the cache only ever holds
// resolver output and is invalidated on every receipt mutation.
func (uc *InvoiceSummary) Execute(ctx context.Context, invoiceID, userID string) (*domain.Invoice, []*domain.Receipt, domain.PaymentSummary, error) {
	inv, err := uc.invoices.GetByID(ctx, invoiceID, userID)
	if err != nil {
		return nil, nil, domain.PaymentSummary{}, err
	}
	recs, err := uc.receipts.ListByInvoice(ctx, inv.ID)
	if err != nil {
		return nil, nil, domain.PaymentSummary{}, err
	}

	if s, ok, err := uc.cache.Get(ctx, inv.ID); err == nil && ok {
		return inv, recs, s, nil
	}

	summary := domain.ResolvePayment(inv.Amount, receiptAmounts(recs, ""))
	_ = uc.cache.Set(ctx, inv.ID, summary)
	return inv, recs, summary, nil
}
