package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/logging"
)

type CreateReceiptInput struct {
	UserID        string
	InvoiceID     string
	Amount        decimal.Decimal
	PaymentMethod string
	Notes         string
}

type CreateReceipt struct {
	receipts ReceiptRepo
	invoices InvoiceRepo
	cache    SummaryCache
	events   EventPublisher
}

func NewCreateReceipt(receipts ReceiptRepo, invoices InvoiceRepo, cache SummaryCache, events EventPublisher) *CreateReceipt {
	return &CreateReceipt{receipts: receipts, invoices: invoices, cache: cache, events: events}
}

// Execute records a payment and writes the invoice's re-derived status in the
// same transaction as the receipt insert. Overpayment is accepted; the
// resolver reports it as Paid with a negative balance.
func (uc *CreateReceipt) Execute(ctx context.Context, in CreateReceiptInput) (*domain.Receipt, domain.PaymentSummary, error) {
	rec := &domain.Receipt{
		ID:            uuid.NewString(),
		ReceiptNumber: docNumber("REC"),
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
		UserID:        in.UserID,
		InvoiceID:     in.InvoiceID,
	}
	if err := rec.Validate(); err != nil {
		return nil, domain.PaymentSummary{}, err
	}

	inv, err := uc.invoices.GetByID(ctx, in.InvoiceID, in.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, domain.PaymentSummary{}, ErrInvalidInvoice
		}
		return nil, domain.PaymentSummary{}, err
	}

	existing, err := uc.receipts.ListByInvoice(ctx, inv.ID)
	if err != nil {
		return nil, domain.PaymentSummary{}, err
	}
	amounts := append(receiptAmounts(existing, ""), in.Amount)
	summary := domain.ResolvePayment(inv.Amount, amounts)

	if err := uc.receipts.Create(ctx, rec, summary.Status); err != nil {
		return nil, domain.PaymentSummary{}, err
	}

	_ = uc.cache.Invalidate(ctx, inv.ID)
	if summary.Status != inv.Status {
		notifyStatusChange(ctx, uc.events, inv, inv.Status, summary)
	}
	return rec, summary, nil
}

// receiptAmounts collects amounts, skipping the receipt with the given id
// (used when recomputing around an edit or delete).
func receiptAmounts(recs []*domain.Receipt, excludeID string) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(recs))
	for _, r := range recs {
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		out = append(out, r.Amount)
	}
	return out
}

// notifyStatusChange publishes best-effort; a broker hiccup must not fail the
// write that already committed.
func notifyStatusChange(ctx context.Context, events EventPublisher, inv *domain.Invoice, old domain.InvoiceStatus, s domain.PaymentSummary) {
	evt := InvoiceStatusEvent{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		UserID:        inv.UserID,
		OldStatus:     old,
		NewStatus:     s.Status,
		AmountPaid:    s.AmountPaid,
		Balance:       s.Balance,
		OccurredAt:    time.Now().UTC(),
	}
	if err := events.InvoiceStatusChanged(ctx, evt); err != nil {
		logging.FromCtx(ctx).Error("publish invoice status change",
			"invoice_id", inv.ID, "error", err)
	}
}
