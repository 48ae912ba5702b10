package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/coderanges/swiftcrm/internal/domain"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicate      = errors.New("duplicate idempotency key")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidContact = errors.New("invalid contact")
	ErrInvalidOrder   = errors.New("invalid order")
	ErrInvalidInvoice = errors.New("invalid invoice")
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type ContactRepo interface {
	Create(ctx context.Context, c *domain.Contact) error
	GetByID(ctx context.Context, id, userID string) (*domain.Contact, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, id, userID string) error
}

type LeadRepo interface {
	Create(ctx context.Context, l *domain.Lead) error
	GetByID(ctx context.Context, id, userID string) (*domain.Lead, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Lead, error)
	Update(ctx context.Context, l *domain.Lead) error
	Delete(ctx context.Context, id, userID string) error
}

type OrderRepo interface {
	// Create inserts the order and its items in one transaction.
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id, userID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	// Update rewrites the order row and replaces its item set.
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id, userID string) error
}

type InvoiceRepo interface {
	Create(ctx context.Context, i *domain.Invoice) error
	GetByID(ctx context.Context, id, userID string) (*domain.Invoice, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Invoice, error)
	Update(ctx context.Context, i *domain.Invoice) error
	Delete(ctx context.Context, id, userID string) error
}

// InvoiceStatusChange is a status write-through applied alongside a receipt
// mutation, in the same transaction.
type InvoiceStatusChange struct {
	InvoiceID string
	Status    domain.InvoiceStatus
}

type ReceiptRepo interface {
	// Create inserts the receipt and writes the owning invoice's derived
	// status atomically.
	Create(ctx context.Context, r *domain.Receipt, invoiceStatus domain.InvoiceStatus) error
	GetByID(ctx context.Context, id, userID string) (*domain.Receipt, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Receipt, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]*domain.Receipt, error)
	// Update rewrites the receipt and applies the given status changes
	// (one invoice, or two when the receipt moved) atomically.
	Update(ctx context.Context, r *domain.Receipt, changes []InvoiceStatusChange) error
	// Delete removes the receipt and writes the invoice's recomputed status
	// atomically.
	Delete(ctx context.Context, id, userID string, change InvoiceStatusChange) error
}

type EntryRepo interface {
	Create(ctx context.Context, e *domain.AccountingEntry) error
	GetByID(ctx context.Context, id, userID string) (*domain.AccountingEntry, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.AccountingEntry, error)
	ListByTypeAndRange(ctx context.Context, userID string, t domain.EntryType, from, to time.Time) ([]*domain.AccountingEntry, error)
	Update(ctx context.Context, e *domain.AccountingEntry) error
	Delete(ctx context.Context, id, userID string) error
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// SummaryCache holds resolved payment summaries keyed by invoice id. Entries
// are invalidated on every receipt mutation so a read never sees a stale
// status.
type SummaryCache interface {
	Get(ctx context.Context, invoiceID string) (domain.PaymentSummary, bool, error)
	Set(ctx context.Context, invoiceID string, s domain.PaymentSummary) error
	Invalidate(ctx context.Context, invoiceIDs ...string) error
}

type EventPublisher interface {
	InvoiceStatusChanged(ctx context.Context, evt InvoiceStatusEvent) error
}
