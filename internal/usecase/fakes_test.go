package usecase

import (
	"context"
	"time"

	"github.com/coderanges/swiftcrm/internal/domain"
)

// In-memory fakes for the ports exercised by the flow tests.

type fakeContactRepo struct {
	contacts map[string]*domain.Contact
}

func newFakeContactRepo(cs ...*domain.Contact) *fakeContactRepo {
	r := &fakeContactRepo{contacts: map[string]*domain.Contact{}}
	for _, c := range cs {
		r.contacts[c.ID] = c
	}
	return r
}

func (r *fakeContactRepo) Create(_ context.Context, c *domain.Contact) error {
	r.contacts[c.ID] = c
	return nil
}

func (r *fakeContactRepo) GetByID(_ context.Context, id, userID string) (*domain.Contact, error) {
	c, ok := r.contacts[id]
	if !ok || c.UserID != userID {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *fakeContactRepo) ListByUser(_ context.Context, userID string) ([]*domain.Contact, error) {
	var out []*domain.Contact
	for _, c := range r.contacts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeContactRepo) Update(_ context.Context, c *domain.Contact) error {
	r.contacts[c.ID] = c
	return nil
}

func (r *fakeContactRepo) Delete(_ context.Context, id, _ string) error {
	delete(r.contacts, id)
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*domain.Order{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id, userID string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok || o.UserID != userID {
		return nil, ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *domain.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id, _ string) error {
	delete(r.orders, id)
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*domain.Invoice
}

func newFakeInvoiceRepo(invs ...*domain.Invoice) *fakeInvoiceRepo {
	r := &fakeInvoiceRepo{invoices: map[string]*domain.Invoice{}}
	for _, i := range invs {
		r.invoices[i.ID] = i
	}
	return r
}

func (r *fakeInvoiceRepo) Create(_ context.Context, i *domain.Invoice) error {
	r.invoices[i.ID] = i
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id, userID string) (*domain.Invoice, error) {
	i, ok := r.invoices[id]
	if !ok || i.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *i
	return &cp, nil
}

func (r *fakeInvoiceRepo) ListByUser(_ context.Context, userID string) ([]*domain.Invoice, error) {
	var out []*domain.Invoice
	for _, i := range r.invoices {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, i *domain.Invoice) error {
	cp := *i
	r.invoices[i.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id, _ string) error {
	delete(r.invoices, id)
	return nil
}

type fakeReceiptRepo struct {
	receipts map[string]*domain.Receipt
	invoices *fakeInvoiceRepo // status write-throughs land here
}

func newFakeReceiptRepo(invoices *fakeInvoiceRepo, recs ...*domain.Receipt) *fakeReceiptRepo {
	r := &fakeReceiptRepo{receipts: map[string]*domain.Receipt{}, invoices: invoices}
	for _, rec := range recs {
		r.receipts[rec.ID] = rec
	}
	return r
}

func (r *fakeReceiptRepo) applyChanges(changes []InvoiceStatusChange) {
	for _, ch := range changes {
		if inv, ok := r.invoices.invoices[ch.InvoiceID]; ok {
			inv.Status = ch.Status
		}
	}
}

func (r *fakeReceiptRepo) Create(_ context.Context, rec *domain.Receipt, status domain.InvoiceStatus) error {
	r.receipts[rec.ID] = rec
	r.applyChanges([]InvoiceStatusChange{{InvoiceID: rec.InvoiceID, Status: status}})
	return nil
}

func (r *fakeReceiptRepo) GetByID(_ context.Context, id, userID string) (*domain.Receipt, error) {
	rec, ok := r.receipts[id]
	if !ok || rec.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeReceiptRepo) ListByUser(_ context.Context, userID string) ([]*domain.Receipt, error) {
	var out []*domain.Receipt
	for _, rec := range r.receipts {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeReceiptRepo) ListByInvoice(_ context.Context, invoiceID string) ([]*domain.Receipt, error) {
	var out []*domain.Receipt
	for _, rec := range r.receipts {
		if rec.InvoiceID == invoiceID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeReceiptRepo) Update(_ context.Context, rec *domain.Receipt, changes []InvoiceStatusChange) error {
	cp := *rec
	r.receipts[rec.ID] = &cp
	r.applyChanges(changes)
	return nil
}

func (r *fakeReceiptRepo) Delete(_ context.Context, id, _ string, change InvoiceStatusChange) error {
	delete(r.receipts, id)
	r.applyChanges([]InvoiceStatusChange{change})
	return nil
}

type fakeSummaryCache struct {
	entries     map[string]domain.PaymentSummary
	invalidated []string
}

func newFakeSummaryCache() *fakeSummaryCache {
	return &fakeSummaryCache{entries: map[string]domain.PaymentSummary{}}
}

func (c *fakeSummaryCache) Get(_ context.Context, invoiceID string) (domain.PaymentSummary, bool, error) {
	s, ok := c.entries[invoiceID]
	return s, ok, nil
}

func (c *fakeSummaryCache) Set(_ context.Context, invoiceID string, s domain.PaymentSummary) error {
	c.entries[invoiceID] = s
	return nil
}

func (c *fakeSummaryCache) Invalidate(_ context.Context, invoiceIDs ...string) error {
	for _, id := range invoiceIDs {
		delete(c.entries, id)
		c.invalidated = append(c.invalidated, id)
	}
	return nil
}

type fakeEventPublisher struct {
	events []InvoiceStatusEvent
}

func (p *fakeEventPublisher) InvoiceStatusChanged(_ context.Context, evt InvoiceStatusEvent) error {
	p.events = append(p.events, evt)
	return nil
}

type fakeIdemStore struct {
	locked map[string]bool
	values map[string]string
}

func newFakeIdemStore() *fakeIdemStore {
	return &fakeIdemStore{locked: map[string]bool{}, values: map[string]string{}}
}

func (s *fakeIdemStore) key(scope, key string) string { return scope + ":" + key }

func (s *fakeIdemStore) TryLock(_ context.Context, scope, key string) (bool, error) {
	k := s.key(scope, key)
	if s.locked[k] {
		return false, nil
	}
	s.locked[k] = true
	return true, nil
}

func (s *fakeIdemStore) Remember(_ context.Context, scope, key, value string) error {
	s.values[s.key(scope, key)] = value
	return nil
}

func (s *fakeIdemStore) Recall(_ context.Context, scope, key string) (string, bool, error) {
	v, ok := s.values[s.key(scope, key)]
	return v, ok, nil
}

type fakeEntryRepo struct {
	entries map[string]*domain.AccountingEntry
}

func newFakeEntryRepo(es ...*domain.AccountingEntry) *fakeEntryRepo {
	r := &fakeEntryRepo{entries: map[string]*domain.AccountingEntry{}}
	for _, e := range es {
		r.entries[e.ID] = e
	}
	return r
}

func (r *fakeEntryRepo) Create(_ context.Context, e *domain.AccountingEntry) error {
	r.entries[e.ID] = e
	return nil
}

func (r *fakeEntryRepo) GetByID(_ context.Context, id, userID string) (*domain.AccountingEntry, error) {
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return nil, ErrNotFound
	}
	return e, nil
}

func (r *fakeEntryRepo) ListByUser(_ context.Context, userID string) ([]*domain.AccountingEntry, error) {
	var out []*domain.AccountingEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) ListByTypeAndRange(_ context.Context, userID string, t domain.EntryType, from, to time.Time) ([]*domain.AccountingEntry, error) {
	var out []*domain.AccountingEntry
	for _, e := range r.entries {
		if e.UserID == userID && e.EntryType == t && !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) Update(_ context.Context, e *domain.AccountingEntry) error {
	r.entries[e.ID] = e
	return nil
}

func (r *fakeEntryRepo) Delete(_ context.Context, id, _ string) error {
	delete(r.entries, id)
	return nil
}
