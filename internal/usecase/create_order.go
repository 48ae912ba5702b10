package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/coderanges/swiftcrm/internal/domain"
)

// ItemInput is one submitted line item row.
type ItemInput struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

type CreateOrderInput struct {
	UserID         string
	ContactID      string
	Status         domain.OrderStatus // defaults to Pending
	Notes          string
	IdempotencyKey string
	Items          []ItemInput
}

type CreateOrder struct {
	orders   OrderRepo
	contacts ContactRepo
	idem     IdempotencyStore
}

func NewCreateOrder(orders OrderRepo, contacts ContactRepo, idem IdempotencyStore) *CreateOrder {
	return &CreateOrder{orders: orders, contacts: contacts, idem: idem}
}

// Execute validates the submitted items through the ledger and recomputes the
// order total server-side; a client-supplied total is never trusted.
func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if _, err := uc.contacts.GetByID(ctx, in.ContactID, in.UserID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidContact
		}
		return nil, err
	}

	if in.IdempotencyKey != "" {
		if id, ok, _ := uc.idem.Recall(ctx, in.UserID, in.IdempotencyKey); ok {
			return uc.orders.GetByID(ctx, id, in.UserID)
		}
		ok, err := uc.idem.TryLock(ctx, in.UserID, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDuplicate
		}
	}

	ledger, err := buildLedger(in.Items)
	if err != nil {
		return nil, err
	}
	if err := ledger.ValidateForSubmit(); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.OrderPending
	}

	order := &domain.Order{
		ID:          uuid.NewString(),
		OrderNumber: docNumber("ORD"),
		Status:      status,
		TotalAmount: ledger.Total(),
		Notes:       in.Notes,
		UserID:      in.UserID,
		ContactID:   in.ContactID,
		Items:       orderItems(ledger),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, in.UserID, in.IdempotencyKey, order.ID)
	}
	return order, nil
}

func buildLedger(items []ItemInput) (domain.Ledger, error) {
	l := domain.NewLedger()
	for _, it := range items {
		var err error
		l, err = l.Add(domain.NewLineItem(it.ProductName, it.Quantity, it.UnitPrice))
		if err != nil {
			return l, err
		}
	}
	return l, nil
}

func orderItems(l domain.Ledger) []domain.OrderItem {
	payload := l.Payload()
	out := make([]domain.OrderItem, 0, len(payload))
	for i, p := range payload {
		out = append(out, domain.OrderItem{
			ID:          uuid.NewString(),
			ProductName: p.ProductName,
			Quantity:    p.Quantity,
			UnitPrice:   p.UnitPrice,
			Position:    i,
		})
	}
	return out
}
