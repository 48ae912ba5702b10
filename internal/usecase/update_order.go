package usecase

import (
	"context"
	"errors"

	"github.com/coderanges/swiftcrm/internal/domain"
)

type UpdateOrderInput struct {
	UserID    string
	OrderID   string
	ContactID *string
	Status    *domain.OrderStatus
	Notes     *string
	Items     []ItemInput // nil leaves the item set untouched
}

type UpdateOrder struct {
	orders   OrderRepo
	contacts ContactRepo
}

func NewUpdateOrder(orders OrderRepo, contacts ContactRepo) *UpdateOrder {
	return &UpdateOrder{orders: orders, contacts: contacts}
}

func (uc *UpdateOrder) Execute(ctx context.Context, in UpdateOrderInput) (*domain.Order, error) {
	order, err := uc.orders.GetByID(ctx, in.OrderID, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.ContactID != nil {
		if _, err := uc.contacts.GetByID(ctx, *in.ContactID, in.UserID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrInvalidContact
			}
			return nil, err
		}
		order.ContactID = *in.ContactID
	}
	if in.Status != nil {
		order.Status = *in.Status
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}

	// Replacing items re-runs submit validation and recomputes the total
	// from the new set.
	if in.Items != nil {
		ledger, err := buildLedger(in.Items)
		if err != nil {
			return nil, err
		}
		if err := ledger.ValidateForSubmit(); err != nil {
			return nil, err
		}
		order.TotalAmount = ledger.Total()
		order.Items = orderItems(ledger)
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}
	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
