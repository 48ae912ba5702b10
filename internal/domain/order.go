package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ID          string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Position    int
}

type Order struct {
	ID          string
	OrderNumber string
	Status      OrderStatus
	TotalAmount decimal.Decimal
	Notes       string
	UserID      string
	ContactID   string
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (o *Order) Validate() error {
	if !o.Status.Valid() {
		return &ValidationError{Field: "status", Message: "is not a valid order status"}
	}
	if o.ContactID == "" {
		return &ValidationError{Field: "contact_id", Message: "is required"}
	}
	return nil
}
