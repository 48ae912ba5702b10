package domain

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ItemField names an editable line item field.
type ItemField string

const (
	FieldProductName ItemField = "product_name"
	FieldQuantity    ItemField = "quantity"
	FieldUnitPrice   ItemField = "unit_price"
)

var (
	ErrLastItem     = errors.New("cannot remove the last line item")
	ErrItemIndex    = errors.New("line item index out of range")
	ErrUnknownField = errors.New("unknown line item field")
)

// LineItem is one product row of an order or invoice composer. The numeric
// fields hold the raw input string; parsing happens at computation time so a
// half-typed value never interrupts editing.
type LineItem struct {
	ProductName  string
	RawQuantity  string
	RawUnitPrice string
}

// NewLineItem builds a line item from already-parsed values (API payloads).
func NewLineItem(productName string, quantity int64, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		ProductName:  productName,
		RawQuantity:  strconv.FormatInt(quantity, 10),
		RawUnitPrice: unitPrice.String(),
	}
}

// Quantity parses the raw quantity, 0 when missing or unparseable.
func (li LineItem) Quantity() int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(li.RawQuantity), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// UnitPrice parses the raw unit price, 0 when missing or unparseable.
func (li LineItem) UnitPrice() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(li.RawUnitPrice))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Subtotal is quantity x unit price with the coercion-to-zero policy applied.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice().Mul(decimal.NewFromInt(li.Quantity()))
}

func (li LineItem) validate() error {
	if strings.TrimSpace(li.ProductName) == "" {
		return &ValidationError{Field: string(FieldProductName), Message: "is required"}
	}
	if li.Quantity() <= 0 {
		return &ValidationError{Field: string(FieldQuantity), Message: "must be a positive integer"}
	}
	if li.UnitPrice().IsNegative() {
		return &ValidationError{Field: string(FieldUnitPrice), Message: "must not be negative"}
	}
	return nil
}

// Ledger is an ordered collection of line items. Values are immutable; every
// operation returns a new Ledger, so a caller always recomputes from the
// snapshot it holds.
type Ledger struct {
	items []LineItem
}

func NewLedger(items ...LineItem) Ledger {
	cp := make([]LineItem, len(items))
	copy(cp, items)
	return Ledger{items: cp}
}

func (l Ledger) Len() int { return len(l.items) }

// Items returns the display-ordered rows.
func (l Ledger) Items() []LineItem {
	cp := make([]LineItem, len(l.items))
	copy(cp, l.items)
	return cp
}

// Add appends item after strict validation. Unlike Update, a bad value here
// is rejected rather than coerced.
func (l Ledger) Add(item LineItem) (Ledger, error) {
	if err := item.validate(); err != nil {
		return l, err
	}
	next := make([]LineItem, len(l.items), len(l.items)+1)
	copy(next, l.items)
	return Ledger{items: append(next, item)}, nil
}

// Remove drops the row at index i. The composer always keeps at least one
// editable row, so removing the last remaining item is refused.
func (l Ledger) Remove(i int) (Ledger, error) {
	if i < 0 || i >= len(l.items) {
		return l, ErrItemIndex
	}
	if len(l.items) == 1 {
		return l, ErrLastItem
	}
	next := make([]LineItem, 0, len(l.items)-1)
	next = append(next, l.items[:i]...)
	next = append(next, l.items[i+1:]...)
	return Ledger{items: next}, nil
}

// Update stores raw input on the row at index i. Numeric fields keep the
// string as typed; an unparseable value simply totals as zero until fixed.
func (l Ledger) Update(i int, field ItemField, raw string) (Ledger, error) {
	if i < 0 || i >= len(l.items) {
		return l, ErrItemIndex
	}
	next := make([]LineItem, len(l.items))
	copy(next, l.items)
	switch field {
	case FieldProductName:
		next[i].ProductName = raw
	case FieldQuantity:
		next[i].RawQuantity = raw
	case FieldUnitPrice:
		next[i].RawUnitPrice = raw
	default:
		return l, ErrUnknownField
	}
	return Ledger{items: next}, nil
}

// Total sums quantity x unit price over all rows. Missing or unparseable
// numerics count as zero; an empty ledger totals zero. Addition is
// commutative, so row order never affects the result.
func (l Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range l.items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// ValidateForSubmit applies submission-time validation: editing tolerates
// blank numerics, submitting does not.
func (l Ledger) ValidateForSubmit() error {
	if len(l.items) == 0 {
		return &ValidationError{Field: "items", Message: "at least one line item is required"}
	}
	for _, li := range l.items {
		if strings.TrimSpace(li.ProductName) == "" {
			return &ValidationError{Field: string(FieldProductName), Message: "is required"}
		}
		if strings.TrimSpace(li.RawUnitPrice) == "" {
			return &ValidationError{Field: string(FieldUnitPrice), Message: "is required"}
		}
	}
	return nil
}

// PersistableItem is a line item stripped of editing state, ready for the
// persistence layer.
type PersistableItem struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// Payload resolves raw strings to numbers and drops UI-only state.
func (l Ledger) Payload() []PersistableItem {
	out := make([]PersistableItem, 0, len(l.items))
	for _, li := range l.items {
		out = append(out, PersistableItem{
			ProductName: strings.TrimSpace(li.ProductName),
			Quantity:    li.Quantity(),
			UnitPrice:   li.UnitPrice(),
		})
	}
	return out
}
