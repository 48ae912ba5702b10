package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryIncome  EntryType = "Income"
	EntryExpense EntryType = "Expense"
)

func (t EntryType) Valid() bool {
	return t == EntryIncome || t == EntryExpense
}

// AccountingEntry is one row of the income/expense ledger.
type AccountingEntry struct {
	ID          string
	EntryType   EntryType
	Category    string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	UserID      string
	CreatedAt   time.Time
}

func (e *AccountingEntry) Validate() error {
	if !e.EntryType.Valid() {
		return &ValidationError{Field: "entry_type", Message: "must be Income or Expense"}
	}
	if strings.TrimSpace(e.Category) == "" {
		return &ValidationError{Field: "category", Message: "is required"}
	}
	if e.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Message: "must not be negative"}
	}
	return nil
}
