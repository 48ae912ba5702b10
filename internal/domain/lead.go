package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type LeadStatus string

const (
	LeadNew       LeadStatus = "New"
	LeadContacted LeadStatus = "Contacted"
	LeadQualified LeadStatus = "Qualified"
	LeadConverted LeadStatus = "Converted"
	LeadLost      LeadStatus = "Lost"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadQualified, LeadConverted, LeadLost:
		return true
	}
	return false
}

type Lead struct {
	ID        string
	Title     string
	Status    LeadStatus
	Value     decimal.NullDecimal
	Notes     string
	UserID    string
	ContactID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if !l.Status.Valid() {
		return &ValidationError{Field: "status", Message: "is not a valid lead status"}
	}
	if l.ContactID == "" {
		return &ValidationError{Field: "contact_id", Message: "is required"}
	}
	return nil
}
