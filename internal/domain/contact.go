package domain

import (
	"strings"
	"time"
)

type Contact struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Company   string
	Address   string
	Notes     string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	return nil
}
