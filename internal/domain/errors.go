package domain

import "fmt"

// ValidationError carries a field-level message for the composer to surface.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}
