package usecase

import (
	"strings"

	"github.com/google/uuid"
)

// docNumber builds a human-facing document number like ORD-3FA85F64.
func docNumber(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(hex[:8])
}
