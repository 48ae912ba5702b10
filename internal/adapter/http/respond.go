package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/logging"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

// writeErr maps domain and usecase errors onto the API's error envelope.
// Anything unrecognized is a 500 with the detail kept out of the response.
func writeErr(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "field": ve.Field, "message": ve.Message})
		return
	}

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	case errors.Is(err, usecase.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate_request"})
	case errors.Is(err, usecase.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "email_taken"})
	case errors.Is(err, usecase.ErrInvalidContact):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_contact"})
	case errors.Is(err, usecase.ErrInvalidOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_order"})
	case errors.Is(err, usecase.ErrInvalidInvoice):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_invoice"})
	case errors.Is(err, domain.ErrLastItem),
		errors.Is(err, domain.ErrItemIndex),
		errors.Is(err, domain.ErrUnknownField):
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
	default:
		logging.From(c).Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
}

const (
	readTimeout  = 2 * time.Second
	writeTimeout = 3 * time.Second
)

// parseDate accepts a bare date or a full RFC3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
