package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/coderanges/swiftcrm/internal/adapter/http/middleware"
	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

type LeadHandler struct {
	leads    usecase.LeadRepo
	contacts usecase.ContactRepo
}

func NewLeadHandler(leads usecase.LeadRepo, contacts usecase.ContactRepo) *LeadHandler {
	return &LeadHandler{leads: leads, contacts: contacts}
}

type leadReq struct {
	Title     string           `json:"title" binding:"required"`
	Status    string           `json:"status"`
	Value     *decimal.Decimal `json:"value"`
	Notes     string           `json:"notes"`
	ContactID string           `json:"contact_id" binding:"required"`
}

type leadResp struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Status    string           `json:"status"`
	Value     *decimal.Decimal `json:"value"`
	Notes     string           `json:"notes"`
	ContactID string           `json:"contact_id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func leadToResp(l *domain.Lead) leadResp {
	resp := leadResp{
		ID:        l.ID,
		Title:     l.Title,
		Status:    string(l.Status),
		Notes:     l.Notes,
		ContactID: l.ContactID,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if l.Value.Valid {
		v := l.Value.Decimal
		resp.Value = &v
	}
	return resp
}

func (h *LeadHandler) ensureContact(ctx context.Context, contactID, userID string) error {
	if _, err := h.contacts.GetByID(ctx, contactID, userID); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			return usecase.ErrInvalidContact
		}
		return err
	}
	return nil
}

func (h *LeadHandler) Create(c *gin.Context) {
	var req leadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	status := domain.LeadStatus(req.Status)
	if req.Status == "" {
		status = domain.LeadNew
	}

	l := &domain.Lead{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Status:    status,
		Notes:     req.Notes,
		UserID:    middleware.UserID(c),
		ContactID: req.ContactID,
	}
	if req.Value != nil {
		l.Value = decimal.NewNullDecimal(*req.Value)
	}
	if err := l.Validate(); err != nil {
		writeErr(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	if err := h.ensureContact(ctx, l.ContactID, l.UserID); err != nil {
		writeErr(c, err)
		return
	}
	if err := h.leads.Create(ctx, l); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, leadToResp(l))
}

func (h *LeadHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	list, err := h.leads.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]leadResp, 0, len(list))
	for _, l := range list {
		out = append(out, leadToResp(l))
	}
	c.JSON(http.StatusOK, out)
}

func (h *LeadHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	l, err := h.leads.GetByID(ctx, c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, leadToResp(l))
}

func (h *LeadHandler) Update(c *gin.Context) {
	var req leadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	l, err := h.leads.GetByID(ctx, c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}

	l.Title = req.Title
	if req.Status != "" {
		l.Status = domain.LeadStatus(req.Status)
	}
	l.Notes = req.Notes
	l.Value = decimal.NullDecimal{}
	if req.Value != nil {
		l.Value = decimal.NewNullDecimal(*req.Value)
	}
	if req.ContactID != l.ContactID {
		if err := h.ensureContact(ctx, req.ContactID, l.UserID); err != nil {
			writeErr(c, err)
			return
		}
		l.ContactID = req.ContactID
	}
	if err := l.Validate(); err != nil {
		writeErr(c, err)
		return
	}

	if err := h.leads.Update(ctx, l); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, leadToResp(l))
}

func (h *LeadHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	if err := h.leads.Delete(ctx, c.Param("id"), middleware.UserID(c)); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
