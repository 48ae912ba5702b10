package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coderanges/swiftcrm/internal/adapter/http/middleware"
	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

type ContactHandler struct {
	contacts usecase.ContactRepo
}

func NewContactHandler(contacts usecase.ContactRepo) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

type contactReq struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type contactResp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func contactToResp(ct *domain.Contact) contactResp {
	return contactResp{
		ID:        ct.ID,
		Name:      ct.Name,
		Email:     ct.Email,
		Phone:     ct.Phone,
		Company:   ct.Company,
		Address:   ct.Address,
		Notes:     ct.Notes,
		CreatedAt: ct.CreatedAt,
		UpdatedAt: ct.UpdatedAt,
	}
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req contactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ct := &domain.Contact{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Address: req.Address,
		Notes:   req.Notes,
		UserID:  middleware.UserID(c),
	}
	if err := ct.Validate(); err != nil {
		writeErr(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	if err := h.contacts.Create(ctx, ct); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, contactToResp(ct))
}

func (h *ContactHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	list, err := h.contacts.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]contactResp, 0, len(list))
	for _, ct := range list {
		out = append(out, contactToResp(ct))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ContactHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	ct, err := h.contacts.GetByID(ctx, c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, contactToResp(ct))
}

func (h *ContactHandler) Update(c *gin.Context) {
	var req contactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	ct, err := h.contacts.GetByID(ctx, c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}

	ct.Name = req.Name
	ct.Email = req.Email
	ct.Phone = req.Phone
	ct.Company = req.Company
	ct.Address = req.Address
	ct.Notes = req.Notes
	if err := ct.Validate(); err != nil {
		writeErr(c, err)
		return
	}

	if err := h.contacts.Update(ctx, ct); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, contactToResp(ct))
}

func (h *ContactHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	if err := h.contacts.Delete(ctx, c.Param("id"), middleware.UserID(c)); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
