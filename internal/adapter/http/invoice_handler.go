package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/coderanges/swiftcrm/internal/adapter/http/middleware"
	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

type InvoiceHandler struct {
	create  *usecase.CreateInvoice
	update  *usecase.UpdateInvoice
	summary *usecase.InvoiceSummary
	query   usecase.InvoiceRepo
}

func NewInvoiceHandler(create *usecase.CreateInvoice, update *usecase.UpdateInvoice, summary *usecase.InvoiceSummary, query usecase.InvoiceRepo) *InvoiceHandler {
	return &InvoiceHandler{create: create, update: update, summary: summary, query: query}
}

type createInvoiceReq struct {
	ContactID string          `json:"contact_id" binding:"required"`
	OrderID   string          `json:"order_id"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	DueDate   string          `json:"due_date" binding:"required"`
	Notes     string          `json:"notes"`
}

type updateInvoiceReq struct {
	ContactID *string          `json:"contact_id"`
	OrderID   *string          `json:"order_id"`
	Amount    *decimal.Decimal `json:"amount"`
	DueDate   *string          `json:"due_date"`
	Notes     *string          `json:"notes"`
}

type invoiceResp struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	DueDate       time.Time       `json:"due_date"`
	Notes         string          `json:"notes"`
	ContactID     string          `json:"contact_id"`
	OrderID       string          `json:"order_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type invoiceDetailResp struct {
	invoiceResp
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Balance    decimal.Decimal `json:"balance"`
	Receipts   []receiptResp   `json:"receipts"`
}

func invoiceToResp(inv *domain.Invoice) invoiceResp {
	return invoiceResp{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Amount:        inv.Amount,
		Status:        string(inv.Status),
		DueDate:       inv.DueDate,
		Notes:         inv.Notes,
		ContactID:     inv.ContactID,
		OrderID:       inv.OrderID,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req createInvoiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	due, ok := parseDate(req.DueDate)
	if !ok {
		writeErr(c, &domain.ValidationError{Field: "due_date", Message: "is not a valid date"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	inv, err := h.create.Execute(ctx, usecase.CreateInvoiceInput{
		UserID:         middleware.UserID(c),
		ContactID:      req.ContactID,
		OrderID:        req.OrderID,
		Amount:         req.Amount,
		DueDate:        due,
		Notes:          req.Notes,
		IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoiceToResp(inv))
}

func (h *InvoiceHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	list, err := h.query.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]invoiceResp, 0, len(list))
	for _, inv := range list {
		out = append(out, invoiceToResp(inv))
	}
	c.JSON(http.StatusOK, out)
}

// Get returns the invoice with its receipts and the resolved payment
// summary, not just the stored row.
func (h *InvoiceHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	inv, recs, summary, err := h.summary.Execute(ctx, c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}

	resp := invoiceDetailResp{
		invoiceResp: invoiceToResp(inv),
		AmountPaid:  summary.AmountPaid,
		Balance:     summary.Balance,
		Receipts:    make([]receiptResp, 0, len(recs)),
	}
	resp.Status = string(summary.Status)
	for _, r := range recs {
		resp.Receipts = append(resp.Receipts, receiptToResp(r))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	var req updateInvoiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	in := usecase.UpdateInvoiceInput{
		UserID:    middleware.UserID(c),
		InvoiceID: c.Param("id"),
		Amount:    req.Amount,
		Notes:     req.Notes,
		ContactID: req.ContactID,
		OrderID:   req.OrderID,
	}
	if req.DueDate != nil {
		due, ok := parseDate(*req.DueDate)
		if !ok {
			writeErr(c, &domain.ValidationError{Field: "due_date", Message: "is not a valid date"})
			return
		}
		in.DueDate = &due
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	inv, err := h.update.Execute(ctx, in)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, invoiceToResp(inv))
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	if err := h.query.Delete(ctx, c.Param("id"), middleware.UserID(c)); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
