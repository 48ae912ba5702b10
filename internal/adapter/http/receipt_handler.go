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

type ReceiptHandler struct {
	create *usecase.CreateReceipt
	update *usecase.UpdateReceipt
	delete *usecase.DeleteReceipt
	query  usecase.ReceiptRepo
}

func NewReceiptHandler(create *usecase.CreateReceipt, update *usecase.UpdateReceipt, del *usecase.DeleteReceipt, query usecase.ReceiptRepo) *ReceiptHandler {
	return &ReceiptHandler{create: create, update: update, delete: del, query: query}
}

type createReceiptReq struct {
	InvoiceID     string          `json:"invoice_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Notes         string          `json:"notes"`
}

type updateReceiptReq struct {
	InvoiceID     *string          `json:"invoice_id"`
	Amount        *decimal.Decimal `json:"amount"`
	PaymentMethod *string          `json:"payment_method"`
	Notes         *string          `json:"notes"`
}

type receiptResp struct {
	ID            string          `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
	InvoiceID     string          `json:"invoice_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

type createReceiptResp struct {
	receiptResp
	InvoiceStatus string          `json:"invoice_status"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Balance       decimal.Decimal `json:"balance"`
}

func receiptToResp(r *domain.Receipt) receiptResp {
	return receiptResp{
		ID:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		InvoiceID:     r.InvoiceID,
		CreatedAt:     r.CreatedAt,
	}
}

// Create records a payment; the response carries the invoice's re-derived
// payment state so clients don't need a second round trip.
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req createReceiptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	rec, summary, err := h.create.Execute(ctx, usecase.CreateReceiptInput{
		UserID:        middleware.UserID(c),
		InvoiceID:     req.InvoiceID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		writeErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, createReceiptResp{
		receiptResp:   receiptToResp(rec),
		InvoiceStatus: string(summary.Status),
		AmountPaid:    summary.AmountPaid,
		Balance:       summary.Balance,
	})
}

func (h *ReceiptHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	list, err := h.query.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]receiptResp, 0, len(list))
	for _, r := range list {
		out = append(out, receiptToResp(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReceiptHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	r, err := h.query.GetByID(ctx, c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, receiptToResp(r))
}

func (h *ReceiptHandler) Update(c *gin.Context) {
	var req updateReceiptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	rec, err := h.update.Execute(ctx, usecase.UpdateReceiptInput{
		UserID:        middleware.UserID(c),
		ReceiptID:     c.Param("id"),
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		InvoiceID:     req.InvoiceID,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, receiptToResp(rec))
}

func (h *ReceiptHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	if err := h.delete.Execute(ctx, c.Param("id"), middleware.UserID(c)); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
