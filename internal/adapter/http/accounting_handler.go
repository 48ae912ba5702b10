package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/coderanges/swiftcrm/internal/adapter/http/middleware"
	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

type AccountingHandler struct {
	entries usecase.EntryRepo
	summary *usecase.AccountingSummary
}

func NewAccountingHandler(entries usecase.EntryRepo, summary *usecase.AccountingSummary) *AccountingHandler {
	return &AccountingHandler{entries: entries, summary: summary}
}

type entryReq struct {
	EntryType   string          `json:"entry_type" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

type entryResp struct {
	ID          string          `json:"id"`
	EntryType   string          `json:"entry_type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

func entryToResp(e *domain.AccountingEntry) entryResp {
	return entryResp{
		ID:          e.ID,
		EntryType:   string(e.EntryType),
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}

func (h *AccountingHandler) Create(c *gin.Context) {
	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		d, ok := parseDate(req.Date)
		if !ok {
			writeErr(c, &domain.ValidationError{Field: "date", Message: "is not a valid date"})
			return
		}
		date = d
	}

	e := &domain.AccountingEntry{
		ID:          uuid.NewString(),
		EntryType:   domain.EntryType(req.EntryType),
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		UserID:      middleware.UserID(c),
	}
	if err := e.Validate(); err != nil {
		writeErr(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	if err := h.entries.Create(ctx, e); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, entryToResp(e))
}

func (h *AccountingHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	list, err := h.entries.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]entryResp, 0, len(list))
	for _, e := range list {
		out = append(out, entryToResp(e))
	}
	c.JSON(http.StatusOK, out)
}

func (h *AccountingHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	e, err := h.entries.GetByID(ctx, c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, entryToResp(e))
}

func (h *AccountingHandler) Update(c *gin.Context) {
	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	e, err := h.entries.GetByID(ctx, c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}

	e.EntryType = domain.EntryType(req.EntryType)
	e.Category = req.Category
	e.Amount = req.Amount
	e.Description = req.Description
	if req.Date != "" {
		d, ok := parseDate(req.Date)
		if !ok {
			writeErr(c, &domain.ValidationError{Field: "date", Message: "is not a valid date"})
			return
		}
		e.Date = d
	}
	if err := e.Validate(); err != nil {
		writeErr(c, err)
		return
	}

	if err := h.entries.Update(ctx, e); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, entryToResp(e))
}

func (h *AccountingHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	if err := h.entries.Delete(ctx, c.Param("id"), middleware.UserID(c)); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type categoryAmountResp struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type summaryResp struct {
	Period            string               `json:"period"`
	StartDate         time.Time            `json:"start_date"`
	EndDate           time.Time            `json:"end_date"`
	TotalIncome       decimal.Decimal      `json:"total_income"`
	TotalExpenses     decimal.Decimal      `json:"total_expenses"`
	NetProfit         decimal.Decimal      `json:"net_profit"`
	IncomeByCategory  []categoryAmountResp `json:"income_by_category"`
	ExpenseByCategory []categoryAmountResp `json:"expense_by_category"`
}

// Summary aggregates entries over a trailing window selected by ?period=.
func (h *AccountingHandler) Summary(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	out, err := h.summary.Execute(ctx, middleware.UserID(c), c.Query("period"))
	if err != nil {
		writeErr(c, err)
		return
	}

	resp := summaryResp{
		Period:            out.Period,
		StartDate:         out.StartDate,
		EndDate:           out.EndDate,
		TotalIncome:       out.TotalIncome,
		TotalExpenses:     out.TotalExpenses,
		NetProfit:         out.NetProfit,
		IncomeByCategory:  make([]categoryAmountResp, 0, len(out.IncomeByCategory)),
		ExpenseByCategory: make([]categoryAmountResp, 0, len(out.ExpenseByCategory)),
	}
	for _, ca := range out.IncomeByCategory {
		resp.IncomeByCategory = append(resp.IncomeByCategory, categoryAmountResp{Category: ca.Category, Amount: ca.Amount})
	}
	for _, ca := range out.ExpenseByCategory {
		resp.ExpenseByCategory = append(resp.ExpenseByCategory, categoryAmountResp{Category: ca.Category, Amount: ca.Amount})
	}
	c.JSON(http.StatusOK, resp)
}
