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

type OrderHandler struct {
	create *usecase.CreateOrder
	update *usecase.UpdateOrder
	query  usecase.OrderRepo
}

func NewOrderHandler(create *usecase.CreateOrder, update *usecase.UpdateOrder, query usecase.OrderRepo) *OrderHandler {
	return &OrderHandler{create: create, update: update, query: query}
}

type itemReq struct {
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type itemResp struct {
	ID          string          `json:"id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type createOrderReq struct {
	ContactID string    `json:"contact_id" binding:"required"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	Items     []itemReq `json:"items" binding:"required"`
}

type updateOrderReq struct {
	ContactID *string    `json:"contact_id"`
	Status    *string    `json:"status"`
	Notes     *string    `json:"notes"`
	Items     *[]itemReq `json:"items"`
}

type orderResp struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Notes       string          `json:"notes"`
	ContactID   string          `json:"contact_id"`
	Items       []itemResp      `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func orderToResp(o *domain.Order) orderResp {
	items := make([]itemResp, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, itemResp{
			ID:          it.ID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return orderResp{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		Notes:       o.Notes,
		ContactID:   o.ContactID,
		Items:       items,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func itemInputs(items []itemReq) []usecase.ItemInput {
	out := make([]usecase.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, usecase.ItemInput{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	order, err := h.create.Execute(ctx, usecase.CreateOrderInput{
		UserID:         middleware.UserID(c),
		ContactID:      req.ContactID,
		Status:         domain.OrderStatus(req.Status),
		Notes:          req.Notes,
		IdempotencyKey: c.GetHeader("X-Idempotency-Key"), // prevent duplicated requests
		Items:          itemInputs(req.Items),
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderToResp(order))
}

func (h *OrderHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	list, err := h.query.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]orderResp, 0, len(list))
	for _, o := range list {
		out = append(out, orderToResp(o))
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	o, err := h.query.GetByID(ctx, c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, orderToResp(o))
}

func (h *OrderHandler) Update(c *gin.Context) {
	var req updateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	in := usecase.UpdateOrderInput{
		UserID:    middleware.UserID(c),
		OrderID:   c.Param("id"),
		ContactID: req.ContactID,
		Notes:     req.Notes,
	}
	if req.Status != nil {
		s := domain.OrderStatus(*req.Status)
		in.Status = &s
	}
	if req.Items != nil {
		in.Items = itemInputs(*req.Items)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	order, err := h.update.Execute(ctx, in)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, orderToResp(order))
}

func (h *OrderHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	if err := h.query.Delete(ctx, c.Param("id"), middleware.UserID(c)); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
