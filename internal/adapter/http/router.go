package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coderanges/swiftcrm/internal/adapter/http/middleware"
	"github.com/coderanges/swiftcrm/internal/logging"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Contacts   *ContactHandler
	Leads      *LeadHandler
	Orders     *OrderHandler
	Invoices   *InvoiceHandler
	Receipts   *ReceiptHandler
	Accounting *AccountingHandler
}

func NewRouter(h Handlers, auth gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)

	authed := api.Group("", auth)
	{
		authed.POST("/logout", h.Auth.Logout)
		authed.GET("/me", h.Auth.Me)

		authed.POST("/contacts", h.Contacts.Create)
		authed.GET("/contacts", h.Contacts.List)
		authed.GET("/contacts/:id", h.Contacts.Get)
		authed.PUT("/contacts/:id", h.Contacts.Update)
		authed.DELETE("/contacts/:id", h.Contacts.Delete)

		authed.POST("/leads", h.Leads.Create)
		authed.GET("/leads", h.Leads.List)
		authed.GET("/leads/:id", h.Leads.Get)
		authed.PUT("/leads/:id", h.Leads.Update)
		authed.DELETE("/leads/:id", h.Leads.Delete)

		authed.POST("/orders", h.Orders.Create)
		authed.GET("/orders", h.Orders.List)
		authed.GET("/orders/:id", h.Orders.Get)
		authed.PUT("/orders/:id", h.Orders.Update)
		authed.DELETE("/orders/:id", h.Orders.Delete)

		authed.POST("/invoices", h.Invoices.Create)
		authed.GET("/invoices", h.Invoices.List)
		authed.GET("/invoices/:id", h.Invoices.Get)
		authed.PUT("/invoices/:id", h.Invoices.Update)
		authed.DELETE("/invoices/:id", h.Invoices.Delete)

		authed.POST("/receipts", h.Receipts.Create)
		authed.GET("/receipts", h.Receipts.List)
		authed.GET("/receipts/:id", h.Receipts.Get)
		authed.PUT("/receipts/:id", h.Receipts.Update)
		authed.DELETE("/receipts/:id", h.Receipts.Delete)

		authed.GET("/accounting/summary", h.Accounting.Summary)
		authed.POST("/accounting", h.Accounting.Create)
		authed.GET("/accounting", h.Accounting.List)
		authed.GET("/accounting/:id", h.Accounting.Get)
		authed.PUT("/accounting/:id", h.Accounting.Update)
		authed.DELETE("/accounting/:id", h.Accounting.Delete)
	}

	return r
}
