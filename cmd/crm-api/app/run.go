package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/coderanges/swiftcrm/configs"
	"github.com/coderanges/swiftcrm/internal/adapter/cache"
	"github.com/coderanges/swiftcrm/internal/adapter/http"
	"github.com/coderanges/swiftcrm/internal/adapter/http/middleware"
	"github.com/coderanges/swiftcrm/internal/adapter/queue"
	"github.com/coderanges/swiftcrm/internal/adapter/repo"
	"github.com/coderanges/swiftcrm/internal/logging"
	"github.com/coderanges/swiftcrm/internal/security"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile, cfg.App.LogLevel)
	logger.Info("crm-api: starting up")

	// database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	// rabbitmq
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}

	// infra
	userRepo := repo.NewMySQLUserRepo(db)
	contactRepo := repo.NewMySQLContactRepo(db)
	leadRepo := repo.NewMySQLLeadRepo(db)
	orderRepo := repo.NewMySQLOrderRepo(db)
	invoiceRepo := repo.NewMySQLInvoiceRepo(db)
	receiptRepo := repo.NewMySQLReceiptRepo(db)
	entryRepo := repo.NewMySQLEntryRepo(db)

	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	summaryCache := cache.NewRedisSummaryCache(rdb, cfg.Cache.SummaryTTL)
	producer, err := queue.NewRabbitProducer(ch)
	if err != nil {
		return nil, nil, err
	}

	// use cases
	createOrder := usecase.NewCreateOrder(orderRepo, contactRepo, idem)
	updateOrder := usecase.NewUpdateOrder(orderRepo, contactRepo)
	createInvoice := usecase.NewCreateInvoice(invoiceRepo, contactRepo, orderRepo, idem)
	updateInvoice := usecase.NewUpdateInvoice(invoiceRepo, contactRepo, orderRepo, receiptRepo, summaryCache, producer)
	invoiceSummary := usecase.NewInvoiceSummary(invoiceRepo, receiptRepo, summaryCache)
	createReceipt := usecase.NewCreateReceipt(receiptRepo, invoiceRepo, summaryCache, producer)
	updateReceipt := usecase.NewUpdateReceipt(receiptRepo, invoiceRepo, summaryCache, producer)
	deleteReceipt := usecase.NewDeleteReceipt(receiptRepo, invoiceRepo, summaryCache, producer)
	acctSummary := usecase.NewAccountingSummary(entryRepo)

	// sessions + handlers + router
	sessions := security.NewSessions(security.SessionConfig{
		Secret:   cfg.Session.Secret,
		Issuer:   cfg.Session.Issuer,
		Audience: cfg.Session.Audience,
		TTL:      cfg.Session.TTL,
	})

	handlers := http.Handlers{
		Auth:       http.NewAuthHandler(userRepo, sessions, cfg.Session.CookieName, cfg.Session.CookieSecure, cfg.Session.TTL),
		Contacts:   http.NewContactHandler(contactRepo),
		Leads:      http.NewLeadHandler(leadRepo, contactRepo),
		Orders:     http.NewOrderHandler(createOrder, updateOrder, orderRepo),
		Invoices:   http.NewInvoiceHandler(createInvoice, updateInvoice, invoiceSummary, invoiceRepo),
		Receipts:   http.NewReceiptHandler(createReceipt, updateReceipt, deleteReceipt, receiptRepo),
		Accounting: http.NewAccountingHandler(entryRepo, acctSummary),
	}
	router := http.NewRouter(handlers, middleware.SessionAuth(sessions, cfg.Session.CookieName))

	cleanup := func() {
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}
