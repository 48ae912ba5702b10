package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

// RedisSummaryCache holds resolved payment summaries per invoice. It only
// ever stores resolver output and is invalidated on every receipt mutation,
// so a stale status cannot be served.
type RedisSummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSummaryCache(rdb *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{rdb: rdb, ttl: ttl}
}

type cachedSummary struct {
	Status     string          `json:"status"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	Balance    decimal.Decimal `json:"balance"`
}

func summaryKey(invoiceID string) string { return "crm:invoice:summary:" + invoiceID }

func (c *RedisSummaryCache) Get(ctx context.Context, invoiceID string) (domain.PaymentSummary, bool, error) {
	raw, err := c.rdb.Get(ctx, summaryKey(invoiceID)).Bytes()
	if err == redis.Nil {
		return domain.PaymentSummary{}, false, nil
	}
	if err != nil {
		return domain.PaymentSummary{}, false, err
	}
	var cs cachedSummary
	if err := json.Unmarshal(raw, &cs); err != nil {
		// unreadable entry: treat as a miss, the caller re-resolves
		return domain.PaymentSummary{}, false, nil
	}
	return domain.PaymentSummary{
		Status:     domain.InvoiceStatus(cs.Status),
		AmountPaid: cs.AmountPaid,
		Balance:    cs.Balance,
	}, true, nil
}

func (c *RedisSummaryCache) Set(ctx context.Context, invoiceID string, s domain.PaymentSummary) error {
	raw, err := json.Marshal(cachedSummary{
		Status:     string(s.Status),
		AmountPaid: s.AmountPaid,
		Balance:    s.Balance,
	})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, summaryKey(invoiceID), raw, c.ttl).Err()
}

func (c *RedisSummaryCache) Invalidate(ctx context.Context, invoiceIDs ...string) error {
	keys := make([]string, 0, len(invoiceIDs))
	for _, id := range invoiceIDs {
		keys = append(keys, summaryKey(id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}

var _ usecase.SummaryCache = (*RedisSummaryCache)(nil)
