package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartstock/backend-go/internal/config"
	"github.com/smartstock/backend-go/internal/domain"
)

const (
	summaryKeyPrefix = "inventory:summary"
	scanBatchSize    = 100
	anonymousKey     = "anonymous"
)

// SummaryCache memoizes the dashboard KPI payload per owner. Any stock
// mutation invalidates the owner's entry.
type SummaryCache interface {
	Get(ctx context.Context, ownerID string) (*domain.DashboardSummary, bool, error)
	Set(ctx context.Context, ownerID string, summary *domain.DashboardSummary) error
	Invalidate(ctx context.Context, ownerID string) error
	InvalidateAll(ctx context.Context) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

func NewSummaryCache(cfg config.CacheConfig) (SummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSummaryCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopSummaryCache() SummaryCache {
	return &noopSummaryCache{}
}

func (c *redisSummaryCache) Get(ctx context.Context, ownerID string) (*domain.DashboardSummary, bool, error) {
	payload, err := c.client.Get(ctx, buildSummaryKey(ownerID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.DashboardSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode summary cache: %w", err)
	}

	return &summary, true, nil
}

func (c *redisSummaryCache) Set(ctx context.Context, ownerID string, summary *domain.DashboardSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary cache: %w", err)
	}

	if err := c.client.Set(ctx, buildSummaryKey(ownerID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSummaryCache) Invalidate(ctx context.Context, ownerID string) error {
	return c.client.Del(ctx, buildSummaryKey(ownerID)).Err()
}

func (c *redisSummaryCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, summaryKeyPrefix, scanBatchSize)
}

func (n *noopSummaryCache) Get(ctx context.Context, ownerID string) (*domain.DashboardSummary, bool, error) {
	return nil, false, nil
}

func (n *noopSummaryCache) Set(ctx context.Context, ownerID string, summary *domain.DashboardSummary) error {
	return nil
}

func (n *noopSummaryCache) Invalidate(ctx context.Context, ownerID string) error {
	return nil
}

func (n *noopSummaryCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildSummaryKey(ownerID string) string {
	if ownerID == "" {
		ownerID = anonymousKey
	}
	return fmt.Sprintf("%s:%s", summaryKeyPrefix, ownerID)
}
