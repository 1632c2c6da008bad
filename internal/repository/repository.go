// internal/repository/repository.go
package repository

import (
	"context"

	"github.com/smartstock/backend-go/internal/domain"
)

// ProductRepository persists the per-owner product catalog.
type ProductRepository interface {
	List(ctx context.Context, ownerID string) ([]domain.Product, error)
	Upsert(ctx context.Context, ownerID string, product domain.Product) error
	Delete(ctx context.Context, ownerID, productID string) error
}

// EventLogRepository persists the per-owner audit trail.
type EventLogRepository interface {
	Append(ctx context.Context, ownerID string, event domain.StockEvent) error
	List(ctx context.Context, ownerID string, limit int) ([]domain.StockEvent, error)
}

// BusinessConfigRepository persists the per-owner business profile.
// Get returns (nil, nil) when the owner has no stored profile yet.
type BusinessConfigRepository interface {
	Get(ctx context.Context, ownerID string) (*domain.BusinessConfig, error)
	Upsert(ctx context.Context, ownerID string, cfg domain.BusinessConfig) error
}
