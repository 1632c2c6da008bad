// internal/repository/postgres/config_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smartstock/backend-go/internal/domain"
	"github.com/smartstock/backend-go/internal/repository"
)

type businessConfigRepository struct {
	db *sqlx.DB
}

func NewBusinessConfigRepository(db *DB) repository.BusinessConfigRepository {
	return &businessConfigRepository{db: db.DB}
}

func (r *businessConfigRepository) Get(ctx context.Context, ownerID string) (*domain.BusinessConfig, error) {
	query := `
        SELECT owner_id, business_name, currency_symbol, critical_threshold, low_threshold, logo_initials
        FROM business_profile
        WHERE owner_id = $1
    `

	var cfg domain.BusinessConfig
	if err := r.db.GetContext(ctx, &cfg, query, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting business profile: %w", err)
	}

	return &cfg, nil
}

func (r *businessConfigRepository) Upsert(ctx context.Context, ownerID string, cfg domain.BusinessConfig) error {
	query := `
        INSERT INTO business_profile (owner_id, business_name, currency_symbol, critical_threshold, low_threshold, logo_initials, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        ON CONFLICT (owner_id) DO UPDATE SET
            business_name = EXCLUDED.business_name,
            currency_symbol = EXCLUDED.currency_symbol,
            critical_threshold = EXCLUDED.critical_threshold,
            low_threshold = EXCLUDED.low_threshold,
            logo_initials = EXCLUDED.logo_initials,
            updated_at = NOW()
    `

	if _, err := r.db.ExecContext(ctx, query,
		ownerID, cfg.BusinessName, cfg.CurrencySymbol, cfg.CriticalThreshold, cfg.LowThreshold, cfg.LogoInitials); err != nil {
		return fmt.Errorf("error upserting business profile: %w", err)
	}

	return nil
}
