// internal/repository/postgres/event_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smartstock/backend-go/internal/domain"
	"github.com/smartstock/backend-go/internal/repository"
)

const defaultEventLimit = 100

type eventLogRepository struct {
	db *DB
}

func NewEventLogRepository(db *DB) repository.EventLogRepository {
	return &eventLogRepository{db: db}
}

// Append inserts the event and prunes entries past the retention cap in
// one transaction, so the remote log carries the same cap as the
// in-memory one.
func (r *eventLogRepository) Append(ctx context.Context, ownerID string, ev domain.StockEvent) error {
	insert := `
        INSERT INTO audit_log (id, owner_id, timestamp, product_id, product_name, stock_level, action, severity, message, is_archived)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	prune := `
        DELETE FROM audit_log
        WHERE owner_id = $1 AND id NOT IN (
            SELECT id FROM audit_log
            WHERE owner_id = $1
            ORDER BY timestamp DESC
            LIMIT $2
        )
    `

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insert,
			ev.ID, ownerID, ev.Timestamp, ev.ProductID, ev.ProductName,
			ev.StockLevel, ev.Action, ev.Severity, ev.Message, ev.IsArchived); err != nil {
			return fmt.Errorf("error appending audit event %s: %w", ev.ID, err)
		}
		if _, err := tx.ExecContext(ctx, prune, ownerID, defaultEventLimit); err != nil {
			return fmt.Errorf("error pruning audit log: %w", err)
		}
		return nil
	})
	return err
}

func (r *eventLogRepository) List(ctx context.Context, ownerID string, limit int) ([]domain.StockEvent, error) {
	if limit <= 0 {
		limit = defaultEventLimit
	}

	query := `
        SELECT id, timestamp, product_id, product_name, stock_level, action, severity, message, is_archived
        FROM audit_log
        WHERE owner_id = $1
        ORDER BY timestamp DESC
        LIMIT $2
    `

	var events []domain.StockEvent
	if err := r.db.SelectContext(ctx, &events, query, ownerID, limit); err != nil {
		return nil, fmt.Errorf("error listing audit events: %w", err)
	}

	return events, nil
}
