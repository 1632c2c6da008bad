// internal/repository/postgres/product_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smartstock/backend-go/internal/domain"
	"github.com/smartstock/backend-go/internal/repository"
)

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db.DB}
}

func (r *productRepository) List(ctx context.Context, ownerID string) ([]domain.Product, error) {
	query := `
        SELECT id, name, category, stock, price, min_stock, target_stock, unit
        FROM products
        WHERE owner_id = $1
        ORDER BY name ASC
    `

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, query, ownerID); err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	return products, nil
}

func (r *productRepository) Upsert(ctx context.Context, ownerID string, p domain.Product) error {
	query := `
        INSERT INTO products (id, owner_id, name, category, stock, price, min_stock, target_stock, unit, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
        ON CONFLICT (id, owner_id) DO UPDATE SET
            name = EXCLUDED.name,
            category = EXCLUDED.category,
            stock = EXCLUDED.stock,
            price = EXCLUDED.price,
            min_stock = EXCLUDED.min_stock,
            target_stock = EXCLUDED.target_stock,
            unit = EXCLUDED.unit,
            updated_at = NOW()
    `

	if _, err := r.db.ExecContext(ctx, query,
		p.ID, ownerID, p.Name, p.Category, p.Stock, p.Price, p.MinStock, p.TargetStock, p.Unit); err != nil {
		return fmt.Errorf("error upserting product %s: %w", p.ID, err)
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, ownerID, productID string) error {
	query := `DELETE FROM products WHERE id = $1 AND owner_id = $2`

	if _, err := r.db.ExecContext(ctx, query, productID, ownerID); err != nil {
		return fmt.Errorf("error deleting product %s: %w", productID, err)
	}

	return nil
}
