package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/invtrack/receipt-scan/internal/catalog"
)

// CatalogRepository reads and writes catalog products.
type CatalogRepository struct {
	db  *DB
	log *slog.Logger
}

func NewCatalogRepository(db *DB, logger *slog.Logger) *CatalogRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogRepository{db: db, log: logger}
}

// Init creates the products table when it does not exist yet.
func (r *CatalogRepository) Init(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS products (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    price       REAL NOT NULL DEFAULT 0,
    description TEXT NOT NULL DEFAULT '',
    brand       TEXT NOT NULL DEFAULT '',
    category    TEXT NOT NULL DEFAULT '',
    is_active   BOOLEAN NOT NULL DEFAULT TRUE
)`
	if _, err := r.db.SQL.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}

// ListActiveProducts implements catalog.Store.
func (r *CatalogRepository) ListActiveProducts(ctx context.Context) ([]catalog.Product, error) {
	const q = `SELECT id, name, price, description, brand, category
FROM products WHERE is_active ORDER BY name`

	rows, err := r.db.SQL.QueryContext(ctx, q)
	if err != nil {
		r.log.Error("catalog.list.query_failed", "error", err)
		return nil, fmt.Errorf("list catalog products: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.log.Warn("catalog.list.rows_close_failed", "error", err)
		}
	}()

	var out []catalog.Product
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Brand, &p.Category); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}
	return out, nil
}

// UpsertProduct inserts or replaces one catalog entry.
func (r *CatalogRepository) UpsertProduct(ctx context.Context, p catalog.Product) error {
	const q = `
INSERT INTO products (id, name, price, description, brand, category, is_active)
VALUES ($1, $2, $3, $4, $5, $6, TRUE)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    price = EXCLUDED.price,
    description = EXCLUDED.description,
    brand = EXCLUDED.brand,
    category = EXCLUDED.category`
	if _, err := r.db.SQL.ExecContext(ctx, q, p.ID, p.Name, p.Price, p.Description, p.Brand, p.Category); err != nil {
		return fmt.Errorf("upsert catalog product %q: %w", p.ID, err)
	}
	return nil
}

var _ catalog.Store = (*CatalogRepository)(nil)
