package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atrezzo/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS catalog_products (
	id          UUID PRIMARY KEY,
	run_id      UUID NOT NULL,
	position    INTEGER NOT NULL,
	page        INTEGER NOT NULL,
	name        TEXT,
	code        TEXT,
	category    TEXT,
	section     TEXT,
	description TEXT,
	dimensions  TEXT,
	image_url   TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_catalog_products_run ON catalog_products(run_id, position);
`

const insertSQL = `
INSERT INTO catalog_products
(id, run_id, position, page, name, code, category, section, description, dimensions, image_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

// ProductRepository stores crawl results. Rows are kept per run; nothing is deduplicated.
type ProductRepository struct {
	DB *pgxpool.Pool
}

func (r *ProductRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SaveBatch inserts all products of one run in a single round trip.
func (r *ProductRepository) SaveBatch(ctx context.Context, runID uuid.UUID, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(insertSQL,
			uuid.New(), runID, p.Position, p.Page,
			p.Name, p.Code, p.Category, p.Section, p.Description, p.Dimensions, p.ImageURL,
		)
	}

	results := r.DB.SendBatch(ctx, batch)
	defer results.Close()

	for i := range products {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert failed at row %d: %w", i, err)
		}
	}
	return nil
}

// ListRun returns the products of one run in table order.
func (r *ProductRepository) ListRun(ctx context.Context, runID uuid.UUID) ([]model.Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT position, page, name, code, category, section, description, dimensions, image_url
		FROM catalog_products
		WHERE run_id = $1
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.Position, &p.Page, &p.Name, &p.Code, &p.Category, &p.Section, &p.Description, &p.Dimensions, &p.ImageURL); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
