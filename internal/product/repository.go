package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aether-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Upsert(ctx context.Context, p *Product) (*Product, error)
	GetAll(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, description, price, sku, stock, category, images, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p      Product
		images string
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.SKU,
		&p.Stock,
		&p.Category,
		&images,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Images = SplitImages(images)
	return &p, nil
}

// Upsert inserts the product or, when the SKU already exists, overwrites the
// stored row. The id of an existing row is kept.
func (r *repository) Upsert(ctx context.Context, p *Product) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Upsert"),
		zap.String("sku", p.SKU),
	)

	query := `
		INSERT INTO products (id, name, description, price, sku, stock, category, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			stock = EXCLUDED.stock,
			category = EXCLUDED.category,
			images = EXCLUDED.images,
			updated_at = NOW()
		RETURNING ` + productColumns

	stored, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.SKU,
		p.Stock,
		p.Category,
		JoinImages(p.Images),
	))
	if err != nil {
		log.Error("failed to upsert product", zap.Error(err))
		return nil, fmt.Errorf("upsert product %s: %w", p.SKU, err)
	}

	return stored, nil
}

func (r *repository) GetAll(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query products",
			zap.String("layer", "repository"),
			zap.String("method", "GetAll"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
