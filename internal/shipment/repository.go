package shipment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aether-be/internal/db"
	"aether-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, s *Shipment) (*Shipment, error)
	GetAll(ctx context.Context) ([]*Shipment, error)
	GetByID(ctx context.Context, id string) (*Shipment, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// orderUniqueConstraint keeps shipments one per order.
const orderUniqueConstraint = "shipments_order_id_key"

// Columns is the select list understood by Scan.
const Columns = `id, order_id, address, estimated_delivery, tracking_number, status, created_at, updated_at`

func Scan(row interface{ Scan(dest ...any) error }) (*Shipment, error) {
	var s Shipment
	if err := row.Scan(
		&s.ID,
		&s.OrderID,
		&s.Address,
		&s.EstimatedDelivery,
		&s.TrackingNumber,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// Insert writes a shipment row through any executor, so the order
// repository can place it in its own transaction.
func Insert(ctx context.Context, q db.DBTX, s *Shipment) error {
	return q.QueryRowContext(ctx, `
		INSERT INTO shipments (id, order_id, address, estimated_delivery, tracking_number, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`,
		s.ID,
		s.OrderID,
		s.Address,
		s.EstimatedDelivery,
		s.TrackingNumber,
		s.Status,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *repository) Create(ctx context.Context, s *Shipment) (*Shipment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateShipment"),
		zap.String("order_id", s.OrderID),
	)

	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, s.OrderID,
	).Scan(&exists); err != nil {
		log.Error("failed to check order", zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, ErrOrderNotFound
	}

	if err := Insert(ctx, r.db, s); err != nil {
		if db.IsUniqueViolationOn(err, orderUniqueConstraint) {
			return nil, ErrShipmentExists
		}
		log.Error("failed to insert shipment", zap.Error(err))
		return nil, fmt.Errorf("insert shipment: %w", err)
	}

	return s, nil
}

func (r *repository) GetAll(ctx context.Context) ([]*Shipment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+Columns+` FROM shipments ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := []*Shipment{}
	for rows.Next() {
		s, err := Scan(rows)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Shipment, error) {
	s, err := Scan(r.db.QueryRowContext(ctx,
		`SELECT `+Columns+` FROM shipments WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShipmentNotFound
	}
	return s, err
}
