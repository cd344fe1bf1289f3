package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"aether-be/internal/db"
	"aether-be/internal/logger"
	"aether-be/internal/product"
	"aether-be/internal/shipment"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order) error
	GetOrders(ctx context.Context, filter Filter) ([]*Order, error)
	GetOrderDetail(ctx context.Context, orderID string) (*Order, error)
	CancelOrderTx(ctx context.Context, orderID string) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
	TotalSales(ctx context.Context) (decimal.Decimal, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, user_id, total, status, created_at, updated_at`

// CreateOrderTx writes the order, its items and the optional shipment and
// shipping address in a single transaction.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("order_id", o.ID),
	)

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		// 1. Insert order
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO orders (id, user_id, total, status)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at, updated_at
		`, o.ID, o.UserID, o.Total, o.Status).Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		// 2. Insert items with the submitted unit price
		for _, item := range o.Items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO order_items (id, order_id, product_id, quantity, price)
				VALUES ($1, $2, $3, $4, $5)
			`, item.ID, o.ID, item.ProductID, item.Quantity, item.Price); err != nil {
				return fmt.Errorf("insert order item %s: %w", item.ProductID, err)
			}
		}

		// 3. Optional shipment
		if o.Shipment != nil {
			if err := shipment.Insert(ctx, tx, o.Shipment); err != nil {
				return fmt.Errorf("insert shipment: %w", err)
			}
		}

		// 4. Optional shipping address
		if a := o.ShippingAddress; a != nil {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO shipping_addresses (
					id, order_id, street, city, state,
					postal_code, country, payment_method, cardholder_name
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			`,
				a.ID,
				o.ID,
				a.Street,
				a.City,
				a.State,
				a.PostalCode,
				a.Country,
				a.PaymentMethod,
				nullableString(a.CardholderName),
			); err != nil {
				return fmt.Errorf("insert shipping address: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			log.Info("order references unknown rows", zap.Error(err))
			return fmt.Errorf("%w: unknown user or product", ErrInvalidOrder)
		}
		log.Error("failed to create order", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) GetOrders(ctx context.Context, filter Filter) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetOrders"),
	)

	var (
		where []string
		args  []any
	)
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, orders); err != nil {
		log.Error("failed to load order relations", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// CancelOrderTx marks the order CANCELADO and any shipment DEVUELTO in one
// transaction. Re-cancelling repeats both writes.
func (r *repository) CancelOrderTx(ctx context.Context, orderID string) error {
	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
			StatusCancelled, orderID,
		)
		if err != nil {
			return fmt.Errorf("cancel order: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrOrderNotFound
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE shipments SET status = $1, updated_at = NOW() WHERE order_id = $2`,
			shipment.StatusReturned, orderID,
		); err != nil {
			return fmt.Errorf("return shipment: %w", err)
		}
		return nil
	})
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[Status]int{}
	for rows.Next() {
		var (
			status Status
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *repository) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> $1`, StatusCancelled,
	).Scan(&total)
	return total, err
}

// ----------------- relations -----------------

func (r *repository) loadRelations(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	byID := make(map[string]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
		o.Items = []OrderItem{}
	}

	if err := r.loadItems(ctx, ids, byID); err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	if err := r.loadShipments(ctx, ids, byID); err != nil {
		return fmt.Errorf("load shipments: %w", err)
	}
	if err := r.loadAddresses(ctx, ids, byID); err != nil {
		return fmt.Errorf("load addresses: %w", err)
	}
	return nil
}

func (r *repository) loadItems(ctx context.Context, ids []string, byID map[string]*Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		       p.name, p.sku, p.price, p.images
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item         OrderItem
			name, sku    sql.NullString
			images       sql.NullString
			productPrice decimal.NullDecimal
		)
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.Price,
			&name,
			&sku,
			&productPrice,
			&images,
		); err != nil {
			return err
		}

		if name.Valid {
			item.Product = &ProductSummary{
				ID:     item.ProductID,
				Name:   name.String,
				SKU:    sku.String,
				Price:  productPrice.Decimal,
				Images: product.SplitImages(images.String),
			}
		}

		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *repository) loadShipments(ctx context.Context, ids []string, byID map[string]*Order) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+shipment.Columns+` FROM shipments WHERE order_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		s, err := shipment.Scan(rows)
		if err != nil {
			return err
		}
		if o, ok := byID[s.OrderID]; ok {
			o.Shipment = s
		}
	}
	return rows.Err()
}

func (r *repository) loadAddresses(ctx context.Context, ids []string, byID map[string]*Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, street, city, state, postal_code, country, payment_method, cardholder_name
		FROM shipping_addresses
		WHERE order_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			a          ShippingAddress
			cardholder sql.NullString
		)
		if err := rows.Scan(
			&a.ID,
			&a.OrderID,
			&a.Street,
			&a.City,
			&a.State,
			&a.PostalCode,
			&a.Country,
			&a.PaymentMethod,
			&cardholder,
		); err != nil {
			return err
		}
		if cardholder.Valid {
			a.CardholderName = &cardholder.String
		}
		if o, ok := byID[a.OrderID]; ok {
			o.ShippingAddress = &a
		}
	}
	return rows.Err()
}

func scanOrder(row interface{ Scan(dest ...any) error }) (*Order, error) {
	var o Order
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Total,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
