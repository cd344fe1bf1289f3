package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aether-be/internal/logger"
	"aether-be/internal/metrics"
	"aether-be/internal/payment"
	"aether-be/internal/shipment"
	"aether-be/internal/user"
	"aether-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	ListOrders(ctx context.Context, filter Filter) ([]*Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	CancelOrder(ctx context.Context, orderID string) (*Order, error)
	CreatePayment(ctx context.Context, amount decimal.Decimal, currency string) (*payment.OrderResult, error)
	CapturePayment(ctx context.Context, paypalOrderID string, input CreateOrderInput) (*CaptureOutcome, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

// UserDirectory is the slice of the account service checkout depends on.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
	CreatePlaceholder(ctx context.Context, id string) (*user.User, error)
}

type ProductCounter interface {
	Count(ctx context.Context) (int, error)
}

type service struct {
	repo                  Repository
	users                 UserDirectory
	products              ProductCounter
	paymentGate           payment.Gateway
	allowPlaceholderUsers bool
	now                   func() time.Time
}

func NewService(
	repo Repository,
	users UserDirectory,
	products ProductCounter,
	payGate payment.Gateway,
	allowPlaceholderUsers bool,
) Service {
	return &service{
		repo:                  repo,
		users:                 users,
		products:              products,
		paymentGate:           payGate,
		allowPlaceholderUsers: allowPlaceholderUsers,
		now:                   time.Now,
	}
}

func validateCreateOrder(input CreateOrderInput) error {
	if strings.TrimSpace(input.UserID) == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidOrder)
	}
	if len(input.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	}
	for i, item := range input.Items {
		switch {
		case strings.TrimSpace(item.ProductID) == "":
			return fmt.Errorf("%w: item %d: productId is required", ErrInvalidOrder, i)
		case item.Quantity <= 0:
			return fmt.Errorf("%w: item %d: quantity must be positive", ErrInvalidOrder, i)
		case item.Price.IsNegative():
			return fmt.Errorf("%w: item %d: price cannot be negative", ErrInvalidOrder, i)
		case !storableAmount(item.Price):
			return fmt.Errorf("%w: item %d: price must have at most 2 decimals and be below %s",
				ErrInvalidOrder, i, maxAmount)
		}
	}
	if input.Total.IsNegative() {
		return fmt.Errorf("%w: total cannot be negative", ErrInvalidOrder)
	}
	if !storableAmount(input.Total) {
		return fmt.Errorf("%w: total must have at most 2 decimals and be below %s", ErrInvalidOrder, maxAmount)
	}
	if s := input.Shipment; s != nil && strings.TrimSpace(s.Address) == "" {
		return fmt.Errorf("%w: shipment address is required", ErrInvalidOrder)
	}
	if a := input.ShippingAddress; a != nil {
		if strings.TrimSpace(a.Street) == "" ||
			strings.TrimSpace(a.City) == "" ||
			strings.TrimSpace(a.State) == "" ||
			strings.TrimSpace(a.PostalCode) == "" ||
			strings.TrimSpace(a.Country) == "" {
			return fmt.Errorf("%w: incomplete shipping address", ErrInvalidOrder)
		}
		if !a.PaymentMethod.Valid() {
			return fmt.Errorf("%w: unknown payment method %q", ErrInvalidOrder, a.PaymentMethod)
		}
	}
	return nil
}

// maxAmount is the smallest value a NUMERIC(12,2) column cannot hold.
var maxAmount = decimal.New(1, 10)

// storableAmount reports whether d survives a NUMERIC(12,2) round trip unchanged.
func storableAmount(d decimal.Decimal) bool {
	return d.LessThan(maxAmount) && d.Equal(d.Round(2))
}

func itemsSubtotal(items []ItemInput) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// ensureUser resolves the buyer. Unknown ids fail unless placeholder users
// are enabled.
func (s *service) ensureUser(ctx context.Context, userID string) error {
	_, err := s.users.GetByID(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return err
	}
	if !s.allowPlaceholderUsers {
		return ErrUserNotFound
	}
	_, err = s.users.CreatePlaceholder(ctx, userID)
	return err
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("user_id", input.UserID),
	)

	if err := s.admitOrder(ctx, input, log); err != nil {
		return nil, err
	}
	return s.storeOrder(ctx, input, log)
}

// admitOrder validates the input and resolves the buyer. Nothing is
// persisted except a placeholder user when those are enabled.
func (s *service) admitOrder(ctx context.Context, input CreateOrderInput, log *zap.Logger) error {
	if err := validateCreateOrder(input); err != nil {
		log.Info("order rejected", zap.Error(err))
		return err
	}

	if err := s.ensureUser(ctx, input.UserID); err != nil {
		log.Warn("order buyer could not be resolved", zap.Error(err))
		return err
	}

	// Totals are taken as submitted.
	if subtotal := itemsSubtotal(input.Items); !subtotal.Equal(input.Total) {
		log.Warn("order total differs from item subtotal",
			zap.String("total", input.Total.StringFixed(2)),
			zap.String("items_subtotal", subtotal.StringFixed(2)),
		)
	}
	return nil
}

// storeOrder builds and persists an admitted order in one transaction.
func (s *service) storeOrder(ctx context.Context, input CreateOrderInput, log *zap.Logger) (*Order, error) {
	timer := metrics.StartTimer()

	/* ---------- BUILD ---------- */

	o := &Order{
		ID:     uuid.NewString(),
		UserID: input.UserID,
		Total:  input.Total.Round(2),
		Status: StatusPending,
		Items:  make([]OrderItem, 0, len(input.Items)),
	}

	for _, item := range input.Items {
		o.Items = append(o.Items, OrderItem{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.Round(2),
		})
	}

	if in := input.Shipment; in != nil {
		eta := s.now().Add(shipment.DefaultDeliveryWindow)
		if in.EstimatedDelivery != nil {
			eta = *in.EstimatedDelivery
		}
		o.Shipment = &shipment.Shipment{
			ID:                uuid.NewString(),
			OrderID:           o.ID,
			Address:           strings.TrimSpace(in.Address),
			EstimatedDelivery: eta,
			TrackingNumber:    utils.GenerateTrackingNumber(),
			Status:            shipment.StatusPreparing,
		}
	}

	if in := input.ShippingAddress; in != nil {
		o.ShippingAddress = &ShippingAddress{
			ID:             uuid.NewString(),
			OrderID:        o.ID,
			Street:         strings.TrimSpace(in.Street),
			City:           strings.TrimSpace(in.City),
			State:          strings.TrimSpace(in.State),
			PostalCode:     strings.TrimSpace(in.PostalCode),
			Country:        strings.TrimSpace(in.Country),
			PaymentMethod:  in.PaymentMethod,
			CardholderName: optionalTrimmed(in.CardholderName),
		}
	}

	/* ---------- PERSIST ---------- */

	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, err
	}

	metrics.OrdersCreated.Inc()

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Duration("duration", timer.Duration()),
	)
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, filter Filter) ([]*Order, error) {
	return s.repo.GetOrders(ctx, filter)
}

func (s *service) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, ErrOrderNotFound
	}
	return s.repo.GetOrderDetail(ctx, orderID)
}

func (s *service) CancelOrder(ctx context.Context, orderID string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelOrder"),
		zap.String("order_id", orderID),
	)

	if orderID == "" {
		return nil, ErrOrderNotFound
	}

	if err := s.repo.CancelOrderTx(ctx, orderID); err != nil {
		if !errors.Is(err, ErrOrderNotFound) {
			log.Error("failed to cancel order", zap.Error(err))
		}
		return nil, err
	}

	metrics.OrdersCancelled.Inc()
	log.Info("order cancelled")

	return s.repo.GetOrderDetail(ctx, orderID)
}

func (s *service) CreatePayment(ctx context.Context, amount decimal.Decimal, currency string) (*payment.OrderResult, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidOrder)
	}
	return s.paymentGate.CreateOrder(ctx, amount, currency)
}

// CapturePayment captures the PayPal order and, only when the capture is
// COMPLETED, stores the local order.
func (s *service) CapturePayment(ctx context.Context, paypalOrderID string, input CreateOrderInput) (*CaptureOutcome, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CapturePayment"),
		zap.String("paypal_order_id", paypalOrderID),
	)

	if strings.TrimSpace(paypalOrderID) == "" {
		return nil, fmt.Errorf("%w: orderID is required", ErrInvalidOrder)
	}
	if err := s.admitOrder(ctx, input, log); err != nil {
		return nil, err
	}

	capture, err := s.paymentGate.CaptureOrder(ctx, paypalOrderID)
	if err != nil {
		return nil, err
	}

	if !capture.Completed() {
		log.Warn("capture not completed", zap.String("status", capture.Status))
		return nil, fmt.Errorf("%w: status %s", ErrPaymentNotCompleted, capture.Status)
	}

	o, err := s.storeOrder(ctx, input, log.With(zap.String("user_id", input.UserID)))
	if err != nil {
		log.Error("payment captured but order was not stored", zap.Error(err))
		return nil, err
	}

	return &CaptureOutcome{Capture: capture, Order: o}, nil
}

func (s *service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DashboardStats"),
	)

	products, err := s.products.Count(ctx)
	if err != nil {
		log.Error("failed to count products", zap.Error(err))
		return nil, err
	}

	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		log.Error("failed to count orders", zap.Error(err))
		return nil, err
	}

	sales, err := s.repo.TotalSales(ctx)
	if err != nil {
		log.Error("failed to sum sales", zap.Error(err))
		return nil, err
	}

	return &DashboardStats{
		TotalProducts:  products,
		PendingOrders:  byStatus[StatusPending] + byStatus[StatusProcessing],
		TotalSales:     sales,
		OrdersByStatus: byStatus,
		Counters:       metrics.Snapshot(),
	}, nil
}

// optionalTrimmed trims s and maps blank values to nil.
func optionalTrimmed(s *string) *string {
	v := strings.TrimSpace(utils.PtrString(s))
	if v == "" {
		return nil
	}
	return utils.StrPtr(v)
}
