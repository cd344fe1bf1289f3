package shipment

import (
	"context"
	"strings"
	"time"

	"aether-be/internal/logger"
	"aether-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input NewShipment) (*Shipment, error)
	List(ctx context.Context) ([]*Shipment, error)
	GetByID(ctx context.Context, id string) (*Shipment, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// Create opens a PREPARANDO shipment for an existing order with a three day
// delivery estimate and a fresh tracking number.
func (s *service) Create(ctx context.Context, input NewShipment) (*Shipment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateShipment"),
		zap.String("order_id", input.OrderID),
	)

	if strings.TrimSpace(input.OrderID) == "" || strings.TrimSpace(input.Address) == "" {
		return nil, ErrInvalidShipment
	}

	created, err := s.repo.Create(ctx, &Shipment{
		ID:                uuid.NewString(),
		OrderID:           input.OrderID,
		Address:           strings.TrimSpace(input.Address),
		EstimatedDelivery: s.now().Add(DefaultDeliveryWindow),
		TrackingNumber:    utils.GenerateTrackingNumber(),
		Status:            StatusPreparing,
	})
	if err != nil {
		log.Warn("failed to create shipment", zap.Error(err))
		return nil, err
	}

	log.Info("shipment created",
		zap.String("shipment_id", created.ID),
		zap.String("tracking_number", created.TrackingNumber),
	)
	return created, nil
}

func (s *service) List(ctx context.Context) ([]*Shipment, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id string) (*Shipment, error) {
	if id == "" {
		return nil, ErrShipmentNotFound
	}
	return s.repo.GetByID(ctx, id)
}
