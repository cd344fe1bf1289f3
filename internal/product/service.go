package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aether-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input NewProduct) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Count(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateNewProduct(input NewProduct) error {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case strings.TrimSpace(input.SKU) == "":
		return fmt.Errorf("%w: sku is required", ErrInvalidProduct)
	case !input.Price.IsPositive():
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidProduct)
	case input.Stock < 0:
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	}
	return nil
}

func (s *service) Create(ctx context.Context, input NewProduct) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	start := time.Now()

	if err := validateNewProduct(input); err != nil {
		log.Info("product rejected", zap.Error(err))
		return nil, err
	}

	p, err := s.repo.Upsert(ctx, &Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price.Round(2),
		SKU:         strings.TrimSpace(input.SKU),
		Stock:       input.Stock,
		Category:    strings.TrimSpace(input.Category),
		Images:      input.Images,
	})
	if err != nil {
		log.Error("failed to store product", zap.Error(err))
		return nil, err
	}

	log.Info("product stored",
		zap.String("product_id", p.ID),
		zap.String("sku", p.SKU),
		zap.Duration("duration", time.Since(start)),
	)
	return p, nil
}

func (s *service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, ErrProductNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
