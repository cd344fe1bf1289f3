package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

type Gateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (*OrderResult, error)
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}
