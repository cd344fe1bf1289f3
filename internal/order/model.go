package order

import (
	"time"

	"aether-be/internal/payment"
	"aether-be/internal/shipment"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "PENDIENTE"
	StatusProcessing Status = "EN_PROCESO"
	StatusCompleted  Status = "COMPLETADO"
	StatusCancelled  Status = "CANCELADO"
)

type PaymentMethod string

const (
	PaymentPayPal     PaymentMethod = "PAYPAL"
	PaymentCreditCard PaymentMethod = "TARJETA_CREDITO"
	PaymentDebitCard  PaymentMethod = "TARJETA_DEBITO"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentPayPal, PaymentCreditCard, PaymentDebitCard:
		return true
	}
	return false
}

type Order struct {
	ID              string             `json:"id"`
	UserID          string             `json:"userId"`
	Total           decimal.Decimal    `json:"total"`
	Status          Status             `json:"status"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	Items           []OrderItem        `json:"items"`
	Shipment        *shipment.Shipment `json:"shipment"`
	ShippingAddress *ShippingAddress   `json:"shippingAddress"`
}

// OrderItem keeps the unit price charged at checkout. Product carries the
// live catalog row and may differ.
type OrderItem struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"orderId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Product   *ProductSummary `json:"product,omitempty"`
}

type ProductSummary struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	SKU    string          `json:"sku"`
	Price  decimal.Decimal `json:"price"`
	Images []string        `json:"images"`
}

type ShippingAddress struct {
	ID             string        `json:"id"`
	OrderID        string        `json:"orderId"`
	Street         string        `json:"street"`
	City           string        `json:"city"`
	State          string        `json:"state"`
	PostalCode     string        `json:"postalCode"`
	Country        string        `json:"country"`
	PaymentMethod  PaymentMethod `json:"paymentMethod"`
	CardholderName *string       `json:"cardholderName,omitempty"`
}

type CreateOrderInput struct {
	UserID          string
	Items           []ItemInput
	Total           decimal.Decimal
	Shipment        *ShipmentInput
	ShippingAddress *AddressInput
}

type ItemInput struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

type ShipmentInput struct {
	Address           string
	EstimatedDelivery *time.Time
}

type AddressInput struct {
	Street         string
	City           string
	State          string
	PostalCode     string
	Country        string
	PaymentMethod  PaymentMethod
	CardholderName *string
}

type Filter struct {
	UserID string
}

type CaptureOutcome struct {
	Capture *payment.CaptureResult `json:"capture"`
	Order   *Order                 `json:"order"`
}

type DashboardStats struct {
	TotalProducts  int               `json:"totalProducts"`
	PendingOrders  int               `json:"pendingOrders"`
	TotalSales     decimal.Decimal   `json:"totalSales"`
	OrdersByStatus map[Status]int    `json:"ordersByStatus"`
	Counters       map[string]uint64 `json:"counters"`
}
