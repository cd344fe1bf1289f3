package handler

import (
	"time"

	"aether-be/internal/order"
	"aether-be/internal/user"

	"github.com/shopspring/decimal"
)

type createProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	SKU         string          `json:"sku" binding:"required"`
	Stock       *int            `json:"stock" binding:"required,gte=0"`
	Category    string          `json:"category"`
	Images      []string        `json:"images"`
}

type orderItemRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	Price     decimal.Decimal `json:"price"`
}

type shipmentRequest struct {
	Address           string     `json:"address" binding:"required"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
}

type shippingAddressRequest struct {
	Street         string  `json:"street" binding:"required"`
	City           string  `json:"city" binding:"required"`
	State          string  `json:"state" binding:"required"`
	PostalCode     string  `json:"postalCode" binding:"required"`
	Country        string  `json:"country" binding:"required"`
	PaymentMethod  string  `json:"paymentMethod" binding:"required,paymentmethod"`
	CardholderName *string `json:"cardholderName"`
}

type createOrderRequest struct {
	UserID          string                  `json:"userId"`
	Items           []orderItemRequest      `json:"items" binding:"required,min=1,dive"`
	Total           decimal.Decimal         `json:"total"`
	Shipment        *shipmentRequest        `json:"shipment"`
	ShippingAddress *shippingAddressRequest `json:"shippingAddress"`
}

func (r createOrderRequest) toInput(userID string) order.CreateOrderInput {
	in := order.CreateOrderInput{
		UserID: userID,
		Total:  r.Total,
		Items:  make([]order.ItemInput, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		in.Items = append(in.Items, order.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	if s := r.Shipment; s != nil {
		in.Shipment = &order.ShipmentInput{
			Address:           s.Address,
			EstimatedDelivery: s.EstimatedDelivery,
		}
	}
	if a := r.ShippingAddress; a != nil {
		in.ShippingAddress = &order.AddressInput{
			Street:         a.Street,
			City:           a.City,
			State:          a.State,
			PostalCode:     a.PostalCode,
			Country:        a.Country,
			PaymentMethod:  order.PaymentMethod(a.PaymentMethod),
			CardholderName: a.CardholderName,
		}
	}
	return in
}

type createPaymentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" binding:"omitempty,len=3"`
}

type capturePaymentRequest struct {
	OrderID   string             `json:"orderID" binding:"required"`
	OrderData createOrderRequest `json:"orderData"`
}

type createShipmentRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}
