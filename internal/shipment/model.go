package shipment

import "time"

type Status string

const (
	StatusPreparing Status = "PREPARANDO"
	StatusShipped   Status = "ENVIADO"
	StatusDelivered Status = "ENTREGADO"
	StatusReturned  Status = "DEVUELTO"
)

// DefaultDeliveryWindow is added to the creation time when no estimated
// delivery date is supplied.
const DefaultDeliveryWindow = 3 * 24 * time.Hour

type Shipment struct {
	ID                string    `json:"id"`
	OrderID           string    `json:"orderId"`
	Address           string    `json:"address"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
	TrackingNumber    string    `json:"trackingNumber"`
	Status            Status    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type NewShipment struct {
	OrderID string
	Address string
}
