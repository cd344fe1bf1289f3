package shipment

import "errors"

var (
	ErrShipmentNotFound = errors.New("shipment not found")
	ErrShipmentExists   = errors.New("order already has a shipment")
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidShipment  = errors.New("invalid shipment")
)
