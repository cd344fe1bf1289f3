package order

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidOrder        = errors.New("invalid order")
	ErrUserNotFound        = errors.New("user not found")
	ErrPaymentNotCompleted = errors.New("payment not completed")
)
