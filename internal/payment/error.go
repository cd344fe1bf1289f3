package payment

import "errors"

// ErrPaymentFailed wraps every gateway failure: transport, non-2xx and
// undecodable responses alike.
var ErrPaymentFailed = errors.New("payment gateway failure")
