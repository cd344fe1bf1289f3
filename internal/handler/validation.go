package handler

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"aether-be/internal/order"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("paymentmethod", validatePaymentMethod)
		}
	})
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return order.PaymentMethod(fl.Field().String()).Valid()
}

// bindErrorMessage turns a binding failure into a short client message.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
