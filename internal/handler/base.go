package handler

import (
	"errors"
	"net/http"

	"aether-be/internal/auth"
	"aether-be/internal/logger"
	"aether-be/internal/order"
	"aether-be/internal/payment"
	"aether-be/internal/product"
	"aether-be/internal/shipment"
	"aether-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes carried in the response envelope.
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConflict            = "CONFLICT"
	ErrCodePaymentNotCompleted = "PAYMENT_NOT_COMPLETED"
	ErrCodePaymentFailed       = "PAYMENT_FAILED"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

type ErrorInfo struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	if id := logger.RequestIDFrom(c.Request.Context()); id != "" {
		return id
	}
	return c.GetHeader(logger.RequestIDHeader)
}

func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: getRequestID(c),
		},
	})
}

func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// errorStatus maps service errors onto HTTP status and envelope code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrUserNotFound),
		errors.Is(err, shipment.ErrShipmentNotFound),
		errors.Is(err, shipment.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound, ErrCodeNotFound

	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, shipment.ErrShipmentExists):
		return http.StatusConflict, ErrCodeConflict

	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, ErrCodeUnauthorized

	case errors.Is(err, product.ErrInvalidProduct),
		errors.Is(err, order.ErrInvalidOrder),
		errors.Is(err, shipment.ErrInvalidShipment),
		errors.Is(err, user.ErrInvalidInput):
		return http.StatusBadRequest, ErrCodeBadRequest

	case errors.Is(err, order.ErrPaymentNotCompleted):
		return http.StatusPaymentRequired, ErrCodePaymentNotCompleted

	case errors.Is(err, payment.ErrPaymentFailed):
		return http.StatusBadGateway, ErrCodePaymentFailed
	}
	return http.StatusInternalServerError, ErrCodeInternal
}

// HandleError converts service errors to HTTP responses. Internal errors
// are logged and answered with a generic message.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	status, code := errorStatus(err)
	message := err.Error()

	switch status {
	case http.StatusInternalServerError:
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		message = "An unexpected error occurred"
	case http.StatusBadGateway:
		message = "payment provider unavailable"
	}

	h.Error(c, status, code, message)
}
