package handler

import (
	"aether-be/internal/order"
	"aether-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type TransactionalHandler struct {
	BaseHandler
	orders order.Service
}

func NewTransactionalHandler(orders order.Service) *TransactionalHandler {
	return &TransactionalHandler{orders: orders}
}

// buyerID prefers the id in the body and falls back to the session user.
func buyerID(c *gin.Context, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	id, _ := utils.GetUserIDFromContext(c.Request.Context())
	return id
}

// Create handles POST /transactional
func (h *TransactionalHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, bindErrorMessage(err))
		return
	}

	o, err := h.orders.CreateOrder(c.Request.Context(), req.toInput(buyerID(c, req.UserID)))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, o)
}

// List handles GET /transactional?userId=
func (h *TransactionalHandler) List(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context(), order.Filter{
		UserID: c.Query("userId"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get handles GET /transactional/:id
func (h *TransactionalHandler) Get(c *gin.Context) {
	o, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// Cancel handles PATCH /transactional/:id/cancel
func (h *TransactionalHandler) Cancel(c *gin.Context) {
	o, err := h.orders.CancelOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// CreatePayPalOrder handles POST /transactional/paypal/create-order
func (h *TransactionalHandler) CreatePayPalOrder(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, bindErrorMessage(err))
		return
	}

	res, err := h.orders.CreatePayment(c.Request.Context(), req.Amount, req.Currency)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, res)
}

// CapturePayPalOrder handles POST /transactional/paypal/capture-order
func (h *TransactionalHandler) CapturePayPalOrder(c *gin.Context) {
	var req capturePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, bindErrorMessage(err))
		return
	}

	input := req.OrderData.toInput(buyerID(c, req.OrderData.UserID))
	out, err := h.orders.CapturePayment(c.Request.Context(), req.OrderID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}
