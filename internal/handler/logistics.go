package handler

import (
	"aether-be/internal/shipment"

	"github.com/gin-gonic/gin"
)

type LogisticsHandler struct {
	BaseHandler
	shipments shipment.Service
}

func NewLogisticsHandler(shipments shipment.Service) *LogisticsHandler {
	return &LogisticsHandler{shipments: shipments}
}

// Create handles POST /logistics
func (h *LogisticsHandler) Create(c *gin.Context) {
	var req createShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, bindErrorMessage(err))
		return
	}

	s, err := h.shipments.Create(c.Request.Context(), shipment.NewShipment{
		OrderID: req.OrderID,
		Address: req.Address,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, s)
}

// List handles GET /logistics
func (h *LogisticsHandler) List(c *gin.Context) {
	list, err := h.shipments.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// Get handles GET /logistics/:id
func (h *LogisticsHandler) Get(c *gin.Context) {
	s, err := h.shipments.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}
