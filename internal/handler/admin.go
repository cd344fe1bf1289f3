package handler

import (
	"aether-be/internal/logger"
	"aether-be/internal/order"
	"aether-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	BaseHandler
	orders order.Service
}

func NewAdminHandler(orders order.Service) *AdminHandler {
	return &AdminHandler{orders: orders}
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	logger.FromCtx(ctx).Debug("dashboard stats requested",
		zap.String("admin", utils.GetUserEmailFromContext(ctx)),
	)

	stats, err := h.orders.DashboardStats(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
