package handler

import (
	"net/http"

	"aether-be/internal/middleware"
	"aether-be/internal/order"
	"aether-be/internal/product"
	"aether-be/internal/shipment"
	"aether-be/internal/user"

	"github.com/gin-gonic/gin"
)

type Services struct {
	Products  product.Service
	Orders    order.Service
	Shipments shipment.Service
	Users     user.Service
}

// NewRouter builds the REST surface. Request ids, access logs, CORS, auth
// and rate limiting are applied around the engine by the caller.
func NewRouter(svcs Services, secureCookies bool) *gin.Engine {
	RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	catalog := NewCatalogHandler(svcs.Products)
	g := r.Group("/catalog")
	{
		g.POST("", catalog.Create)
		g.GET("", catalog.List)
		g.GET("/:id", catalog.Get)
	}

	tx := NewTransactionalHandler(svcs.Orders)
	g = r.Group("/transactional")
	{
		g.POST("", tx.Create)
		g.GET("", tx.List)
		g.GET("/:id", tx.Get)
		g.PATCH("/:id/cancel", tx.Cancel)
		g.POST("/paypal/create-order", tx.CreatePayPalOrder)
		g.POST("/paypal/capture-order", tx.CapturePayPalOrder)
	}

	logistics := NewLogisticsHandler(svcs.Shipments)
	g = r.Group("/logistics")
	{
		g.POST("", logistics.Create)
		g.GET("", logistics.List)
		g.GET("/:id", logistics.Get)
	}

	authH := NewAuthHandler(svcs.Users, secureCookies)
	g = r.Group("/auth")
	{
		g.POST("/login", authH.Login)
		g.POST("/register", authH.Register)
	}

	admin := NewAdminHandler(svcs.Orders)
	g = r.Group("/admin", fromHTTP(middleware.RequireAdmin))
	{
		g.GET("/stats", admin.Stats)
	}

	return r
}

// fromHTTP adapts a net/http middleware to gin. The chain stops when the
// middleware does not call through.
func fromHTTP(mw func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		passed := false
		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		if !passed {
			c.Abort()
		}
	}
}
