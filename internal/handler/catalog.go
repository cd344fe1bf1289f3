package handler

import (
	"aether-be/internal/product"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	BaseHandler
	products product.Service
}

func NewCatalogHandler(products product.Service) *CatalogHandler {
	return &CatalogHandler{products: products}
}

// Create handles POST /catalog
func (h *CatalogHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, bindErrorMessage(err))
		return
	}

	p, err := h.products.Create(c.Request.Context(), product.NewProduct{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SKU:         req.SKU,
		Stock:       *req.Stock,
		Category:    req.Category,
		Images:      req.Images,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, p)
}

// List handles GET /catalog
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Get handles GET /catalog/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	p, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}
