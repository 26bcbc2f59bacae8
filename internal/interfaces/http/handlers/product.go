// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/TechxExplorer/Pro-Shop/internal/config"
	"github.com/TechxExplorer/Pro-Shop/internal/domain/product"
	"github.com/TechxExplorer/Pro-Shop/internal/interfaces/http/middleware"
	"github.com/TechxExplorer/Pro-Shop/internal/interfaces/http/response"
	"github.com/TechxExplorer/Pro-Shop/internal/pkg/apperror"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	productService *product.Service
	config         *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(db *gorm.DB, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		productService: product.NewService(db, cfg),
		config:         cfg,
	}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var req product.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, h.config, apperror.BadRequest("Invalid query parameters"))
		return
	}

	products, err := h.productService.GetProducts(&req)
	if err != nil {
		response.Error(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	prod, err := h.productService.GetProduct(id)
	if err != nil {
		response.Error(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, prod)
}

// CreateProduct handles POST /products (admin). It creates a placeholder
// product owned by the caller, to be edited afterwards.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		response.Error(c, h.config, apperror.Unauthorized("Not authorized, no token"))
		return
	}

	prod, err := h.productService.CreateProduct(userID)
	if err != nil {
		response.Error(c, h.config, err)
		return
	}

	c.JSON(http.StatusCreated, prod)
}

// UpdateProduct handles PUT /products/:id (admin)
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	var req product.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.config, apperror.BadRequest("Invalid product data"))
		return
	}

	prod, err := h.productService.UpdateProduct(id, &req)
	if err != nil {
		response.Error(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, prod)
}

// DeleteProduct handles DELETE /products/:id (admin)
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		response.Error(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}

func (h *ProductHandler) productID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, h.config, apperror.BadRequest("Invalid product ID"))
		return 0, false
	}
	return uint(id), true
}
