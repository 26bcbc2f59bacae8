// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/TechxExplorer/Pro-Shop/internal/config"
	"github.com/TechxExplorer/Pro-Shop/internal/domain/cart"
	"github.com/TechxExplorer/Pro-Shop/internal/interfaces/http/middleware"
	"github.com/TechxExplorer/Pro-Shop/internal/interfaces/http/response"
	"github.com/TechxExplorer/Pro-Shop/internal/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CartHandler handles server-side cart endpoints. Authenticated requests
// operate on the user's database cart; anonymous requests operate on a
// Redis session cart identified by the X-Session-ID header.
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cart.NewService(db, redisClient, cfg),
		config:      cfg,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, sessionID, ok := h.identity(c)
	if !ok {
		return
	}

	resp, err := h.cartService.GetCart(c.Request.Context(), userID, sessionID)
	if err != nil {
		response.Error(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddToCart handles POST /cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, sessionID, ok := h.identity(c)
	if !ok {
		return
	}

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.config, apperror.BadRequest("Invalid cart data"))
		return
	}

	resp, err := h.cartService.AddToCart(c.Request.Context(), userID, sessionID, &req)
	if err != nil {
		response.Error(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RemoveFromCart handles PUT /cart/remove
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, sessionID, ok := h.identity(c)
	if !ok {
		return
	}

	var req cart.RemoveFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.config, apperror.BadRequest("Invalid cart data"))
		return
	}

	resp, err := h.cartService.RemoveFromCart(c.Request.Context(), userID, sessionID, &req)
	if err != nil {
		response.Error(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, sessionID, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.cartService.ClearCart(c.Request.Context(), userID, sessionID); err != nil {
		response.Error(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// identity resolves the cart owner: authenticated user ID when a valid
// token was presented, guest session ID otherwise
func (h *CartHandler) identity(c *gin.Context) (*uint, string, bool) {
	if userID, exists := middleware.GetUserIDFromContext(c); exists {
		return &userID, "", true
	}

	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		response.Error(c, h.config, apperror.Unauthorized("Not authorized, no token"))
		return nil, "", false
	}

	return nil, sessionID, true
}
