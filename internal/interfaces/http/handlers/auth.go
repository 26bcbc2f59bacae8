// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"log"
	"net/http"

	"github.com/TechxExplorer/Pro-Shop/internal/config"
	"github.com/TechxExplorer/Pro-Shop/internal/domain/cart"
	"github.com/TechxExplorer/Pro-Shop/internal/domain/user"
	"github.com/TechxExplorer/Pro-Shop/internal/interfaces/http/middleware"
	"github.com/TechxExplorer/Pro-Shop/internal/interfaces/http/response"
	"github.com/TechxExplorer/Pro-Shop/internal/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	userService *user.Service
	cartService *cart.Service
	config      *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: user.NewService(db, cfg),
		cartService: cart.NewService(db, redisClient, cfg),
		config:      cfg,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.config, apperror.BadRequest("Invalid user data"))
		return
	}

	resp, err := h.userService.Register(&req)
	if err != nil {
		response.Error(c, h.config, err)
		return
	}

	h.mergeGuestCart(c, resp.ID)

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.config, apperror.BadRequest("Invalid email or password"))
		return
	}

	resp, err := h.userService.Login(&req)
	if err != nil {
		response.Error(c, h.config, err)
		return
	}

	h.mergeGuestCart(c, resp.ID)

	c.JSON(http.StatusOK, resp)
}

// GetProfile handles GET /auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		response.Error(c, h.config, apperror.Unauthorized("Not authorized, no token"))
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		response.Error(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// mergeGuestCart folds a guest session cart into the user cart after a
// successful sign-in. A merge failure never fails the sign-in.
func (h *AuthHandler) mergeGuestCart(c *gin.Context, userID uint) {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		return
	}
	if err := h.cartService.MergeGuestCartToUser(c.Request.Context(), userID, sessionID); err != nil {
		log.Printf("Warning: guest cart merge failed for user %d: %v", userID, err)
	}
}
