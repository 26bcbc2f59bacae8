// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/TechxExplorer/Pro-Shop/internal/config"
	"github.com/TechxExplorer/Pro-Shop/internal/interfaces/http/handlers"
	"github.com/TechxExplorer/Pro-Shop/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes wires all API route groups
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	setupAuthRoutes(rg, db, redisClient, cfg)
	setupProductRoutes(rg, db, cfg)
	setupCartRoutes(rg, db, redisClient, cfg)
}

// setupAuthRoutes sets up authentication related routes
func setupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, redisClient, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.RequireAuth(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
		}
	}
}

// setupProductRoutes sets up product browsing and admin CRUD routes
func setupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)

		// Mutations require an authenticated admin. The admin check runs
		// server-side on every call even though the client gates the same
		// views locally.
		admin := products.Group("")
		admin.Use(middleware.RequireAuth(cfg))
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("", productHandler.CreateProduct)
			admin.PUT("/:id", productHandler.UpdateProduct)
			admin.DELETE("/:id", productHandler.DeleteProduct)
		}
	}
}

// setupCartRoutes sets up server-side cart routes for users and guests
func setupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuth(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("", cartHandler.AddToCart)
		cart.PUT("/remove", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}
}
