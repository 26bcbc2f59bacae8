// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/TechxExplorer/Pro-Shop/internal/domain/cart"
	"github.com/TechxExplorer/Pro-Shop/internal/domain/product"
	"github.com/TechxExplorer/Pro-Shop/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&user.User{},
		&product.Product{},
		&cart.CartItem{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email_lower ON users(lower(email))",
		"CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand)",
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_user_product ON cart_items(user_id, product_id)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// SeedInitialData seeds development users and the sample catalog. Seeding
// is skipped when users already exist.
func (m *Migration) SeedInitialData() error {
	var userCount int64
	if err := m.db.Model(&user.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	log.Println("Seeding initial data...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := []user.User{
		{Name: "Admin User", Email: "admin@example.com", Password: string(hashedPassword), IsAdmin: true},
		{Name: "Test User", Email: "user@example.com", Password: string(hashedPassword), IsAdmin: false},
	}
	if err := m.db.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	adminID := users[0].ID
	products := []product.Product{
		{
			Name:         "Xiaomi Redmi 8 Original",
			Description:  "A great smartphone with good features and battery life.",
			Price:        35.00,
			Image:        "/images/related-4.png",
			Category:     "Electronics",
			Brand:        "Xiaomi",
			CountInStock: 10,
			UserID:       adminID,
		},
		{
			Name:         "Brown Winter Coat",
			Description:  "Warm and stylish brown winter coat, perfect for cold weather.",
			Price:        75.00,
			Image:        "/images/related-1.png",
			Category:     "Apparel",
			Brand:        "Fashion Apparel",
			CountInStock: 5,
			UserID:       adminID,
		},
		{
			Name:         "Wireless Bluetooth Headset",
			Description:  "High-quality sound with comfortable fit and long battery life.",
			Price:        45.00,
			Image:        "/images/related-5.png",
			Category:     "Electronics",
			Brand:        "AudioTech",
			CountInStock: 15,
			UserID:       adminID,
		},
		{
			Name:         "Modern Ergonomic Office Chair",
			Description:  "Comfortable and supportive chair for long working hours.",
			Price:        120.00,
			Image:        "/images/related-6.jpg",
			Category:     "Furniture",
			Brand:        "ErgoHome",
			CountInStock: 3,
			UserID:       adminID,
		},
	}
	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Printf("Seeded %d users and %d products", len(users), len(products))
	return nil
}
