// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents the product entity
type Product struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null;size:255" json:"name"`
	Image        string         `gorm:"not null;size:500" json:"image"`
	Brand        string         `gorm:"not null;size:255" json:"brand"`
	Category     string         `gorm:"not null;size:255" json:"category"`
	Description  string         `gorm:"type:text" json:"description"`
	Price        float64        `gorm:"not null;default:0" json:"price"`
	CountInStock int            `gorm:"not null;default:0" json:"count_in_stock"`
	Rating       float64        `gorm:"not null;default:0" json:"rating"`
	NumReviews   int            `gorm:"not null;default:0" json:"num_reviews"`
	UserID       uint           `gorm:"not null;index" json:"user_id"` // Admin who created the product
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// IsInStock reports whether the product can be added to a cart
func (p *Product) IsInStock() bool {
	return p.CountInStock > 0
}
