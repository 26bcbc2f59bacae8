// internal/domain/cart/entity.go
package cart

import (
	"time"

	"gorm.io/gorm"
)

// CartItem represents a cart line item stored in database for
// authenticated users. Name, image and price are snapshots taken when the
// item was added; later product edits do not change them.
type CartItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Image     string         `gorm:"size:500" json:"image"`
	Price     float64        `gorm:"not null" json:"price"`
	Qty       int            `gorm:"not null;default:1" json:"qty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// SessionCart represents a cart for guest users (stored in Redis)
type SessionCart struct {
	SessionID string            `json:"session_id"`
	Items     []SessionCartItem `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// SessionCartItem represents a cart line item for guest users
type SessionCartItem struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Price     float64   `json:"price"`
	Qty       int       `json:"qty"`
	AddedAt   time.Time `json:"added_at"`
}

// CartTotals represents calculated cart totals
type CartTotals struct {
	ItemCount     int     `json:"item_count"`     // Number of line items
	TotalQuantity int     `json:"total_quantity"` // Sum of all quantities
	TotalPrice    float64 `json:"total_price"`
}
