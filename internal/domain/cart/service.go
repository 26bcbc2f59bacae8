// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/TechxExplorer/Pro-Shop/internal/config"
	"github.com/TechxExplorer/Pro-Shop/internal/domain/product"
	"github.com/TechxExplorer/Pro-Shop/internal/pkg/apperror"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const guestCartTTL = 24 * time.Hour

// Service handles cart business logic. Authenticated carts live in the
// database keyed by user; guest carts live in Redis keyed by session ID.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// CartItemResponse represents a cart line item in API responses
type CartItemResponse struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// CartResponse represents a shopping cart with items and totals
type CartResponse struct {
	UserID    *uint              `json:"user_id,omitempty"`
	SessionID string             `json:"session_id,omitempty"`
	Items     []CartItemResponse `json:"items"`
	Totals    CartTotals         `json:"totals"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Qty       int  `json:"qty" binding:"required,min=1"`
}

// RemoveFromCartRequest represents a request to decrement or drop a line
// item. A zero QtyToRemove removes the line item entirely.
type RemoveFromCartRequest struct {
	ProductID   uint `json:"product_id" binding:"required"`
	QtyToRemove int  `json:"qty_to_remove"`
}

// GetCart retrieves the cart for a user or guest session. A missing cart is
// an empty cart, not an error.
func (s *Service) GetCart(ctx context.Context, userID *uint, sessionID string) (*CartResponse, error) {
	var items []CartItemResponse

	if userID != nil {
		var dbItems []CartItem
		if err := s.db.Where("user_id = ?", *userID).Order("created_at ASC").Find(&dbItems).Error; err != nil {
			return nil, apperror.Internal(err)
		}

		items = make([]CartItemResponse, len(dbItems))
		for i, item := range dbItems {
			items[i] = CartItemResponse{
				ProductID: item.ProductID,
				Name:      item.Name,
				Image:     item.Image,
				Price:     item.Price,
				Qty:       item.Qty,
			}
		}
	} else {
		sessionCart, err := s.getGuestCart(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		items = make([]CartItemResponse, len(sessionCart.Items))
		for i, item := range sessionCart.Items {
			items[i] = CartItemResponse{
				ProductID: item.ProductID,
				Name:      item.Name,
				Image:     item.Image,
				Price:     item.Price,
				Qty:       item.Qty,
			}
		}
	}

	return &CartResponse{
		UserID:    userID,
		SessionID: sessionID,
		Items:     items,
		Totals:    calculateTotals(items),
	}, nil
}

// AddToCart adds a product to the cart or increments an existing line item.
// The product's current price is snapshotted onto the line item.
func (s *Service) AddToCart(ctx context.Context, userID *uint, sessionID string, req *AddToCartRequest) (*CartResponse, error) {
	var prod product.Product
	result := s.db.Where("id = ?", req.ProductID).First(&prod)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Product not found")
		}
		return nil, apperror.Internal(result.Error)
	}

	if prod.CountInStock < req.Qty {
		return nil, apperror.BadRequest("Not enough stock available")
	}

	if userID != nil {
		if err := s.addToUserCart(*userID, &prod, req.Qty); err != nil {
			return nil, err
		}
	} else {
		if err := s.addToGuestCart(ctx, sessionID, &prod, req.Qty); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID, sessionID)
}

// RemoveFromCart decrements a line item by QtyToRemove, dropping it when the
// remaining quantity would reach zero or when no quantity is given
func (s *Service) RemoveFromCart(ctx context.Context, userID *uint, sessionID string, req *RemoveFromCartRequest) (*CartResponse, error) {
	if userID != nil {
		if err := s.removeFromUserCart(*userID, req.ProductID, req.QtyToRemove); err != nil {
			return nil, err
		}
	} else {
		if err := s.removeFromGuestCart(ctx, sessionID, req.ProductID, req.QtyToRemove); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID, sessionID)
}

// ClearCart removes all items from the cart
func (s *Service) ClearCart(ctx context.Context, userID *uint, sessionID string) error {
	if userID != nil {
		if err := s.db.Where("user_id = ?", *userID).Delete(&CartItem{}).Error; err != nil {
			return apperror.Internal(err)
		}
		return nil
	}

	if err := s.redisClient.Del(ctx, guestCartKey(sessionID)).Err(); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// MergeGuestCartToUser merges a guest cart into the user cart on login
func (s *Service) MergeGuestCartToUser(ctx context.Context, userID uint, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	guestCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil || len(guestCart.Items) == 0 {
		return nil // No guest cart to merge
	}

	for _, guestItem := range guestCart.Items {
		var existing CartItem
		result := s.db.Where("user_id = ? AND product_id = ?", userID, guestItem.ProductID).First(&existing)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			newItem := CartItem{
				UserID:    userID,
				ProductID: guestItem.ProductID,
				Name:      guestItem.Name,
				Image:     guestItem.Image,
				Price:     guestItem.Price,
				Qty:       guestItem.Qty,
			}
			if err := s.db.Create(&newItem).Error; err != nil {
				return apperror.Internal(err)
			}
		} else if result.Error == nil {
			existing.Qty += guestItem.Qty
			if err := s.db.Save(&existing).Error; err != nil {
				return apperror.Internal(err)
			}
		} else {
			return apperror.Internal(result.Error)
		}
	}

	return s.ClearCart(ctx, nil, sessionID)
}

// Private helper methods

func (s *Service) addToUserCart(userID uint, prod *product.Product, qty int) error {
	var existing CartItem
	result := s.db.Where("user_id = ? AND product_id = ?", userID, prod.ID).First(&existing)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		newItem := CartItem{
			UserID:    userID,
			ProductID: prod.ID,
			Name:      prod.Name,
			Image:     prod.Image,
			Price:     prod.Price,
			Qty:       qty,
		}
		if err := s.db.Create(&newItem).Error; err != nil {
			return apperror.Internal(err)
		}
		return nil
	} else if result.Error != nil {
		return apperror.Internal(result.Error)
	}

	existing.Qty += qty
	if err := s.db.Save(&existing).Error; err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *Service) addToGuestCart(ctx context.Context, sessionID string, prod *product.Product, qty int) error {
	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return err
	}

	found := false
	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID == prod.ID {
			sessionCart.Items[i].Qty += qty
			found = true
			break
		}
	}

	if !found {
		sessionCart.Items = append(sessionCart.Items, SessionCartItem{
			ProductID: prod.ID,
			Name:      prod.Name,
			Image:     prod.Image,
			Price:     prod.Price,
			Qty:       qty,
			AddedAt:   time.Now().UTC(),
		})
	}

	sessionCart.UpdatedAt = time.Now().UTC()
	return s.saveGuestCart(ctx, sessionID, sessionCart)
}

func (s *Service) removeFromUserCart(userID, productID uint, qtyToRemove int) error {
	var existing CartItem
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Item not found in cart")
		}
		return apperror.Internal(result.Error)
	}

	if qtyToRemove > 0 && existing.Qty > qtyToRemove {
		existing.Qty -= qtyToRemove
		if err := s.db.Save(&existing).Error; err != nil {
			return apperror.Internal(err)
		}
		return nil
	}

	if err := s.db.Delete(&existing).Error; err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *Service) removeFromGuestCart(ctx context.Context, sessionID string, productID uint, qtyToRemove int) error {
	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return err
	}

	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID != productID {
			continue
		}

		if qtyToRemove > 0 && sessionCart.Items[i].Qty > qtyToRemove {
			sessionCart.Items[i].Qty -= qtyToRemove
		} else {
			sessionCart.Items = append(sessionCart.Items[:i], sessionCart.Items[i+1:]...)
		}

		sessionCart.UpdatedAt = time.Now().UTC()
		return s.saveGuestCart(ctx, sessionID, sessionCart)
	}

	return apperror.NotFound("Item not found in cart")
}

func (s *Service) getGuestCart(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, apperror.BadRequest("Session ID required for guest cart")
	}

	cartData, err := s.redisClient.Get(ctx, guestCartKey(sessionID)).Result()
	if err == redis.Nil {
		// Cart doesn't exist, return empty cart
		now := time.Now().UTC()
		return &SessionCart{
			SessionID: sessionID,
			Items:     []SessionCartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	} else if err != nil {
		return nil, apperror.Internal(err)
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(cartData), &sessionCart); err != nil {
		return nil, apperror.Internal(err)
	}

	return &sessionCart, nil
}

func (s *Service) saveGuestCart(ctx context.Context, sessionID string, cart *SessionCart) error {
	cartData, err := json.Marshal(cart)
	if err != nil {
		return apperror.Internal(err)
	}

	if err := s.redisClient.Set(ctx, guestCartKey(sessionID), cartData, guestCartTTL).Err(); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func guestCartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func calculateTotals(items []CartItemResponse) CartTotals {
	var totals CartTotals

	totals.ItemCount = len(items)
	for _, item := range items {
		totals.TotalQuantity += item.Qty
		totals.TotalPrice += item.Price * float64(item.Qty)
	}

	return totals
}
