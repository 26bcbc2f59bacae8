// internal/storefront/cart.go
package storefront

import (
	"encoding/json"
)

const cartStorageKey = "cartItems"

// LineItem is one product-quantity pairing within the cart. UnitPrice is a
// snapshot of the product price at the time the item was added.
type LineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	Material  string  `json:"material,omitempty"`
}

// CartProduct is the product view the cart needs when adding an item
type CartProduct struct {
	ID       string
	Name     string
	Price    float64
	Image    string
	Size     string
	Color    string
	Material string
}

// CartTotals holds derived cart values, recomputed from the current items on
// every call
type CartTotals struct {
	TotalItemCount int
	TotalPrice     float64
}

// CartStore maintains the client-side view of what the user intends to buy.
// Items are ordered by insertion and keyed by product ID, at most one line
// item per product. Every mutation synchronously persists the full item list.
type CartStore struct {
	storage Storage
	items   []LineItem
}

// NewCartStore creates a cart store, restoring persisted items. Malformed or
// missing persisted state yields an empty cart, not an error.
func NewCartStore(storage Storage) *CartStore {
	s := &CartStore{storage: storage}

	data, err := storage.Read(cartStorageKey)
	if err == nil {
		var items []LineItem
		if json.Unmarshal(data, &items) == nil {
			s.items = items
		}
	}

	return s
}

// AddItem adds a product to the cart. An existing line item for the same
// product gets its quantity incremented by 1 and keeps its original price
// snapshot; otherwise a new line item with quantity 1 is appended. No stock
// check happens here.
func (s *CartStore) AddItem(p CartProduct) error {
	for i := range s.items {
		if s.items[i].ProductID == p.ID {
			s.items[i].Quantity++
			return s.persist()
		}
	}

	s.items = append(s.items, LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
		Image:     p.Image,
		Size:      p.Size,
		Color:     p.Color,
		Material:  p.Material,
	})
	return s.persist()
}

// RemoveItem deletes the line item for productID. Removing an absent item is
// a no-op, not an error.
func (s *CartStore) RemoveItem(productID string) error {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return s.persist()
}

// UpdateQuantity sets the quantity of the line item for productID. A new
// quantity of zero or less removes the item entirely, same post-condition
// as RemoveItem.
func (s *CartStore) UpdateQuantity(productID string, newQuantity int) error {
	if newQuantity <= 0 {
		return s.RemoveItem(productID)
	}

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = newQuantity
			break
		}
	}
	return s.persist()
}

// Clear empties the cart
func (s *CartStore) Clear() error {
	s.items = nil
	return s.persist()
}

// Items returns a copy of the current line items in insertion order
func (s *CartStore) Items() []LineItem {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Totals recomputes the derived totals from the current items
func (s *CartStore) Totals() CartTotals {
	var totals CartTotals
	for _, item := range s.items {
		totals.TotalItemCount += item.Quantity
		totals.TotalPrice += item.UnitPrice * float64(item.Quantity)
	}
	return totals
}

func (s *CartStore) persist() error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	return s.storage.Write(cartStorageKey, data)
}
