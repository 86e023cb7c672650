package domain

import (
	"strings"
	"time"

	"github.com/lavenshop/cart-service/internal/pricing"
)

// Currency is the only currency the storefront trades in. VND has no
// decimal subdivision, so amounts are plain integers.
const Currency = "VND"

// Cart represents a shopper's cart. Items keep their insertion order; the
// storefront renders them in that order.
type Cart struct {
	SessionID string         `json:"session_id"`
	Items     []CartLineItem `json:"items"`
	Currency  string         `json:"currency"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CartLineItem is one row in the cart: a specific product variant and its
// quantity. Name, image, and price are snapshotted from the catalog when
// the item is added and never re-fetched; a later catalog change does not
// touch existing line items.
type CartLineItem struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Name      string           `json:"name"`
	ImageURL  string           `json:"image_url,omitempty"`
	Price     pricing.RawPrice `json:"price"`
	Size      string           `json:"size"`
	Color     string           `json:"color"`
	Quantity  int              `json:"quantity"`
}

// LineItemID derives the deterministic identity of a line item from its
// variant combination. Two adds of the same product, size, and color always
// address the same line item.
func LineItemID(productID, size, color string) string {
	return strings.Join([]string{productID, size, color}, ":")
}

// NewCart creates an empty cart for the given session.
func NewCart(sessionID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		SessionID: sessionID,
		Items:     []CartLineItem{},
		Currency:  Currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindItemIndex returns the index of the line item with the given id, or -1
// if no such item exists.
func (c *Cart) FindItemIndex(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// ItemCount returns the total number of units in the cart, the value shown
// on the cart badge.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal computes the cart total in VND by normalizing each stored price
// at read time. A malformed stored price surfaces as an error to the
// caller; it is never swallowed into a wrong total.
func (c *Cart) Subtotal() (int64, error) {
	var total int64
	for _, item := range c.Items {
		unit, err := item.Price.Normalize()
		if err != nil {
			return 0, err
		}
		total += unit * int64(item.Quantity)
	}
	return total, nil
}
