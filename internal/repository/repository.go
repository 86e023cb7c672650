package repository

import (
	"context"

	"github.com/lavenshop/cart-service/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
// Each session owns exactly one durable record holding the serialized
// line-item sequence; Save overwrites it wholesale.
type CartRepository interface {
	// Get retrieves the cart persisted for the session.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing record for the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the session's cart record.
	Delete(ctx context.Context, sessionID string) error
}
