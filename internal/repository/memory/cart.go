package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/lavenshop/cart-service/internal/domain"
	apperrors "github.com/lavenshop/cart-service/pkg/errors"
)

// CartRepository is an in-memory cart store for local development and tests.
// Carts are deep-copied on the way in and out so callers cannot mutate
// stored state through aliased slices.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewCartRepository creates an empty in-memory cart repository.
func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts: make(map[string][]byte),
	}
}

func (r *CartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.RLock()
	data, ok := r.carts[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, apperrors.NotFound("cart", sessionID)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.carts[cart.SessionID] = data
	r.mu.Unlock()
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.carts, sessionID)
	r.mu.Unlock()
	return nil
}
