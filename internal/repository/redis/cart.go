package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lavenshop/cart-service/internal/domain"
	apperrors "github.com/lavenshop/cart-service/pkg/errors"
)

const keyPrefix = "cart:"

// SchemaVersion is the version of the persisted cart record. Bump it when
// the serialized layout changes; Get rejects records written by a newer
// schema instead of misreading them.
const SchemaVersion = 1

// storedCart is the durable envelope around the cart. The version field
// exists from day one so a future layout change can migrate instead of
// losing carts.
type storedCart struct {
	SchemaVersion int          `json:"schema_version"`
	Cart          *domain.Cart `json:"cart"`
}

// CartRepository implements repository.CartRepository using Redis.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository. Records
// expire after ttl; every Save refreshes the clock.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the cart persisted for the session.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	key := keyPrefix + sessionID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", sessionID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var stored storedCart
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("unmarshal cart record: %w", err)
	}
	if stored.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("cart record for session %s has schema version %d, this build reads up to %d",
			sessionID, stored.SchemaVersion, SchemaVersion)
	}
	if stored.Cart == nil {
		return nil, fmt.Errorf("cart record for session %s has no cart payload", sessionID)
	}

	return stored.Cart, nil
}

// Save persists a cart wholesale with the configured TTL.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	key := keyPrefix + cart.SessionID

	data, err := json.Marshal(storedCart{
		SchemaVersion: SchemaVersion,
		Cart:          cart,
	})
	if err != nil {
		return fmt.Errorf("marshal cart record: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}

// Delete removes the session's cart record.
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	key := keyPrefix + sessionID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}

	return nil
}
