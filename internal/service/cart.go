package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lavenshop/cart-service/internal/catalog"
	"github.com/lavenshop/cart-service/internal/domain"
	"github.com/lavenshop/cart-service/internal/repository"
	apperrors "github.com/lavenshop/cart-service/pkg/errors"
)

// Quantity and size bounds for a single cart.
const (
	MaxQuantityPerItem = 100
	MaxItemsPerCart    = 50
)

// CatalogClient fetches product snapshots for items being added.
type CatalogClient interface {
	GetProduct(ctx context.Context, productID string) (*catalog.Product, error)
}

// EventPublisher announces cart lifecycle changes. Implementations must not
// fail the calling operation.
type EventPublisher interface {
	CartUpdated(ctx context.Context, cart *domain.Cart)
	CartCleared(ctx context.Context, sessionID string)
}

// AddItemInput carries a shopper's request to add a product variant.
// Quantity bounds are checked in AddItem so the caller sees the
// INVALID_QUANTITY code instead of a generic validation failure.
type AddItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// CartService implements the cart operations. Every operation hydrates the
// session's cart from the repository, applies the change in memory, and
// persists the whole cart back.
type CartService struct {
	repo    repository.CartRepository
	catalog CatalogClient
	events  EventPublisher
	logger  *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, catalogClient CatalogClient, events EventPublisher, logger *slog.Logger) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalogClient,
		events:  events,
		logger:  logger,
	}
}

// GetCart returns the session's cart. A session with no persisted record
// gets an empty cart; the record is only created once an item is added.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(sessionID), nil
		}
		s.logger.ErrorContext(ctx, "failed to load cart",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.ServiceUnavailable("cart storage unavailable")
	}
	return cart, nil
}

// persist saves the cart and maps a storage failure to a 503. The in-memory
// mutation is already applied at this point; it is surfaced, not rolled back.
func (s *CartService) persist(ctx context.Context, cart *domain.Cart) error {
	if err := s.repo.Save(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist cart",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
		return apperrors.ServiceUnavailable("cart storage unavailable")
	}
	return nil
}

// AddItem adds a product variant to the cart. Adding a variant already in
// the cart increments that line's quantity instead of creating a duplicate
// row. It returns the updated cart and the line item the add landed on.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*domain.Cart, *domain.CartLineItem, error) {
	if input.Quantity < 1 {
		return nil, nil, apperrors.InvalidQuantity(input.Quantity)
	}
	if input.Quantity > MaxQuantityPerItem {
		return nil, nil, apperrors.InvalidInput(fmt.Sprintf("quantity exceeds maximum of %d per item", MaxQuantityPerItem))
	}

	product, err := s.catalog.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if !product.HasVariant(input.Size, input.Color) {
		return nil, nil, apperrors.InvalidInput(fmt.Sprintf("product %s has no variant size=%q color=%q", input.ProductID, input.Size, input.Color))
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	itemID := domain.LineItemID(input.ProductID, input.Size, input.Color)
	idx := cart.FindItemIndex(itemID)
	if idx >= 0 {
		merged := cart.Items[idx].Quantity + input.Quantity
		if merged > MaxQuantityPerItem {
			return nil, nil, apperrors.InvalidInput(fmt.Sprintf("quantity exceeds maximum of %d per item", MaxQuantityPerItem))
		}
		cart.Items[idx].Quantity = merged
	} else {
		if len(cart.Items) >= MaxItemsPerCart {
			return nil, nil, apperrors.InvalidInput(fmt.Sprintf("cart holds at most %d distinct items", MaxItemsPerCart))
		}
		cart.Items = append(cart.Items, domain.CartLineItem{
			ID:        itemID,
			ProductID: product.ID,
			Name:      product.Name,
			ImageURL:  product.ImageURL,
			Price:     product.Price,
			Size:      input.Size,
			Color:     input.Color,
			Quantity:  input.Quantity,
		})
		idx = len(cart.Items) - 1
	}
	cart.UpdatedAt = time.Now().UTC()

	if err := s.persist(ctx, cart); err != nil {
		return nil, nil, err
	}

	s.events.CartUpdated(ctx, cart)
	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.String("item_id", itemID),
		slog.Int("quantity", cart.Items[idx].Quantity),
	)

	return cart, &cart.Items[idx], nil
}

// RemoveItem removes a line item from the cart. Removing an id that is not
// in the cart leaves the cart untouched and succeeds.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(itemID)
	if idx < 0 {
		return cart, nil
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	cart.UpdatedAt = time.Now().UTC()

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.events.CartUpdated(ctx, cart)
	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.String("item_id", itemID),
	)

	return cart, nil
}

// SetQuantity replaces a line item's quantity. The item must exist and the
// quantity must stay within bounds; the cart is left unchanged otherwise.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, apperrors.InvalidQuantity(quantity)
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity exceeds maximum of %d per item", MaxQuantityPerItem))
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(itemID)
	if idx < 0 {
		return nil, apperrors.ItemNotFound(itemID)
	}

	cart.Items[idx].Quantity = quantity
	cart.UpdatedAt = time.Now().UTC()

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.events.CartUpdated(ctx, cart)
	return cart, nil
}

// Clear drops the session's cart record.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return apperrors.ServiceUnavailable("cart storage unavailable")
	}

	s.events.CartCleared(ctx, sessionID)
	s.logger.InfoContext(ctx, "cart cleared", slog.String("session_id", sessionID))
	return nil
}

// Subtotal returns the cart total in VND for the session.
func (s *CartService) Subtotal(ctx context.Context, sessionID string) (int64, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return cart.Subtotal()
}

// ItemCount returns the total unit count for the session's cart.
func (s *CartService) ItemCount(ctx context.Context, sessionID string) (int, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return cart.ItemCount(), nil
}
