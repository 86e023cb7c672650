package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lavenshop/cart-service/internal/domain"
	"github.com/lavenshop/cart-service/internal/pricing"
	apperrors "github.com/lavenshop/cart-service/pkg/errors"
)

func TestCartRepository_RoundTrip(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	cart := domain.NewCart("sess-1")
	cart.Items = []domain.CartLineItem{
		{ID: domain.LineItemID("p1", "M", "black"), ProductID: "p1", Price: pricing.Formatted("150.000đ"), Size: "M", Color: "black", Quantity: 3},
	}
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)

	// Mutating the returned copy must not leak into the store.
	got.Items[0].Quantity = 99
	again, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 3, again.Items[0].Quantity)
}

func TestCartRepository_GetNotFound(t *testing.T) {
	repo := NewCartRepository()

	_, err := repo.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCartRepository_Delete(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.NewCart("sess-2")))
	require.NoError(t, repo.Delete(ctx, "sess-2"))

	_, err := repo.Get(ctx, "sess-2")
	require.Error(t, err)
}
