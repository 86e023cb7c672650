package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lavenshop/cart-service/internal/pricing"
	apperrors "github.com/lavenshop/cart-service/pkg/errors"
)

var testPolicy = ShippingPolicy{FreeShippingThreshold: 300000, FlatFee: 30000}

func cartWithSubtotal(t *testing.T, subtotal int64) *Cart {
	t.Helper()
	cart := NewCart("sess-1")
	cart.Items = []CartLineItem{
		{ID: "a", Price: pricing.Amount(subtotal), Quantity: 1},
	}
	return cart
}

func TestSummarize_EmptyCart(t *testing.T) {
	_, err := Summarize(NewCart("sess-1"), testPolicy, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)

	_, err = Summarize(nil, testPolicy, 0)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)
}

func TestSummarize_BelowThreshold_ChargesFlatFee(t *testing.T) {
	summary, err := Summarize(cartWithSubtotal(t, 299999), testPolicy, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(299999), summary.Subtotal)
	assert.Equal(t, int64(30000), summary.ShippingFee)
	assert.Equal(t, int64(329999), summary.GrandTotal)
	assert.Equal(t, "VND", summary.Currency)
}

func TestSummarize_AtThreshold_FreeShipping(t *testing.T) {
	summary, err := Summarize(cartWithSubtotal(t, 300000), testPolicy, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.ShippingFee)
	assert.Equal(t, int64(300000), summary.GrandTotal)
}

func TestSummarize_MixedPrices(t *testing.T) {
	cart := NewCart("sess-1")
	cart.Items = []CartLineItem{
		{ID: "a", Price: pricing.Amount(100000), Quantity: 2},
		{ID: "b", Price: pricing.Formatted("297.000 VND"), Quantity: 1},
	}

	summary, err := Summarize(cart, testPolicy, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(497000), summary.Subtotal)
	assert.Equal(t, int64(0), summary.ShippingFee)
	assert.Equal(t, int64(497000), summary.GrandTotal)
}

func TestSummarize_DiscountClampedToSubtotal(t *testing.T) {
	summary, err := Summarize(cartWithSubtotal(t, 100000), testPolicy, 150000)
	require.NoError(t, err)

	assert.Equal(t, int64(100000), summary.Discount)
	// Grand total never goes negative: subtotal - discount + flat fee.
	assert.Equal(t, int64(30000), summary.GrandTotal)
}

func TestSummarize_NegativeDiscount(t *testing.T) {
	_, err := Summarize(cartWithSubtotal(t, 100000), testPolicy, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSummarize_MalformedPrice(t *testing.T) {
	cart := NewCart("sess-1")
	cart.Items = []CartLineItem{
		{ID: "a", Price: pricing.Formatted("???"), Quantity: 1},
	}

	_, err := Summarize(cart, testPolicy, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPrice)
}
