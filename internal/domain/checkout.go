package domain

import (
	apperrors "github.com/lavenshop/cart-service/pkg/errors"
)

// ShippingPolicy is the single source of truth for shipping fees. The
// storefront pages historically hard-coded their own free-shipping
// thresholds; the policy is injected configuration precisely so that no
// caller carries its own number.
type ShippingPolicy struct {
	// FreeShippingThreshold is the subtotal (VND) at or above which
	// shipping is free.
	FreeShippingThreshold int64 `json:"free_shipping_threshold"`
	// FlatFee is the shipping fee (VND) charged below the threshold.
	FlatFee int64 `json:"flat_fee"`
}

// CheckoutSummary is the read-only money projection shown on the cart and
// checkout pages.
type CheckoutSummary struct {
	Subtotal    int64  `json:"subtotal"`
	ShippingFee int64  `json:"shipping_fee"`
	Discount    int64  `json:"discount"`
	GrandTotal  int64  `json:"grand_total"`
	Currency    string `json:"currency"`
}

// Summarize derives the checkout money figures from the cart's current
// snapshot. It fails with EmptyCart on a cart with zero line items rather
// than returning a zero total a checkout page could submit as an order.
// The discount is supplied by the caller (zero when no promotion applies)
// and is clamped to the subtotal so the grand total never goes negative.
func Summarize(c *Cart, policy ShippingPolicy, discount int64) (*CheckoutSummary, error) {
	if c == nil || len(c.Items) == 0 {
		return nil, apperrors.EmptyCart()
	}
	if discount < 0 {
		return nil, apperrors.InvalidInput("discount must not be negative")
	}

	subtotal, err := c.Subtotal()
	if err != nil {
		return nil, err
	}

	if discount > subtotal {
		discount = subtotal
	}

	var shippingFee int64
	if subtotal < policy.FreeShippingThreshold {
		shippingFee = policy.FlatFee
	}

	return &CheckoutSummary{
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Discount:    discount,
		GrandTotal:  subtotal - discount + shippingFee,
		Currency:    c.Currency,
	}, nil
}
