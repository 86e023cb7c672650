package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lavenshop/cart-service/internal/domain"
	"github.com/lavenshop/cart-service/internal/event"
	apperrors "github.com/lavenshop/cart-service/pkg/errors"
	"github.com/lavenshop/cart-service/pkg/httpclient"
)

// OrderDoer is the subset of the HTTP client used to submit orders.
type OrderDoer interface {
	Post(ctx context.Context, url string, contentType string, body io.Reader) (*http.Response, error)
}

// OrderPublisher announces placed orders.
type OrderPublisher interface {
	OrderPlaced(ctx context.Context, data event.OrderPlacedData)
}

// PlaceOrderInput carries the shopper's checkout form.
type PlaceOrderInput struct {
	CustomerName    string `json:"customer_name" validate:"required,min=2,max=120"`
	Phone           string `json:"phone" validate:"required,min=8,max=20"`
	ShippingAddress string `json:"shipping_address" validate:"required,min=10,max=500"`
	PaymentMethod   string `json:"payment_method" validate:"required,oneof=cod bank_transfer"`
	Note            string `json:"note" validate:"max=500"`
}

// orderRequest is the payload submitted to the order service.
type orderRequest struct {
	OrderID         string                 `json:"order_id"`
	SessionID       string                 `json:"session_id"`
	CustomerName    string                 `json:"customer_name"`
	Phone           string                 `json:"phone"`
	ShippingAddress string                 `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
	Note            string                 `json:"note,omitempty"`
	Items           []domain.CartLineItem  `json:"items"`
	Summary         domain.CheckoutSummary `json:"summary"`
}

// PlacedOrder is returned to the shopper after a successful checkout.
type PlacedOrder struct {
	OrderID string                  `json:"order_id"`
	Summary *domain.CheckoutSummary `json:"summary"`
}

// CheckoutService derives checkout money figures and places orders.
type CheckoutService struct {
	carts    *CartService
	policy   domain.ShippingPolicy
	orders   OrderDoer
	orderURL string
	events   OrderPublisher
	logger   *slog.Logger
}

// NewCheckoutService creates a new checkout service. The shipping policy is
// injected; the service never invents fee numbers of its own.
func NewCheckoutService(carts *CartService, policy domain.ShippingPolicy, orders OrderDoer, orderURL string, events OrderPublisher, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		policy:   policy,
		orders:   orders,
		orderURL: orderURL,
		events:   events,
		logger:   logger,
	}
}

// Summary derives the money figures for the session's current cart.
func (s *CheckoutService) Summary(ctx context.Context, sessionID string) (*domain.CheckoutSummary, error) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return domain.Summarize(cart, s.policy, 0)
}

// PlaceOrder submits the session's cart as an order. The cart is cleared
// only after the order service acknowledges the submission.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, input PlaceOrderInput) (*PlacedOrder, error) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary, err := domain.Summarize(cart, s.policy, 0)
	if err != nil {
		return nil, err
	}

	orderID := uuid.New().String()
	payload, err := json.Marshal(orderRequest{
		OrderID:         orderID,
		SessionID:       sessionID,
		CustomerName:    input.CustomerName,
		Phone:           input.Phone,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		Note:            input.Note,
		Items:           cart.Items,
		Summary:         *summary,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	resp, err := s.orders.Post(ctx, s.orderURL+"/api/v1/orders", "application/json", bytes.NewReader(payload))
	if err != nil {
		if errors.Is(err, httpclient.ErrCircuitOpen) {
			return nil, apperrors.ServiceUnavailable("order service temporarily unavailable")
		}
		return nil, apperrors.ServiceUnavailable(fmt.Sprintf("order service unreachable: %v", err))
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "order-service")
	}
	_ = resp.Body.Close()

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// The order is already accepted; a stale cart is recoverable,
		// a lost order is not.
		s.logger.ErrorContext(ctx, "failed to clear cart after order placement",
			slog.String("session_id", sessionID),
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	s.events.OrderPlaced(ctx, event.OrderPlacedData{
		OrderID:    orderID,
		SessionID:  sessionID,
		GrandTotal: summary.GrandTotal,
		Currency:   summary.Currency,
	})

	s.logger.InfoContext(ctx, "order placed",
		slog.String("session_id", sessionID),
		slog.String("order_id", orderID),
		slog.Int64("grand_total", summary.GrandTotal),
	)

	return &PlacedOrder{OrderID: orderID, Summary: summary}, nil
}
