package http

import (
	"log/slog"
	"net/http"

	"github.com/lavenshop/cart-service/internal/service"
	"github.com/lavenshop/cart-service/pkg/httputil"
	"github.com/lavenshop/cart-service/pkg/logger"
	"github.com/lavenshop/cart-service/pkg/validator"
)

// CheckoutHandler serves the checkout summary and order placement endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(svc *service.CheckoutService, l *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  l,
	}
}

// Summary handles GET /api/v1/cart/summary.
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sessionID := logger.SessionIDFromContext(r.Context())

	summary, err := h.service.Summary(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: summary})
}

// PlaceOrder handles POST /api/v1/checkout.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := logger.SessionIDFromContext(r.Context())

	var input service.PlaceOrderInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	placed, err := h.service.PlaceOrder(r.Context(), sessionID, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: placed})
}
