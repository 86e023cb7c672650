package event

import (
	"context"
	"log/slog"

	"github.com/lavenshop/cart-service/internal/domain"
	"github.com/lavenshop/cart-service/pkg/kafka"
	"github.com/lavenshop/cart-service/pkg/logger"
)

// Topics for storefront events.
const (
	TopicCartUpdated = "storefront.cart.updated"
	TopicCartCleared = "storefront.cart.cleared"
	TopicOrderPlaced = "storefront.order.placed"
)

// Event types.
const (
	TypeCartUpdated = "cart.updated"
	TypeCartCleared = "cart.cleared"
	TypeOrderPlaced = "order.placed"
)

const source = "cart-service"

// CartUpdatedData is the payload for cart.updated events.
type CartUpdatedData struct {
	SessionID string `json:"session_id"`
	ItemCount int    `json:"item_count"`
	LineItems int    `json:"line_items"`
}

// CartClearedData is the payload for cart.cleared events.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// OrderPlacedData is the payload for order.placed events.
type OrderPlacedData struct {
	OrderID    string `json:"order_id"`
	SessionID  string `json:"session_id"`
	GrandTotal int64  `json:"grand_total"`
	Currency   string `json:"currency"`
}

// Publisher sends cart lifecycle events to Kafka. Publishing is best
// effort: a broker failure is logged, never surfaced to the shopper.
type Publisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewPublisher creates an event publisher on top of a Kafka producer.
func NewPublisher(producer *kafka.Producer, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		logger:   logger,
	}
}

// CartUpdated announces that a session's cart contents changed.
func (p *Publisher) CartUpdated(ctx context.Context, cart *domain.Cart) {
	p.publish(ctx, TopicCartUpdated, TypeCartUpdated, cart.SessionID, "cart", CartUpdatedData{
		SessionID: cart.SessionID,
		ItemCount: cart.ItemCount(),
		LineItems: len(cart.Items),
	})
}

// CartCleared announces that a session's cart was emptied.
func (p *Publisher) CartCleared(ctx context.Context, sessionID string) {
	p.publish(ctx, TopicCartCleared, TypeCartCleared, sessionID, "cart", CartClearedData{
		SessionID: sessionID,
	})
}

// OrderPlaced announces a completed checkout.
func (p *Publisher) OrderPlaced(ctx context.Context, data OrderPlacedData) {
	p.publish(ctx, TopicOrderPlaced, TypeOrderPlaced, data.OrderID, "order", data)
}

func (p *Publisher) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, data any) {
	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}

	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt.WithCorrelationID(cid)
	}

	if err := p.producer.Publish(ctx, topic, evt); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event",
			slog.String("topic", topic),
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}
