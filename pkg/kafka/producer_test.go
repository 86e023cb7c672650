package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	type payload struct {
		SessionID string `json:"session_id"`
		ItemCount int    `json:"item_count"`
	}

	event, err := NewEvent("storefront.cart.updated", "sess-1", "cart", "cart-service", payload{
		SessionID: "sess-1",
		ItemCount: 3,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "storefront.cart.updated", event.EventType)
	assert.Equal(t, "sess-1", event.AggregateID)
	assert.Equal(t, "cart", event.AggregateType)
	assert.Equal(t, "cart-service", event.Source)
	assert.Equal(t, 1, event.Version)
	assert.False(t, event.Timestamp.IsZero())

	var got payload
	require.NoError(t, event.UnmarshalData(&got))
	assert.Equal(t, 3, got.ItemCount)
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	event, err := NewEvent("storefront.cart.cleared", "sess-2", "cart", "cart-service", map[string]string{"session_id": "sess-2"})
	require.NoError(t, err)
	event.WithCorrelationID("corr-99")

	data, err := event.Marshal()
	require.NoError(t, err)

	got, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, got.EventID)
	assert.Equal(t, "corr-99", got.CorrelationID)
	assert.JSONEq(t, string(event.Data), string(got.Data))
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("bad", "x", "cart", "cart-service", json.RawMessage(`{invalid`))
	// json.RawMessage is passed through Marshal which validates it.
	require.Error(t, err)
}
