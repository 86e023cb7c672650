package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lavenshop/cart-service/pkg/errors"
	"github.com/lavenshop/cart-service/pkg/httpclient"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	doer := httpclient.New(httpclient.Config{
		Timeout:         5 * time.Second,
		MaxRetries:      0,
		RetryWaitMin:    time.Millisecond,
		RetryWaitMax:    time.Millisecond,
		MaxConnsPerHost: 10,
	})
	return NewClient(srv.URL, doer)
}

func TestClient_GetProduct(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/prod-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{
			"id":"prod-1",
			"name":"Ao thun basic",
			"image_url":"https://cdn.example.com/p1.jpg",
			"price":"297.000 VND",
			"sizes":["S","M","L"],
			"colors":["black","white"]
		}}`))
	})

	product, err := client.GetProduct(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "prod-1", product.ID)
	assert.Equal(t, "Ao thun basic", product.Name)

	amount, err := product.Price.Normalize()
	require.NoError(t, err)
	assert.Equal(t, int64(297000), amount)
}

func TestClient_GetProductNumericPrice(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"prod-2","name":"Quan jean","price":450000,"sizes":["29","30"],"colors":["blue"]}}`))
	})

	product, err := client.GetProduct(context.Background(), "prod-2")
	require.NoError(t, err)

	amount, err := product.Price.Normalize()
	require.NoError(t, err)
	assert.Equal(t, int64(450000), amount)
}

func TestClient_GetProductNotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetProduct(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestClient_GetProductUnreachable(t *testing.T) {
	doer := httpclient.New(httpclient.Config{
		Timeout:         time.Second,
		MaxRetries:      0,
		RetryWaitMin:    time.Millisecond,
		RetryWaitMax:    time.Millisecond,
		MaxConnsPerHost: 1,
	})
	client := NewClient("http://127.0.0.1:1", doer)

	_, err := client.GetProduct(context.Background(), "prod-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrServiceUnavail))
}

func TestProduct_HasVariant(t *testing.T) {
	p := &Product{
		Sizes:  []string{"S", "M"},
		Colors: []string{"black"},
	}

	assert.True(t, p.HasVariant("M", "black"))
	assert.False(t, p.HasVariant("XL", "black"))
	assert.False(t, p.HasVariant("M", "red"))

	noVariants := &Product{}
	assert.True(t, noVariants.HasVariant("", ""))
	assert.False(t, noVariants.HasVariant("M", ""))
}
