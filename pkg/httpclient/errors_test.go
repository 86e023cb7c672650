package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lavenshop/cart-service/pkg/errors"
)

func makeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_StructuredNotFound(t *testing.T) {
	resp := makeResponse(http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"product ao-thun-01 not found"}}`)

	err := ParseResponseError(resp, "catalog-service")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "catalog-service")
}

func TestParseResponseError_StructuredBadRequest(t *testing.T) {
	resp := makeResponse(http.StatusBadRequest, `{"error":{"code":"INVALID_INPUT","message":"size is required"}}`)

	err := ParseResponseError(resp, "order-service")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "size is required")
}

func TestParseResponseError_Unstructured(t *testing.T) {
	resp := makeResponse(http.StatusBadGateway, "upstream timeout")

	err := ParseResponseError(resp, "order-service")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream timeout")
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(http.StatusBadRequest))
	assert.True(t, IsClientError(http.StatusConflict))
	assert.False(t, IsClientError(http.StatusOK))
	assert.False(t, IsClientError(http.StatusInternalServerError))
}
