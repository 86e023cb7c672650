package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addItemRequest struct {
	ProductID string `validate:"required"`
	Size      string `validate:"required"`
	Color     string `validate:"required"`
	Quantity  int    `validate:"omitempty,gte=1,lte=100"`
}

func TestValidate_Valid(t *testing.T) {
	req := addItemRequest{ProductID: "p-1", Size: "M", Color: "black", Quantity: 2}
	assert.NoError(t, Validate(req))
}

func TestValidate_MissingRequired(t *testing.T) {
	req := addItemRequest{Size: "M", Color: "black"}
	err := Validate(req)

	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "ProductID")
	assert.Equal(t, "is required", valErr.Fields()["ProductID"])
}

func TestValidate_QuantityBounds(t *testing.T) {
	req := addItemRequest{ProductID: "p-1", Size: "M", Color: "black", Quantity: 101}
	err := Validate(req)

	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Quantity"], "less than or equal to 100")
}

func TestValidationError_Message(t *testing.T) {
	err := Validate(addItemRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'ProductID' is required")
}
