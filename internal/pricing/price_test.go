package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lavenshop/cart-service/pkg/errors"
)

func TestNormalize_Amount(t *testing.T) {
	got, err := Amount(100000).Normalize()
	require.NoError(t, err)
	assert.Equal(t, int64(100000), got)
}

func TestNormalize_Formatted(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"plain digits", "297000", 297000},
		{"dot separators", "297.000", 297000},
		{"currency suffix", "297.000 VND", 297000},
		{"dong sign", "199.000đ", 199000},
		{"comma separators", "1,250,000", 1250000},
		{"leading text", "Giá: 85.000đ", 85000},
		{"zero", "0đ", 0},
		{"promo suffix takes first group", "299.000đ - Save 33%", 299000},
		{"trailing separator not consumed", "450.", 450},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Formatted(tt.in).Normalize()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_NoDigits(t *testing.T) {
	for _, in := range []string{"", "Liên hệ", "N/A", "--"} {
		_, err := Formatted(in).Normalize()
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, apperrors.ErrInvalidPrice)
	}
}

func TestNormalize_NegativeAmount(t *testing.T) {
	_, err := Amount(-1).Normalize()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []RawPrice{
		Amount(100000),
		Formatted("297.000 VND"),
		Formatted("199.000đ"),
	}

	for _, p := range inputs {
		once, err := p.Normalize()
		require.NoError(t, err)

		// Re-normalizing the canonical integer yields the same integer.
		twice, err := Amount(once).Normalize()
		require.NoError(t, err)
		assert.Equal(t, once, twice, "input %s", p)
	}
}

func TestRawPrice_JSONRoundTrip_PreservesRepresentation(t *testing.T) {
	amount := Amount(150000)
	data, err := json.Marshal(amount)
	require.NoError(t, err)
	assert.Equal(t, "150000", string(data))

	var gotAmount RawPrice
	require.NoError(t, json.Unmarshal(data, &gotAmount))
	assert.Equal(t, amount, gotAmount)
	assert.False(t, gotAmount.IsFormatted())

	formatted := Formatted("297.000 VND")
	data, err = json.Marshal(formatted)
	require.NoError(t, err)
	assert.Equal(t, `"297.000 VND"`, string(data))

	var gotFormatted RawPrice
	require.NoError(t, json.Unmarshal(data, &gotFormatted))
	assert.Equal(t, formatted, gotFormatted)
	assert.True(t, gotFormatted.IsFormatted())
}

func TestRawPrice_UnmarshalJSON_Invalid(t *testing.T) {
	var p RawPrice
	assert.Error(t, json.Unmarshal([]byte(`{"amount":1}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`12.5`), &p))

	// An integer-valued float is tolerated.
	require.NoError(t, json.Unmarshal([]byte(`100000.0`), &p))
	got, err := p.Normalize()
	require.NoError(t, err)
	assert.Equal(t, int64(100000), got)
}

func TestRawPrice_String(t *testing.T) {
	assert.Equal(t, "100000", Amount(100000).String())
	assert.Equal(t, "297.000 VND", Formatted("297.000 VND").String())
}
