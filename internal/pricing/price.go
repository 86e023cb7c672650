package pricing

import (
	"encoding/json"
	"fmt"
	"strconv"

	apperrors "github.com/lavenshop/cart-service/pkg/errors"
)

// The catalog stores prices in two shapes: plain integers already in VND,
// and display strings with grouping separators and decoration ("297.000 VND",
// "199.000đ"). RawPrice keeps whichever shape was received verbatim; it is
// canonicalized only at read time through Normalize and the stored
// representation is never mutated.
type priceKind uint8

const (
	kindAmount priceKind = iota
	kindFormatted
)

// RawPrice is a price value exactly as received from the catalog.
type RawPrice struct {
	kind   priceKind
	amount int64
	text   string
}

// Amount builds a RawPrice from an integer VND amount.
func Amount(v int64) RawPrice {
	return RawPrice{kind: kindAmount, amount: v}
}

// Formatted builds a RawPrice from an as-received display string.
func Formatted(s string) RawPrice {
	return RawPrice{kind: kindFormatted, text: s}
}

// IsFormatted reports whether the price was received as a display string.
func (p RawPrice) IsFormatted() bool {
	return p.kind == kindFormatted
}

// String returns the as-received representation for display and logging.
func (p RawPrice) String() string {
	if p.kind == kindAmount {
		return strconv.FormatInt(p.amount, 10)
	}
	return p.text
}

// Normalize converts the price to a canonical non-negative integer VND
// amount.
//
// An amount-kind price is returned unchanged, so normalization is
// idempotent. A formatted price is scanned for its first numeric group: a
// maximal run of decimal digits, possibly interleaved with "." or ","
// grouping separators, beginning and ending with a digit. The separators
// are stripped and the digits parsed as the VND amount.
//
// Strings mixing a price with a second number ("299.000đ - Save 33%") are
// outside the guaranteed-correct domain: the first numeric group wins and
// upstream cleanup is the caller's responsibility.
func (p RawPrice) Normalize() (int64, error) {
	if p.kind == kindAmount {
		if p.amount < 0 {
			return 0, apperrors.InvalidInput(fmt.Sprintf("price must not be negative, got %d", p.amount))
		}
		return p.amount, nil
	}

	digits, ok := firstNumericGroup(p.text)
	if !ok {
		return 0, apperrors.InvalidPriceFormat(p.text)
	}

	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, apperrors.InvalidPriceFormat(p.text)
	}
	return v, nil
}

// firstNumericGroup extracts the digits of the first maximal run of decimal
// digits and grouping separators in s. A separator is consumed only when a
// digit follows it, so the run always ends on a digit. Returns false when s
// contains no digits.
func firstNumericGroup(s string) (string, bool) {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			start = i
			break
		}
	}
	if start == -1 {
		return "", false
	}

	var digits []byte
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		case c == '.' || c == ',':
			if i+1 >= len(s) || s[i+1] < '0' || s[i+1] > '9' {
				return string(digits), true
			}
		default:
			return string(digits), true
		}
	}
	return string(digits), true
}

// MarshalJSON preserves the as-received representation: an amount stays a
// JSON number, a formatted price stays a JSON string.
func (p RawPrice) MarshalJSON() ([]byte, error) {
	if p.kind == kindAmount {
		return json.Marshal(p.amount)
	}
	return json.Marshal(p.text)
}

// UnmarshalJSON accepts either a JSON number (integer VND) or a JSON string
// (as-received display text).
func (p *RawPrice) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Formatted(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price must be a number or string: %w", err)
	}
	v, err := n.Int64()
	if err != nil {
		// Integer-valued floats (e.g. 100000.0) are tolerated; fractional
		// VND amounts do not exist.
		f, ferr := n.Float64()
		if ferr != nil || f != float64(int64(f)) {
			return fmt.Errorf("price %s is not a whole VND amount", n.String())
		}
		v = int64(f)
	}
	*p = Amount(v)
	return nil
}
