// internal/domain/catalog/money.go
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Money is a minor-unit currency amount. The platform serializes amounts
// as JSON numbers, but amounts beyond the double-precision safe range
// arrive as strings from some intermediaries, so both are accepted. It
// always marshals as a string to keep the encoding lossless.
type Money struct {
	Amount int64 `json:"amount"`
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw struct {
		Amount any `json:"amount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("money: %w", err)
	}

	switch v := raw.Amount.(type) {
	case nil:
		m.Amount = 0
	case float64:
		m.Amount = int64(v)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("money: invalid amount %q: %w", v, err)
		}
		m.Amount = n
	default:
		return fmt.Errorf("money: unsupported amount type %T", v)
	}
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"amount":"`)
	buf.WriteString(strconv.FormatInt(m.Amount, 10))
	buf.WriteString(`"}`)
	return buf.Bytes(), nil
}
