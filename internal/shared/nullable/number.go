package nullable

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a float64 that tolerates the loose numeric payloads the
// front-end sends: JSON null, the empty string, a quoted number, or a
// plain number. Null and "" decode as absent.
type Number struct {
	Valid bool
	Value float64
}

func FromFloat(v float64) Number {
	return Number{Valid: true, Value: v}
}

// Ptr returns the value as *float64 for storage, nil when absent.
func (n Number) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = Number{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = Number{}
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*n = Number{Valid: true, Value: v}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Number{Valid: true, Value: v}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
