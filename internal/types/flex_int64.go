package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexInt64 is an int64 that can be unmarshaled from either a JSON number or
// a JSON string. Document uploads report fileSize both ways.
type FlexInt64 int64

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	// Try unmarshaling as a number first
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt64(n)
		return nil
	}

	// Try unmarshaling as a string
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		val, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("FlexInt64: invalid int64 string %q: %w", s, err)
		}
		*f = FlexInt64(val)
		return nil
	}

	return fmt.Errorf("FlexInt64: unexpected type, expected number or string")
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexInt64) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(f))
}

// Int64 converts FlexInt64 back to int64.
func (f FlexInt64) Int64() int64 {
	return int64(f)
}
