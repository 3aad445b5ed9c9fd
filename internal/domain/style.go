package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Style maps style property names to inline values.
type Style map[string]StyleValue

// StyleValue is a single style property value: either a string or a number.
type StyleValue struct {
	str   string
	num   float64
	isNum bool
}

// StyleString returns a string style value such as "red" or "4px".
func StyleString(s string) StyleValue {
	return StyleValue{str: s}
}

// StyleNumber returns a numeric style value such as an opacity or z-index.
func StyleNumber(n float64) StyleValue {
	return StyleValue{num: n, isNum: true}
}

// IsNumber reports whether the value is numeric.
func (v StyleValue) IsNumber() bool { return v.isNum }

// Number returns the numeric value and whether the value is numeric.
func (v StyleValue) Number() (float64, bool) { return v.num, v.isNum }

// String renders the value the way it would appear in an inline style.
func (v StyleValue) String() string {
	if v.isNum {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

func (v StyleValue) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return json.Marshal(v.num)
	}
	return EncodeJSON(v.str, "")
}

func (v *StyleValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("style value: empty input")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("style value: %w", err)
		}
		*v = StyleString(s)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("style value: %w", err)
		}
		*v = StyleNumber(n)
		return nil
	default:
		return fmt.Errorf("style value: expected string or number, got %s", JSONKind(data))
	}
}

// Keys returns the style property names in sorted order.
func (s Style) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// JSONKind names the JSON type of a raw value, for error messages.
func JSONKind(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "nothing"
	}
	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
