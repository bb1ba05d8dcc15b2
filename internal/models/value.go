package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value holds one field of the analyzer reply exactly as it arrived.
// A Value whose key was absent from the body is not present; JSON null is
// present but null.
type Value struct {
	raw     json.RawMessage
	present bool
}

func RawValue(raw string) Value {
	return Value{raw: json.RawMessage(raw), present: true}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	v.present = true
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return v.raw, nil
}

func (v Value) Present() bool {
	return v.present
}

func (v Value) IsNull() bool {
	return v.present && bytes.Equal(bytes.TrimSpace(v.raw), []byte("null"))
}

func (v Value) Float() (float64, bool) {
	if !v.present {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(v.raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

func (v Value) Str() (string, bool) {
	if !v.present {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// String renders the value the way a browser concatenates it into text:
// absent is "undefined", numbers use their shortest form and objects
// collapse to "[object Object]".
func (v Value) String() string {
	if !v.present {
		return "undefined"
	}
	var decoded interface{}
	if err := json.Unmarshal(v.raw, &decoded); err != nil {
		return string(v.raw)
	}
	return textOf(decoded, false)
}

func textOf(val interface{}, nested bool) string {
	switch t := val.(type) {
	case nil:
		if nested {
			return ""
		}
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatNumber(t)
	case []interface{}:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = textOf(item, true)
		}
		return strings.Join(parts, ",")
	case map[string]interface{}:
		return "[object Object]"
	}
	return ""
}

func formatNumber(f float64) string {
	switch {
	case f == 0:
		return "0"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
