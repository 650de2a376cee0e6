package advisor

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// integer field that also accepts numeric strings and fractional numbers
type LooseInt int

func (n *LooseInt) UnmarshalJSON(data []byte) error {
	if f, ok := looseNumber(data); ok {
		*n = LooseInt(math.Round(f))
	}
	return nil
}

// number field that also accepts numeric strings
type LooseFloat float64

func (n *LooseFloat) UnmarshalJSON(data []byte) error {
	if f, ok := looseNumber(data); ok {
		*n = LooseFloat(f)
	}
	return nil
}

// list field that also accepts a single string
type LooseStrings []string

func (s *LooseStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = nil
	case data[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		out := make(LooseStrings, 0, len(items))
		for _, item := range items {
			if v := looseString(item); v != "" {
				out = append(out, v)
			}
		}
		*s = out
	default:
		if v := looseString(data); v != "" {
			*s = LooseStrings{v}
		}
	}

	return nil
}

func looseNumber(data []byte) (float64, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, false
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return 0, false
	}
	return f, true
}

// objects and arrays inside a list are dropped
func looseString(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == '{' || data[0] == '[' || bytes.Equal(data, []byte("null")) {
		return ""
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}

	return string(data)
}
