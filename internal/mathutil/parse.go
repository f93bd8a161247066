package mathutil

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseOptionalFloat64 parses various types to float64 with success indication.
// Handles strings (trimmed, empty is absent), json.Number, []byte and the
// numeric kinds produced by JSON and YAML decoders. Non-finite results are
// reported as absent.
func ParseOptionalFloat64(field any) (float64, bool) {
	var (
		parsed float64
		err    error
	)
	switch value := field.(type) {
	case nil:
		return 0, false
	case string:
		value = strings.TrimSpace(value)
		if value == "" {
			return 0, false
		}
		parsed, err = strconv.ParseFloat(value, 64)
	case []byte:
		return ParseOptionalFloat64(string(value))
	case json.Number:
		parsed, err = value.Float64()
	case float64:
		parsed = value
	case float32:
		parsed = float64(value)
	case int:
		parsed = float64(value)
	case int64:
		parsed = float64(value)
	case int32:
		parsed = float64(value)
	case uint64:
		parsed = float64(value)
	case *float64:
		if value == nil {
			return 0, false
		}
		parsed = *value
	default:
		return 0, false
	}
	if err != nil || !IsFinite(parsed) {
		return 0, false
	}
	return parsed, true
}
