package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxExactFloat is the largest integer a float64 holds without rounding.
const maxExactFloat = 1 << 53

// ToUint64 converts various types to a platform snowflake id.
// Invalid or negative input yields 0. Floats are only accepted up to 2^53, since larger
// ids have already lost digits; decode request ids into Snowflake instead.
func ToUint64(val any) uint64 {
	switch v := val.(type) {
	case uint64:
		return v
	case uint:
		return uint64(v)
	case uint32:
		return uint64(v)
	case int:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case int64:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case float64:
		if v < 0 || v > maxExactFloat || v != math.Trunc(v) {
			return 0
		}
		return uint64(v)
	case string:
		i, _ := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		return i
	case []byte:
		i, _ := strconv.ParseUint(strings.TrimSpace(string(v)), 10, 64)
		return i
	case nil:
		return 0
	default:
		i, _ := strconv.ParseUint(fmt.Sprintf("%v", v), 10, 64)
		return i
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true", "yes").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, uint, uint64, float64:
		return ToUint64(v) == 1
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "1" || s == "true" || s == "yes"
	default:
		return false
	}
}
