package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Snowflake is a platform id read from a request body.
// It accepts "123" and 123 alike and parses the literal itself, so ids above 2^53 keep every digit.
type Snowflake uint64

// UnmarshalJSON implements json.Unmarshaler. Fractions, exponents and negative values are rejected.
func (s *Snowflake) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*s = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			*s = 0
			return nil
		}
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid snowflake %s", b)
	}
	*s = Snowflake(v)
	return nil
}

// Uint64 returns the id as an integer.
func (s Snowflake) Uint64() uint64 {
	return uint64(s)
}
