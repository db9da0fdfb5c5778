package market

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number keeps a loosely typed numeric wire value. The backend sends prices
// both as JSON numbers and as strings.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*n = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(s))
		return nil
	}
	*n = Number(raw)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("null"), nil
	}
	if _, ok := n.Float(); ok {
		return []byte(n), nil
	}
	return json.Marshal(string(n))
}

// Float parses the value; ok is false for empty, malformed or non-finite values.
func (n Number) Float() (float64, bool) {
	if n == "" {
		return 0, false
	}
	s, ok := stripGrouping(string(n))
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// stripGrouping removes thousands separators from the integer part. Commas
// are only accepted between a leading group of one to three digits and
// following groups of exactly three.
func stripGrouping(s string) (string, bool) {
	if !strings.Contains(s, ",") {
		return s, true
	}
	sign := ""
	if s[0] == '+' || s[0] == '-' {
		sign, s = s[:1], s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if strings.Contains(frac, ",") {
		return "", false
	}
	groups := strings.Split(intPart, ",")
	for i, g := range groups {
		if !allDigits(g) {
			return "", false
		}
		if i == 0 && (len(g) == 0 || len(g) > 3) {
			return "", false
		}
		if i > 0 && len(g) != 3 {
			return "", false
		}
	}
	return sign + strings.Join(groups, "") + frac, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FloatOr returns the parsed value or fallback.
func (n Number) FloatOr(fallback float64) float64 {
	if v, ok := n.Float(); ok {
		return v
	}
	return fallback
}

func NumberOf(v float64) Number {
	return Number(strconv.FormatFloat(v, 'f', -1, 64))
}
