package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// PriceInput is a loosely typed price as sent by clients: a JSON number, a
// numeric string, an empty string or null. Present is false when the key was
// absent or null.
type PriceInput struct {
	Present bool
	Raw     string
}

// UnmarshalJSON records the raw price token without rejecting odd input.
func (p *PriceInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = PriceInput{}
		return nil
	}
	p.Present = true
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		p.Raw = s
		return nil
	}
	p.Raw = string(data)
	return nil
}

// MarshalJSON writes the raw value back as a string, or null when absent.
func (p PriceInput) MarshalJSON() ([]byte, error) {
	if !p.Present {
		return []byte("null"), nil
	}
	return json.Marshal(p.Raw)
}

// Value returns the parsed price (see ParsePrice).
func (p PriceInput) Value() float64 {
	if !p.Present {
		return 0
	}
	return ParsePrice(p.Raw)
}

// PriceOf builds a present PriceInput from a raw string, as a form would submit it.
func PriceOf(raw string) PriceInput {
	return PriceInput{Present: true, Raw: raw}
}

// ParsePrice converts user input into a price. It accepts the longest leading
// decimal number ("850000", " 12.5 ", "99abc" -> 99) and yields 0 for empty,
// non-numeric, NaN or infinite input.
func ParsePrice(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return finiteOrZero(v)
	}
	prefix := numericPrefix(s)
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(v)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// numericPrefix returns the longest prefix of s shaped like [+-]digits[.digits][e[+-]digits].
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			frac++
		}
		if frac > 0 || digits > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return strings.TrimSuffix(s[:i], ".")
}
