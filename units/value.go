package units

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a magnitude with its trailing unit string.
type Value struct {
	Magnitude float64
	Units     string
}

// ParseValue splits s into a leading floating-point literal and the unit
// substring after it ("72F" → 72, "F"). The literal is an optional sign,
// digits with an optional fraction, and an optional exponent. The exponent
// marker is consumed only when digits follow it, so "5eV" is 5 electron
// volts. Parsing never consults the locale: "." is the only decimal
// separator.
//
// Errors: ErrUnparsableValue.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	end := scanNumber(s)
	if end == 0 {
		return Value{}, fmt.Errorf("%w: %q", ErrUnparsableValue, s)
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q: %v", ErrUnparsableValue, s[:end], err)
	}

	return Value{Magnitude: v, Units: strings.TrimSpace(s[end:])}, nil
}

// scanNumber returns the length of the numeric literal at the start of s,
// or 0 if there is none.
func scanNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	mantissa := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// String renders v with default precision and its units appended.
func (v Value) String() string {
	return Format(v.Magnitude, DefaultPrecision) + v.Units
}
