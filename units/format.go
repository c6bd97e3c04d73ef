package units

import "strconv"

// Format renders v like C's "%.*g": precision significant digits, no
// trailing zeros, exponent notation for very small or large magnitudes.
// Format(0.0833333333, 6) is "0.0833333"; Format(5e-5, 6) is "5e-05".
func Format(v float64, precision int) string {
	if precision < 1 {
		precision = DefaultPrecision
	}

	return strconv.FormatFloat(v, 'g', precision, 64)
}
