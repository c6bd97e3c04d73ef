package units

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// signReplacer folds the typographic minus produced by NFKC for "⁻" and
// "−" into ASCII.
var signReplacer = strings.NewReplacer("−", "-")

// normalize applies NFKC so the micro sign (U+00B5) becomes Greek mu and
// superscript digits become ASCII digits, then trims surrounding space.
func normalize(s string) string {
	if isASCII(s) {
		return strings.TrimSpace(s)
	}

	return strings.TrimSpace(signReplacer.Replace(norm.NFKC.String(s)))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}

	return true
}
