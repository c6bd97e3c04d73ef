package units

import (
	"sort"
	"unicode/utf8"
)

// Prefix is a metric (SI) prefix.
type Prefix struct {
	Symbol string
	Power  int // power of ten
}

// prefixes lists the SI prefixes from atto to exa. "μ" is an alias of "u"
// and is never listed by GetCompatible.
var prefixes = []Prefix{
	{"a", -18}, {"f", -15}, {"p", -12}, {"n", -9}, {"u", -6}, {"μ", -6},
	{"m", -3}, {"c", -2}, {"d", -1}, {"da", 1}, {"h", 2}, {"k", 3},
	{"M", 6}, {"G", 9}, {"T", 12}, {"P", 15}, {"E", 18},
}

// prefixesByLength is prefixes ordered longest symbol first, so "da" is
// tried before "d".
var prefixesByLength = func() []Prefix {
	out := append([]Prefix(nil), prefixes...)
	sort.SliceStable(out, func(i, j int) bool { return utf8.RuneCountInString(out[i].Symbol) > utf8.RuneCountInString(out[j].Symbol) })

	return out
}()

// Prefixes returns the metric prefix table in ascending power order.
func Prefixes() []Prefix { return append([]Prefix(nil), prefixes...) }
