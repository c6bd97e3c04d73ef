package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Term is one primitive unit raised to a non-zero integer exponent.
type Term struct {
	Unit     *Unit
	Exponent int
}

// Symbol returns the term's unit symbol.
func (t Term) Symbol() string { return t.Unit.symbol }

func (t Term) String() string { return t.Unit.Name(t.Exponent) }

// Expr is a compound unit expression: an ordered list of terms.
// The empty Expr is dimensionless.
type Expr []Term

// String rebuilds the unit string: numerator terms, then "/" and the
// denominator terms with positive exponents ("cm2/Vs", "1/cm3").
func (e Expr) String() string {
	var num, den strings.Builder
	for _, t := range e {
		if t.Exponent > 0 {
			num.WriteString(t.Unit.Name(t.Exponent))
		} else {
			den.WriteString(t.Unit.Name(-t.Exponent))
		}
	}
	if den.Len() == 0 {
		return num.String()
	}
	if num.Len() == 0 {
		return "1/" + den.String()
	}

	return num.String() + "/" + den.String()
}

// Type renders the dimension of e: the unit type for a single term with
// exponent 1, otherwise "type^exp" factors joined by "*".
func (e Expr) Type() string {
	if len(e) == 1 && e[0].Exponent == 1 {
		return e[0].Unit.typ
	}
	parts := make([]string, len(e))
	for i, t := range e {
		parts[i] = t.Unit.typ
		if t.Exponent != 1 {
			parts[i] += "^" + strconv.Itoa(t.Exponent)
		}
	}

	return strings.Join(parts, "*")
}

// Reduce merges repeated units by summing their exponents, keeping the
// position of the first occurrence and dropping units that cancel out
// ("m/s/s" → m s-2, "m/m" → dimensionless).
func (e Expr) Reduce() Expr {
	idx := make(map[string]int, len(e))
	out := make(Expr, 0, len(e))
	for _, t := range e {
		if i, ok := idx[t.Unit.symbol]; ok {
			out[i].Exponent += t.Exponent
			continue
		}
		idx[t.Unit.symbol] = len(out)
		out = append(out, t)
	}
	n := 0
	for _, t := range out {
		if t.Exponent != 0 {
			out[n] = t
			n++
		}
	}

	return out[:n]
}

// ParseExpr decomposes a unit expression into terms.
//
// Grammar, scanned left to right after NFKC normalization:
//   - a maximal run of letters is split into registered units, longest
//     match first ("kVus" → kV, us);
//   - an integer exponent, optionally preceded by "^" and a sign, applies
//     to the last unit of the run ("cm2", "s-1", "m^3");
//   - the first "/" negates every later exponent; further "/" are
//     ignored, so "m/s/s" is m·s⁻²;
//   - spaces, "*" and "·" separate terms;
//   - a leading "1" is accepted only as the numerator of "1/...".
//
// Errors: ErrUnknownUnit naming the offending run, ErrUnitSyntax.
func (r *Registry) ParseExpr(s string) (Expr, error) {
	s = normalize(s)

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.parseExprLocked(s)
}

// parseExprLocked expects s to be normalized.
func (r *Registry) parseExprLocked(s string) (Expr, error) {
	if s == "" {
		return Expr{}, nil
	}
	rs := []rune(s)
	i := 0

	if unicode.IsDigit(rs[0]) {
		j := 0
		for j < len(rs) && unicode.IsDigit(rs[j]) {
			j++
		}
		k := j
		for k < len(rs) && unicode.IsSpace(rs[k]) {
			k++
		}
		if string(rs[:j]) != "1" || k == len(rs) || rs[k] != '/' {
			return nil, fmt.Errorf("%w: %q is a number, not a unit", ErrUnitSyntax, s)
		}
		i = k
	}

	var (
		out  Expr
		sign = 1
	)
	for i < len(rs) {
		c := rs[i]
		switch {
		case unicode.IsSpace(c) || c == '*' || c == '·':
			i++
		case c == '/':
			sign = -1
			i++
		case unicode.IsLetter(c):
			j := i
			for j < len(rs) && unicode.IsLetter(rs[j]) {
				j++
			}
			run := rs[i:j]
			us := r.segmentLocked(run)
			if us == nil {
				return nil, fmt.Errorf("%w: %q in %q", ErrUnknownUnit, string(run), s)
			}
			exp, n, err := scanExponent(rs[j:])
			if err != nil {
				return nil, fmt.Errorf("%w: %v in %q", ErrUnitSyntax, err, s)
			}
			i = j + n
			for k, u := range us {
				e := 1
				if k == len(us)-1 {
					e = exp
				}
				out = append(out, Term{Unit: u, Exponent: sign * e})
			}
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d in %q", ErrUnitSyntax, c, i, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no unit in %q", ErrUnitSyntax, s)
	}

	return out, nil
}

// segmentLocked splits a letter run into units, longest match first with
// backtracking. It returns nil when no split exists.
func (r *Registry) segmentLocked(run []rune) []*Unit {
	dead := make([]bool, len(run)+1)
	var split func(start int) []*Unit
	split = func(start int) []*Unit {
		if start == len(run) {
			return []*Unit{}
		}
		if dead[start] {
			return nil
		}
		for end := len(run); end > start; end-- {
			u := r.findLocked(string(run[start:end]))
			if u == nil {
				continue
			}
			if rest := split(end); rest != nil {
				return append([]*Unit{u}, rest...)
			}
		}
		dead[start] = true

		return nil
	}

	return split(0)
}

// scanExponent reads an optional exponent at the start of rs and reports
// how many runes it consumed. No exponent means 1.
func scanExponent(rs []rune) (exp, n int, err error) {
	if len(rs) > 0 && rs[0] == '^' {
		n++
	}
	marked := n > 0
	start := n
	if n < len(rs) && (rs[n] == '-' || rs[n] == '+') {
		n++
		marked = true
	}
	digits := n
	for n < len(rs) && rs[n] >= '0' && rs[n] <= '9' {
		n++
	}
	if n == digits {
		if marked {
			return 0, 0, errors.New("exponent without digits")
		}

		return 1, 0, nil
	}
	exp, err = strconv.Atoi(string(rs[start:n]))
	if err != nil {
		return 0, 0, err
	}
	if exp == 0 {
		return 0, 0, errors.New("zero exponent")
	}

	return exp, n, nil
}
