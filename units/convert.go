package units

import (
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/katalvlaran/rpunits/bfs"
	"github.com/katalvlaran/rpunits/rule"
)

// Convert converts a value string such as "5.00bar" into toUnits and
// formats the result with the registry precision. showUnits appends
// toUnits exactly as given.
//
// An empty toUnits performs no conversion (the source units are appended
// when showUnits is set). A value without units is taken to be in toUnits
// already.
func (r *Registry) Convert(value, toUnits string, showUnits bool) (string, error) {
	val, err := ParseValue(value)
	if err != nil {
		return "", err
	}
	to := normalize(toUnits)

	var out float64
	switch {
	case to == "":
		if _, err := r.ParseExpr(val.Units); err != nil {
			return "", err
		}
		res := Format(val.Magnitude, r.precision)
		if showUnits {
			res += val.Units
		}

		return res, nil
	case val.Units == "":
		if _, err := r.ParseExpr(to); err != nil {
			return "", err
		}
		out = val.Magnitude
	default:
		out, err = r.ConvertValue(val.Magnitude, val.Units, to)
		if err != nil {
			return "", err
		}
	}

	res := Format(out, r.precision)
	if showUnits {
		res += toUnits
	}

	return res, nil
}

// ConvertValue converts v from one unit expression to another.
//
// Both expressions are decomposed into terms and repeated units merged
// (see Expr.Reduce). Each source term is paired with the first unused
// destination term of the same type and exponent and converted along the
// fewest-hop chain; a pure-scale chain is applied |exp| times, using the
// reverse chain for negative exponents. At most one pair may follow a chain
// with an offset or custom function (temperature, pH), and only with
// exponent 1: "20C/s" → "K/s" converts the temperature term first.
//
// When the terms cannot be paired one to one, the conversion falls back to
// dimensions: equivalences are expanded (see Equate), the per-type
// exponent sums of both sides must agree, and every term is scaled to the
// reference unit of its component. "m2" → "cm·mm" and "gal" → "m3" take
// this route.
//
// Errors: ErrUnknownUnit, ErrUnitSyntax, ErrIncompatibleUnits,
// ErrNoConversionPath, ErrNonLinearExponent.
func (r *Registry) ConvertValue(v float64, from, to string) (float64, error) {
	from, to = normalize(from), normalize(to)

	r.mu.RLock()
	defer r.mu.RUnlock()

	src, err := r.parseExprLocked(from)
	if err != nil {
		return 0, err
	}
	dst, err := r.parseExprLocked(to)
	if err != nil {
		return 0, err
	}

	return r.convertExprLocked(v, src, dst)
}

func (r *Registry) convertExprLocked(v float64, src, dst Expr) (float64, error) {
	return r.convertTermsLocked(v, src.Reduce(), dst.Reduce())
}

func (r *Registry) convertTermsLocked(v float64, src, dst Expr) (float64, error) {
	pairs, ok := matchTerms(src, dst)
	if !ok {
		return r.convertDimensionsLocked(v, src, dst)
	}

	chains := make([]rule.Chain, len(pairs))
	offset := -1
	for i, p := range pairs {
		ch, err := r.chainLocked(p.src.Unit, p.dst.Unit)
		if err != nil {
			return 0, err
		}
		if !ch.Linear() {
			if p.src.Exponent != 1 {
				return 0, fmt.Errorf("%w: %s→%s in %s→%s", ErrNonLinearExponent, p.src, p.dst, src, dst)
			}
			if offset >= 0 {
				return 0, fmt.Errorf("%w: %s→%s and %s→%s are both non-linear", ErrNonLinearExponent,
					pairs[offset].src, pairs[offset].dst, p.src, p.dst)
			}
			offset = i
		}
		chains[i] = ch
	}

	if offset >= 0 {
		v = chains[offset].Apply(v)
	}
	for i, p := range pairs {
		if i == offset {
			continue
		}
		ch, e := chains[i], p.src.Exponent
		if e < 0 {
			// x·a⁻¹ → x·b⁻¹ multiplies by the b→a factor
			var err error
			if ch, err = r.chainLocked(p.dst.Unit, p.src.Unit); err != nil {
				return 0, err
			}
			e = -e
		}
		v = ch.ApplyPow(v, e)
	}

	return v, nil
}

type termPair struct{ src, dst Term }

// matchTerms pairs terms by type and exponent. ok is false when a term on
// either side is left without a partner.
func matchTerms(src, dst Expr) (pairs []termPair, ok bool) {
	used := make([]bool, len(dst))
	pairs = make([]termPair, 0, len(src))
next:
	for _, s := range src {
		for j, d := range dst {
			if !used[j] && d.Unit.typ == s.Unit.typ && d.Exponent == s.Exponent {
				used[j] = true
				pairs = append(pairs, termPair{s, d})
				continue next
			}
		}

		return nil, false
	}
	for j := range dst {
		if !used[j] {
			return nil, false
		}
	}

	return pairs, true
}

// convertDimensionsLocked converts by comparing both sides in reference
// units after expanding equivalences.
func (r *Registry) convertDimensionsLocked(v float64, src, dst Expr) (float64, error) {
	xs, ss, err := r.expandLocked(src)
	if err != nil {
		return 0, err
	}
	xd, sd, err := r.expandLocked(dst)
	if err != nil {
		return 0, err
	}
	if !maps.Equal(dimension(xs), dimension(xd)) {
		return 0, fmt.Errorf("%w: %q (%s) and %q (%s)", ErrIncompatibleUnits, src.String(), src.Type(), dst.String(), dst.Type())
	}

	rs, fs, err := r.referenceLocked(xs)
	if err != nil {
		return 0, err
	}
	rd, fd, err := r.referenceLocked(xd)
	if err != nil {
		return 0, err
	}
	if !maps.Equal(rs, rd) {
		return 0, fmt.Errorf("%w: %s→%s", ErrNoConversionPath, src, dst)
	}

	return v * ss * fs / (sd * fd), nil
}

// dimension sums exponents per unit type, dropping types that cancel.
func dimension(e Expr) map[string]int {
	d := make(map[string]int, len(e))
	for _, t := range e {
		d[t.Unit.typ] += t.Exponent
	}
	for typ, n := range d {
		if n == 0 {
			delete(d, typ)
		}
	}

	return d
}

// referenceLocked rewrites every term in the reference unit of its graph
// component, returning the exponent per reference symbol and the scale of
// one unit of e in those terms. Offset chains are rejected.
func (r *Registry) referenceLocked(e Expr) (map[string]int, float64, error) {
	out := make(map[string]int, len(e))
	scale := 1.0
	for _, t := range e {
		ref, err := r.referenceUnitLocked(t.Unit)
		if err != nil {
			return nil, 0, err
		}
		ch, err := r.chainLocked(t.Unit, ref)
		if err != nil {
			return nil, 0, err
		}
		f, ok := ch.Factor()
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s in a compound expression", ErrNonLinearExponent, t)
		}
		scale *= math.Pow(f, float64(t.Exponent))
		out[ref.symbol] += t.Exponent
	}
	for s, n := range out {
		if n == 0 {
			delete(out, s)
		}
	}

	return out, scale, nil
}

// referenceUnitLocked returns the earliest registered unit of u's graph
// component.
func (r *Registry) referenceUnitLocked(u *Unit) (*Unit, error) {
	reach, err := bfs.Reachable(r.graph, u.registered().symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, u.symbol)
	}
	in := make(map[string]bool, len(reach))
	for _, s := range reach {
		in[s] = true
	}
	for _, s := range r.order {
		if in[s] {
			return r.units[s], nil
		}
	}

	return u.registered(), nil
}

// chainLocked builds the step chain converting a magnitude in src into dst:
// the source prefix, the fewest-hop graph path between the registered
// units, then the inverse destination prefix.
func (r *Registry) chainLocked(src, dst *Unit) (rule.Chain, error) {
	var ch rule.Chain
	if src.prefix != "" {
		ch = append(ch, rule.Affine{Scale: math.Pow10(src.exponent)})
	}
	sb, db := src.registered(), dst.registered()
	if sb != db {
		path, err := bfs.ShortestChain(r.graph, sb.symbol, db.symbol)
		if err != nil {
			if errors.Is(err, bfs.ErrNoPath) || errors.Is(err, bfs.ErrStartVertexNotFound) {
				return nil, fmt.Errorf("%w: %s→%s", ErrNoConversionPath, src.symbol, dst.symbol)
			}

			return nil, err
		}
		ch = append(ch, path...)
	}
	if dst.prefix != "" {
		ch = append(ch, rule.Affine{Scale: math.Pow10(-dst.exponent)})
	}

	return ch, nil
}

// MakeBasis converts v from the unit expression units into the basis of
// each term, returning the converted value and the basis expression
// ("5 km" → 5000 "m").
func (r *Registry) MakeBasis(v float64, units string) (float64, string, error) {
	units = normalize(units)

	r.mu.RLock()
	defer r.mu.RUnlock()

	src, err := r.parseExprLocked(units)
	if err != nil {
		return 0, "", err
	}
	src = src.Reduce()
	dst := make(Expr, len(src))
	for i, t := range src {
		dst[i] = Term{Unit: r.Root(t.Unit), Exponent: t.Exponent}
	}
	out, err := r.convertTermsLocked(v, src, dst)
	if err != nil {
		return 0, "", err
	}

	return out, dst.Reduce().String(), nil
}
