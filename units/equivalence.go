package units

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rpunits/rule"
)

// equivalence states that one unit of anchor equals factor times expr,
// making every unit of anchor's type expressible in expr's dimensions
// (1 L = 1e-3 m3).
type equivalence struct {
	anchor *Unit
	factor float64
	expr   Expr
}

// Equate declares that one symbol equals factor times the unit expression
// units. Afterwards every unit of symbol's type converts to and from
// expressions of the same dimension as units: with Equate("L", 1e-3, "m3"),
// "gal" converts to "m3" and "ft3" to "gal". The expression must not use
// symbol's own type, and each type holds at most one equivalence.
//
// Errors: ErrSealed, ErrUnknownUnit, ErrInvalidSymbol (prefixed symbol),
// ErrUnitSyntax, ErrTypeMismatch, ErrDuplicateDefinition, rule.ErrZeroScale.
func (r *Registry) Equate(symbol string, factor float64, units string) error {
	symbol, units = normalize(symbol), normalize(units)
	if factor == 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("equate %q: %w (got %v)", symbol, rule.ErrZeroScale, factor)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: equate %q", ErrSealed, symbol)
	}
	u := r.findLocked(symbol)
	if u == nil {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, symbol)
	}
	if !u.Registered() {
		return fmt.Errorf("%w: %q is a prefixed form", ErrInvalidSymbol, symbol)
	}
	e, err := r.parseExprLocked(units)
	if err != nil {
		return err
	}
	e = e.Reduce()
	if len(e) == 0 {
		return fmt.Errorf("%w: %q is dimensionless", ErrUnitSyntax, units)
	}
	for _, t := range e {
		if t.Unit.typ == u.typ {
			return fmt.Errorf("%w: %q is %s and cannot be expressed in %q", ErrTypeMismatch, symbol, u.typ, units)
		}
		if _, ok := r.equivs[t.Unit.typ]; ok {
			return fmt.Errorf("%w: %q already has an equivalence", ErrTypeMismatch, t.Unit.typ)
		}
	}
	if prev, ok := r.equivs[u.typ]; ok {
		return fmt.Errorf("%w: %s already equated through %q", ErrDuplicateDefinition, u.typ, prev.anchor.symbol)
	}
	r.equivs[u.typ] = equivalence{anchor: u, factor: factor, expr: e}
	r.log.Debug("equivalence added", "symbol", symbol, "type", u.typ, "factor", factor, "units", e.String())

	return nil
}

// expandLocked rewrites every term whose type has an equivalence into the
// equivalence expression and returns the reduced result with its scale:
// one unit of e equals scale units of the result.
func (r *Registry) expandLocked(e Expr) (Expr, float64, error) {
	scale := 1.0
	out := make(Expr, 0, len(e))
	for _, t := range e {
		eq, ok := r.equivs[t.Unit.typ]
		if !ok {
			out = append(out, t)
			continue
		}
		ch, err := r.chainLocked(t.Unit, eq.anchor)
		if err != nil {
			return nil, 0, err
		}
		f, ok := ch.Factor()
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s→%s", ErrNonLinearExponent, t, eq.anchor.symbol)
		}
		scale *= math.Pow(f*eq.factor, float64(t.Exponent))
		for _, x := range eq.expr {
			out = append(out, Term{Unit: x.Unit, Exponent: x.Exponent * t.Exponent})
		}
	}

	return out.Reduce(), scale, nil
}

// usedByEquivalenceLocked reports the type whose equivalence refers to u.
func (r *Registry) usedByEquivalenceLocked(u *Unit) (string, bool) {
	for typ, eq := range r.equivs {
		if eq.anchor == u {
			return typ, true
		}
		for _, t := range eq.expr {
			if t.Unit.registered() == u {
				return typ, true
			}
		}
	}

	return "", false
}
