package units

// Validate checks that every term of a unit expression resolves to a known
// unit. It returns the expression type and, for a single-term expression,
// every compatible symbol raised to the term exponent. On failure typ is
// empty.
func (r *Registry) Validate(units string) (typ string, compatible []string, err error) {
	e, err := r.ParseExpr(units)
	if err != nil {
		return "", nil, err
	}
	if len(e) == 1 {
		compatible = r.GetCompatible(e[0].Unit, e[0].Exponent)
	}

	return e.Type(), compatible, nil
}
