package units

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"unicode"

	"github.com/katalvlaran/rpunits/bfs"
	"github.com/katalvlaran/rpunits/core"
	"github.com/katalvlaran/rpunits/rule"
)

// Registry owns a set of units and the conversion graph relating them.
//
// All methods are safe for concurrent use. Seal freezes the registry;
// afterwards only read operations succeed.
type Registry struct {
	mu        sync.RWMutex
	units     map[string]*Unit
	order     []string // insertion order of registered symbols
	graph     *core.Graph
	equivs    map[string]equivalence // by unit type
	presets   map[string]bool
	sealed    bool
	log       *slog.Logger
	precision int
}

// NewRegistry builds a registry, loading presets and YAML definitions
// named by opts in that order.
func NewRegistry(opts ...Option) (*Registry, error) {
	cfg := config{logger: slog.Default(), precision: DefaultPrecision}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	r := &Registry{
		units:     make(map[string]*Unit),
		graph:     core.NewGraph(),
		equivs:    make(map[string]equivalence),
		presets:   make(map[string]bool),
		log:       cfg.logger,
		precision: cfg.precision,
	}
	for _, g := range cfg.presets {
		if err := r.AddPresets(g); err != nil {
			return nil, err
		}
	}
	for _, d := range cfg.defs {
		if err := r.LoadDefinitions(d); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Define registers symbol. With a nil basis the unit becomes the root of a
// new component and typ is required; otherwise the unit inherits the
// basis type, and a non-empty typ must agree with it. The relation to the
// basis is built from opts (scale 1 by default).
//
// Errors: ErrSealed, ErrInvalidSymbol, ErrDuplicateDefinition,
// ErrMissingType, ErrTypeMismatch, ErrUnknownUnit (foreign basis),
// rule.ErrZeroScale / rule.ErrNilFunc.
func (r *Registry) Define(symbol string, basis *Unit, typ string, opts ...DefineOption) (*Unit, error) {
	symbol = normalize(symbol)
	o := defineOptions{scale: 1}
	for _, opt := range opts {
		opt(&o)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return nil, fmt.Errorf("%w: define %q", ErrSealed, symbol)
	}
	if !validSymbol(symbol) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	if _, ok := r.units[symbol]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateDefinition, symbol)
	}

	u := &Unit{symbol: symbol, metric: o.metric, exponent: o.power}
	if basis == nil {
		if typ == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingType, symbol)
		}
		u.typ = typ
		if err := r.graph.AddVertex(symbol); err != nil {
			return nil, err
		}
	} else {
		stored, ok := r.units[basis.registered().symbol]
		if !ok || stored != basis.registered() {
			return nil, fmt.Errorf("%w: basis %q of %q is not registered here", ErrUnknownUnit, basis.symbol, symbol)
		}
		if typ != "" && typ != basis.typ {
			return nil, fmt.Errorf("%w: %q is %s but basis %q is %s", ErrTypeMismatch, symbol, typ, basis.symbol, basis.typ)
		}
		u.typ = basis.typ
		u.basis = basis

		rl := o.basisRule()
		if err := rl.Validate(); err != nil {
			return nil, fmt.Errorf("define %q: %w", symbol, err)
		}
		if basis.prefix != "" {
			rl = throughPrefix(rl, basis.exponent)
		}
		if err := r.graph.AddPair(symbol, stored.symbol, rl); err != nil {
			return nil, err
		}
	}

	r.units[symbol] = u
	r.order = append(r.order, symbol)
	r.log.Debug("unit defined", "symbol", symbol, "type", u.typ, "basis", basisSymbol(u), "metric", u.metric)

	return u, nil
}

// Relate adds a direct conversion between two registered units of the
// same type. r.Forward converts from → to. The fewest-hop chain wins during
// conversion, so a direct relation always overrides a path through a basis.
//
// Errors: ErrSealed, ErrUnknownUnit, ErrTypeMismatch,
// ErrDuplicateDefinition (relation exists), rule validation errors.
func (r *Registry) Relate(from, to string, rl rule.Rule) error {
	from, to = normalize(from), normalize(to)
	if err := rl.Validate(); err != nil {
		return fmt.Errorf("relate %s→%s: %w", from, to, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: relate %s→%s", ErrSealed, from, to)
	}
	a, ok := r.units[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	b, ok := r.units[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
	if a.typ != b.typ {
		return fmt.Errorf("%w: %q is %s, %q is %s", ErrTypeMismatch, from, a.typ, to, b.typ)
	}
	if err := r.graph.AddPair(from, to, rl); err != nil {
		if errors.Is(err, core.ErrEdgeExists) {
			return fmt.Errorf("%w: relation %s→%s", ErrDuplicateDefinition, from, to)
		}
		if errors.Is(err, core.ErrLoopNotAllowed) {
			return fmt.Errorf("%w: %q related to itself", ErrInvalidSymbol, from)
		}

		return err
	}
	r.log.Debug("relation added", "from", from, "to", to, "linear", rl.Linear())

	return nil
}

// Delete removes a registered unit together with its relations.
// A unit that is the basis of another registered unit, or that takes part
// in an equivalence, cannot be deleted.
//
// Errors: ErrSealed, ErrUnknownUnit, ErrUnitInUse.
func (r *Registry) Delete(symbol string) error {
	symbol = normalize(symbol)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: delete %q", ErrSealed, symbol)
	}
	u, ok := r.units[symbol]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, symbol)
	}
	for _, s := range r.order {
		if b := r.units[s].basis; b != nil && b.registered() == u {
			return fmt.Errorf("%w: %q is the basis of %q", ErrUnitInUse, symbol, s)
		}
	}
	if typ, ok := r.usedByEquivalenceLocked(u); ok {
		return fmt.Errorf("%w: %q is part of the %s equivalence", ErrUnitInUse, symbol, typ)
	}
	if err := r.graph.RemoveVertex(symbol); err != nil {
		return err
	}
	delete(r.units, symbol)
	for i, s := range r.order {
		if s == symbol {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.log.Debug("unit deleted", "symbol", symbol)

	return nil
}

// Seal freezes the registry. Later Define, Relate, Equate, Delete and
// AddPresets calls fail with ErrSealed.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
	r.log.Debug("registry sealed")
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sealed
}

// Clone returns an unsealed copy sharing no mutable state with r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := &Registry{
		units:     make(map[string]*Unit, len(r.units)),
		order:     append([]string(nil), r.order...),
		graph:     r.graph.Clone(),
		equivs:    make(map[string]equivalence, len(r.equivs)),
		presets:   make(map[string]bool, len(r.presets)),
		log:       r.log,
		precision: r.precision,
	}
	for k, v := range r.units {
		c.units[k] = v
	}
	for k, v := range r.presets {
		c.presets[k] = v
	}
	for k, v := range r.equivs {
		c.equivs[k] = v
	}

	return c
}

// Find looks symbol up: an exact registered symbol wins; otherwise the
// longest metric prefix whose remainder is a registered metric unit.
// "min" is therefore the minute, "dam" the decameter and "ms" the
// millisecond.
func (r *Registry) Find(symbol string) (*Unit, error) {
	symbol = normalize(symbol)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if u := r.findLocked(symbol); u != nil {
		return u, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, symbol)
}

func (r *Registry) findLocked(symbol string) *Unit {
	if u, ok := r.units[symbol]; ok {
		return u
	}
	for _, p := range prefixesByLength {
		if len(symbol) <= len(p.Symbol) || symbol[:len(p.Symbol)] != p.Symbol {
			continue
		}
		if u, ok := r.units[symbol[len(p.Symbol):]]; ok && u.metric {
			return u.withPrefix(p)
		}
	}

	return nil
}

// GetBasis returns u's basis, or nil for a basis unit.
func (r *Registry) GetBasis(u *Unit) *Unit {
	if u == nil {
		return nil
	}

	return u.basis
}

// Root follows u's basis chain to its end.
func (r *Registry) Root(u *Unit) *Unit {
	for u != nil && u.basis != nil {
		u = u.basis
	}

	return u
}

// GetCompatible lists every symbol convertible to u, u's own symbol
// included, in registration order. Each metric unit is followed by its
// prefixed forms in ascending prefix order. exp other than 1 is appended
// to every symbol ("m2", "mm2", ...).
func (r *Registry) GetCompatible(u *Unit, exp int) []string {
	if u == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	reach, err := bfs.Reachable(r.graph, u.registered().symbol)
	if err != nil {
		return nil
	}
	inComponent := make(map[string]bool, len(reach))
	for _, s := range reach {
		inComponent[s] = true
	}

	var out []string
	for _, s := range r.order {
		if !inComponent[s] {
			continue
		}
		cu := r.units[s]
		out = append(out, cu.Name(exp))
		if !cu.metric {
			continue
		}
		for _, p := range prefixes {
			if p.Symbol == "μ" {
				continue
			}
			out = append(out, cu.withPrefix(p).Name(exp))
		}
	}

	return out
}

// Symbols returns the registered symbols in insertion order.
func (r *Registry) Symbols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Precision returns the significant digits used by Format.
func (r *Registry) Precision() int { return r.precision }

// throughPrefix extends a unit→prefixedBasis rule down to the prefixed
// basis' registered unit.
func throughPrefix(rl rule.Rule, power int) rule.Rule {
	return rule.Rule{
		Forward:  rule.Chain{rl.Forward, rule.Affine{Scale: math.Pow10(power)}},
		Backward: rule.Chain{rule.Affine{Scale: math.Pow10(-power)}, rl.Backward},
	}
}

func validSymbol(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !unicode.IsLetter(c) {
			return false
		}
	}

	return true
}

func basisSymbol(u *Unit) string {
	if u.basis == nil {
		return ""
	}

	return u.basis.symbol
}
