package units

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/rpunits/rule"
)

// Definitions is the YAML document accepted by LoadDefinitions:
//
//	units:
//	  - symbol: furlong
//	    basis: mi
//	    scale: 0.125
//	  - symbol: ly
//	    type: length
//	relations:
//	  - from: ly
//	    to: m
//	    scale: 9.4607e15
//	equivalences:
//	  - symbol: ha
//	    scale: 1e4
//	    units: m2
type Definitions struct {
	Units        []UnitDef        `yaml:"units,omitempty"`
	Relations    []RelationDef    `yaml:"relations,omitempty"`
	Equivalences []EquivalenceDef `yaml:"equivalences,omitempty"`
}

// UnitDef describes one Define call.
type UnitDef struct {
	Symbol string   `yaml:"symbol"`
	Type   string   `yaml:"type,omitempty"`
	Basis  string   `yaml:"basis,omitempty"`
	Scale  *float64 `yaml:"scale,omitempty"`
	Offset *float64 `yaml:"offset,omitempty"`
	Power  int      `yaml:"power,omitempty"`
	Metric bool     `yaml:"metric,omitempty"`
}

// RelationDef describes one Relate call: to = from·scale + offset.
// Inverse, when set, is the independently tabulated to→from factor and
// cannot be combined with an offset.
type RelationDef struct {
	From    string   `yaml:"from"`
	To      string   `yaml:"to"`
	Scale   float64  `yaml:"scale"`
	Inverse *float64 `yaml:"inverse,omitempty"`
	Offset  float64  `yaml:"offset,omitempty"`
}

// EquivalenceDef describes one Equate call: 1 symbol = scale·units.
type EquivalenceDef struct {
	Symbol string  `yaml:"symbol"`
	Scale  float64 `yaml:"scale"`
	Units  string  `yaml:"units"`
}

// ErrBadDefinition reports a structurally invalid YAML entry.
var ErrBadDefinition = errors.New("units: bad definition")

// LoadDefinitions decodes a Definitions document and applies its units,
// then its relations, then its equivalences. Unknown YAML keys are rejected. Loading stops at the
// first failing entry; entries before it stay registered.
func (r *Registry) LoadDefinitions(rd io.Reader) error {
	var defs Definitions
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&defs); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrBadDefinition, err)
	}

	return r.ApplyDefinitions(defs)
}

// LoadDefinitionsFile reads definitions from a YAML file.
func (r *Registry) LoadDefinitionsFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return r.LoadDefinitions(f)
}

// ApplyDefinitions registers already-decoded definitions.
func (r *Registry) ApplyDefinitions(defs Definitions) error {
	for i, d := range defs.Units {
		if err := r.applyUnit(d); err != nil {
			return fmt.Errorf("units[%d] %q: %w", i, d.Symbol, err)
		}
	}
	for i, d := range defs.Relations {
		if err := r.applyRelation(d); err != nil {
			return fmt.Errorf("relations[%d] %s→%s: %w", i, d.From, d.To, err)
		}
	}
	for i, d := range defs.Equivalences {
		if err := r.Equate(d.Symbol, d.Scale, d.Units); err != nil {
			return fmt.Errorf("equivalences[%d] %q: %w", i, d.Symbol, err)
		}
	}
	r.log.Info("definitions loaded",
		"units", len(defs.Units), "relations", len(defs.Relations), "equivalences", len(defs.Equivalences))

	return nil
}

func (r *Registry) applyUnit(d UnitDef) error {
	var (
		basis *Unit
		opts  []DefineOption
		err   error
	)
	if d.Basis != "" {
		if basis, err = r.Find(d.Basis); err != nil {
			return err
		}
	} else if d.Scale != nil || d.Offset != nil || d.Power != 0 {
		return fmt.Errorf("%w: scale, offset and power need a basis", ErrBadDefinition)
	}
	if d.Metric {
		opts = append(opts, WithMetric())
	}
	if d.Scale != nil {
		opts = append(opts, WithScale(*d.Scale))
	}
	if d.Offset != nil {
		opts = append(opts, WithOffset(*d.Offset))
	}
	if d.Power != 0 {
		opts = append(opts, WithPowerOfTen(d.Power))
	}
	_, err = r.Define(d.Symbol, basis, d.Type, opts...)

	return err
}

func (r *Registry) applyRelation(d RelationDef) error {
	var rl rule.Rule
	switch {
	case d.Inverse != nil && d.Offset != 0:
		return fmt.Errorf("%w: inverse and offset are exclusive", ErrBadDefinition)
	case d.Inverse != nil:
		rl = rule.Pair(d.Scale, *d.Inverse)
	case d.Offset != 0:
		rl = rule.Linear(d.Scale, d.Offset)
	default:
		rl = rule.Scale(d.Scale)
	}

	return r.Relate(d.From, d.To, rl)
}
