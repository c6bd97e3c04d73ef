package units

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/rpunits/rule"
)

// DefaultPrecision is the number of significant digits used by Format.
const DefaultPrecision = 6

// Option configures a Registry at construction.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	precision int
	presets   []string
	defs      []io.Reader
	err       error
}

// WithLogger sets the structured logger. Mutations log at Debug.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPrecision sets the significant digits used when formatting results.
// n must be in [1, 17].
func WithPrecision(n int) Option {
	return func(c *config) {
		if n < 1 || n > 17 {
			c.err = fmt.Errorf("units: precision %d out of range [1,17]", n)
			return
		}
		c.precision = n
	}
}

// WithPresets loads the named built-in groups (see AddPresets).
func WithPresets(groups ...string) Option {
	return func(c *config) { c.presets = append(c.presets, groups...) }
}

// WithDefinitions loads unit definitions from a YAML document after the
// presets (see LoadDefinitions).
func WithDefinitions(r io.Reader) Option {
	return func(c *config) {
		if r != nil {
			c.defs = append(c.defs, r)
		}
	}
}

// DefineOption configures one Define call.
type DefineOption func(*defineOptions)

type defineOptions struct {
	metric bool
	scale  float64
	offset float64
	power  int
	rule   *rule.Rule
}

// WithMetric allows metric prefixes on the unit.
func WithMetric() DefineOption {
	return func(o *defineOptions) { o.metric = true }
}

// WithScale sets how many basis units one unit equals: 1 min = 60 s.
func WithScale(f float64) DefineOption {
	return func(o *defineOptions) { o.scale = f }
}

// WithOffset sets an additive offset applied after scaling to the basis.
func WithOffset(off float64) DefineOption {
	return func(o *defineOptions) { o.offset = off }
}

// WithPowerOfTen relates the unit to its basis by 10^n.
func WithPowerOfTen(n int) DefineOption {
	return func(o *defineOptions) { o.power = n }
}

// WithRule supplies the relation to the basis explicitly; Forward converts
// the new unit into its basis. It overrides scale, offset and power.
func WithRule(r rule.Rule) DefineOption {
	return func(o *defineOptions) { o.rule = &r }
}

// basisRule builds the unit→basis relation from the options.
func (o *defineOptions) basisRule() rule.Rule {
	if o.rule != nil {
		return *o.rule
	}
	f := o.scale * math.Pow10(o.power)
	if o.offset == 0 {
		return rule.Scale(f)
	}

	return rule.Linear(f, o.offset)
}
