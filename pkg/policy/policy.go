// Package policy implements lint rule selection with path-scoped overrides.
package policy

import (
	"fmt"
	"slices"

	"github.com/macropower/lintsel/pkg/rule"
	"github.com/macropower/lintsel/pkg/yaml"
)

// defaultSelect enables pycodestyle errors (E4, E7, E9) and Pyflakes (F).
var defaultSelect = []string{"E4", "E7", "E9", "F"}

// Policy defines which lint rules are enforced, and which of the enforced
// rules may be auto-fixed.
//
// Rule codes are opaque identifiers. Selection is set algebra over literal
// codes: the rules enforced for a path are Select minus Ignore, minus the
// Ignore list of every [Override] matching the path. Override order never
// changes the result.
type Policy struct {
	base      rule.Set
	unfixable rule.Set

	// Select lists rule codes to enable globally.
	Select []string `json:"select,omitempty" jsonschema:"title=Selected Rules" yaml:"select,flow,omitempty"`

	// Ignore lists rule codes to disable globally. Codes in both Select and
	// Ignore are disabled.
	Ignore []string `json:"ignore,omitempty" jsonschema:"title=Ignored Rules" yaml:"ignore,flow,omitempty"`

	// Unfixable lists rule codes that must never be auto-fixed. A code does
	// not need to be selected to be unfixable.
	Unfixable []string `json:"unfixable,omitempty" jsonschema:"title=Unfixable Rules" yaml:"unfixable,flow,omitempty"`

	// Overrides disables additional rule codes for paths matching a glob
	// pattern or a CEL expression. Overrides are evaluated independently;
	// every matching override applies.
	Overrides []*Override `json:"overrides,omitempty" jsonschema:"title=Path Overrides"`
}

// PolicyOpt is a functional option for configuring a [Policy].
type PolicyOpt func(*Policy)

// New creates a new [Policy] with the given options.
func New(opts ...PolicyOpt) (*Policy, error) {
	p := &Policy{}
	for _, opt := range opts {
		opt(p)
	}

	err := p.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate policy: %w", err)
	}

	return p, nil
}

// MustNew creates a new [Policy] and panics if there's an error.
func MustNew(opts ...PolicyOpt) *Policy {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return p
}

// Default returns a [Policy] with the default rule selection.
func Default() *Policy {
	return MustNew(WithSelect(defaultSelect...))
}

// WithSelect sets the globally enabled rule codes.
func WithSelect(rules ...string) PolicyOpt {
	return func(p *Policy) {
		p.Select = rules
	}
}

// WithIgnore sets the globally disabled rule codes.
func WithIgnore(rules ...string) PolicyOpt {
	return func(p *Policy) {
		p.Ignore = rules
	}
}

// WithUnfixable sets the rule codes excluded from auto-fixing.
func WithUnfixable(rules ...string) PolicyOpt {
	return func(p *Policy) {
		p.Unfixable = rules
	}
}

// WithOverrides sets the path-scoped overrides.
func WithOverrides(overrides ...*Override) PolicyOpt {
	return func(p *Policy) {
		p.Overrides = overrides
	}
}

// EnsureDefaults initializes nil fields to their default values.
func (p *Policy) EnsureDefaults() {
	if p.Select == nil {
		p.Select = slices.Clone(defaultSelect)
	}
}

// Validate compiles all override matchers and caches the rule sets used
// during resolution. It must be called before [Policy.EffectiveRules],
// [Policy.IsFixable], or [Policy.Explain].
//
// Errors are [yaml.Error] values carrying the document path of the
// offending field.
func (p *Policy) Validate() error {
	pb := yaml.NewPathBuilder()

	for i, o := range p.Overrides {
		uIdx := uint(i) //nolint:gosec // G115: integer overflow conversion int -> uint.

		err := o.Compile()
		switch {
		case err == nil:

		case o.Match != "" && o.Expr != "", o.Match == "" && o.Expr == "":
			return yaml.NewError(
				err,
				yaml.WithPath(pb.Root().Child("rules").Child("overrides").Index(uIdx).Build()),
			)

		case o.Match != "":
			return yaml.NewError(
				fmt.Errorf("invalid match: %w", err),
				yaml.WithPath(pb.Root().Child("rules").Child("overrides").Index(uIdx).Child("match").Build()),
			)

		default:
			return yaml.NewError(
				fmt.Errorf("invalid expr: %w", err),
				yaml.WithPath(pb.Root().Child("rules").Child("overrides").Index(uIdx).Child("expr").Build()),
			)
		}
	}

	p.base = rule.NewSet(p.Select...).Difference(rule.NewSet(p.Ignore...))
	p.unfixable = rule.NewSet(p.Unfixable...)

	return nil
}

// EffectiveRules returns the rule codes enforced for the file at the given
// path. The result is always a subset of Select; mutating it does not
// affect the policy.
func (p *Policy) EffectiveRules(filePath string) rule.Set {
	active := p.base.Clone()
	for _, o := range p.Overrides {
		if o.Matches(filePath) {
			active.Subtract(o.ignored)
		}
	}

	return active
}

// BaseRules returns the globally enabled rules, Select minus Ignore,
// before any overrides apply.
func (p *Policy) BaseRules() rule.Set {
	return p.base.Clone()
}

// IsFixable reports whether the given rule code may be auto-fixed.
func (p *Policy) IsFixable(ruleCode string) bool {
	return !p.unfixable.Has(ruleCode)
}

// KnownRules returns every rule code the policy references: selected,
// ignored, unfixable, and override-ignored codes.
func (p *Policy) KnownRules() rule.Set {
	s := rule.NewSet(p.Select...)
	s.Add(p.Ignore...)
	s.Add(p.Unfixable...)

	for _, o := range p.Overrides {
		s.Add(o.Ignore...)
	}

	return s
}
