package policy

import (
	"github.com/macropower/lintsel/pkg/rule"
)

// Explanation traces how a policy resolved the rules for one file path.
type Explanation struct {
	// Path is the file path that was resolved.
	Path string `json:"path"`
	// Base contains the globally enabled rules (Select minus Ignore).
	Base rule.Set `json:"base"`
	// Effective contains the rules enforced for the path.
	Effective rule.Set `json:"effective"`
	// Overrides contains one entry per policy override, in policy order.
	Overrides []OverrideResult `json:"overrides,omitempty"`
}

// OverrideResult describes one override's effect on a resolved path.
type OverrideResult struct {
	// Source is the override's match pattern or expression.
	Source string `json:"source"`
	// Ignore lists the rule codes the override disables.
	Ignore []string `json:"ignore"`
	// Removed lists the rule codes this override removed from the
	// effective set. Empty when the override matched but all of its codes
	// were already absent.
	Removed []string `json:"removed,omitempty"`
	// Matched reports whether the override applied to the path.
	Matched bool `json:"matched"`
}

// Explain resolves the rules for the file at the given path and reports
// which overrides matched and what each one removed. The effective set in
// the result is identical to [Policy.EffectiveRules] for the same path.
func (p *Policy) Explain(filePath string) *Explanation {
	e := &Explanation{
		Path:      filePath,
		Base:      p.base.Clone(),
		Effective: p.base.Clone(),
		Overrides: make([]OverrideResult, 0, len(p.Overrides)),
	}

	for _, o := range p.Overrides {
		result := OverrideResult{
			Source: o.Source(),
			Ignore: o.ignored.Sorted(),
		}

		if o.Matches(filePath) {
			result.Matched = true
			for _, ruleCode := range result.Ignore {
				if e.Effective.Has(ruleCode) {
					result.Removed = append(result.Removed, ruleCode)
				}
			}

			e.Effective.Subtract(o.ignored)
		}

		e.Overrides = append(e.Overrides, result)
	}

	return e
}
