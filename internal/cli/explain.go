package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/macropower/lintsel/pkg/policy"
	"github.com/macropower/lintsel/pkg/rule"
)

// maxRuleSuggestions caps the near-miss rule codes offered for an unknown
// rule.
const maxRuleSuggestions = 3

type ExplainArgs struct {
	*RootArgs

	Path string
	Rule string
}

func NewExplainCmd(rootArgs *RootArgs) *cobra.Command {
	ra := &ExplainArgs{RootArgs: rootArgs}
	cmd := &cobra.Command{
		Use:   "explain <path>",
		Short: "Trace how the effective rules for a path were resolved",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return nil, cobra.ShellCompDirectiveDefault
			}

			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ra.Path = args[0]

			return runExplain(cmd, ra)
		},
	}

	cmd.Flags().StringVar(&ra.Rule, "rule", "", "Limit the trace to a single rule code")

	err := cmd.RegisterFlagCompletionFunc("rule", ruleCodeCompletion(rootArgs))
	if err != nil {
		panic(err)
	}

	bindEnvVars(cmd)

	return cmd
}

func runExplain(cmd *cobra.Command, ra *ExplainArgs) error {
	pol, _, err := loadPolicy(ra.RootArgs)
	if err != nil {
		return err
	}

	e := pol.Explain(ra.Path)

	if ra.Rule != "" {
		writeRuleFate(cmd.OutOrStdout(), pol, e, ra.Rule)

		return nil
	}

	writeExplanation(cmd.OutOrStdout(), e)

	return nil
}

// writeExplanation prints the full resolution trace: the base rules, each
// override with a matched marker and its removals, and the effective set.
func writeExplanation(w io.Writer, e *policy.Explanation) {
	mustN(fmt.Fprintf(w, "path: %s\n", e.Path))
	mustN(fmt.Fprintf(w, "base rules: %s\n", joinRules(e.Base.Sorted())))

	if len(e.Overrides) > 0 {
		mustN(fmt.Fprintln(w, "overrides:"))

		for _, o := range e.Overrides {
			mark := "[ ]"
			if o.Matched {
				mark = "[x]"
			}

			line := fmt.Sprintf("  %s %s (ignore: %s)", mark, o.Source, joinRules(o.Ignore))
			if len(o.Removed) > 0 {
				line += fmt.Sprintf(" removed: %s", joinRules(o.Removed))
			}

			mustN(fmt.Fprintln(w, line))
		}
	}

	mustN(fmt.Fprintf(w, "effective rules: %s\n", joinRules(e.Effective.Sorted())))
}

// writeRuleFate prints why a single rule code is or is not enforced for
// the explained path.
func writeRuleFate(w io.Writer, pol *policy.Policy, e *policy.Explanation, code string) {
	selected := rule.NewSet(pol.Select...).Has(code)
	ignored := rule.NewSet(pol.Ignore...).Has(code)

	mustN(fmt.Fprintf(w, "path: %s\n", e.Path))
	mustN(fmt.Fprintf(w, "rule: %s\n", code))
	mustN(fmt.Fprintf(w, "selected: %s\n", yesNo(selected)))
	mustN(fmt.Fprintf(w, "ignored: %s\n", yesNo(ignored)))

	var disabledBy []string

	for _, o := range e.Overrides {
		if o.Matched && slices.Contains(o.Ignore, code) {
			disabledBy = append(disabledBy, o.Source)
		}
	}

	if len(disabledBy) > 0 {
		mustN(fmt.Fprintf(w, "disabled by: %s\n", strings.Join(disabledBy, ", ")))
	}

	mustN(fmt.Fprintf(w, "effective: %s\n", yesNo(e.Effective.Has(code))))
	mustN(fmt.Fprintf(w, "fixable: %s\n", yesNo(pol.IsFixable(code))))

	known := pol.KnownRules()
	if !known.Has(code) {
		suggestions := suggestRules(code, known.Sorted())
		if len(suggestions) > 0 {
			mustN(fmt.Fprintf(w, "\n%s is not referenced by the configuration. Similar rules: %s.\n",
				code, strings.Join(suggestions, ", ")))
		} else {
			mustN(fmt.Fprintf(w, "\n%s is not referenced by the configuration.\n", code))
		}
	}
}

// suggestRules returns the known rule codes closest to the given code.
func suggestRules(code string, known []string) []string {
	matches := fuzzy.Find(code, known)
	if len(matches) > maxRuleSuggestions {
		matches = matches[:maxRuleSuggestions]
	}

	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
	}

	return suggestions
}

func joinRules(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}

	return strings.Join(ids, ", ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}
