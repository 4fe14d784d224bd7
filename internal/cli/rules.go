package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macropower/lintsel/pkg/policy"
)

const (
	outputText = "text"
	outputJSON = "json"

	cmdExamples = `  # Show the rules enforced for a file:
  lintsel src/app/main.py

  # Resolve several paths at once:
  lintsel rules src/app/main.py tests/test_app.py

  # Read paths from stdin, one per line:
  git ls-files '*.py' | lintsel rules -

  # Machine-readable output:
  lintsel rules --output json src/app/main.py

  # Trace how the rules for a path were resolved:
  lintsel explain tests/unit/__init__.py

  # Check fixability, exit 1 if any rule is unfixable:
  lintsel fixable E501 F401`
)

var allOutputs = []string{outputText, outputJSON}

type RulesArgs struct {
	*RootArgs

	Output string
	Paths  []string
}

func NewRulesArgs(rootArgs *RootArgs) *RulesArgs {
	return &RulesArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RulesArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().
		StringVarP(&ra.Output, "output", "o", outputText, fmt.Sprintf("Output format, one of: %s", allOutputs))

	err := cmd.RegisterFlagCompletionFunc("output",
		cobra.FixedCompletions(allOutputs, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

func NewRulesCmd(ra *RulesArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "rules [path]...",
		Short:             "Default command, prints the effective rules for one or more paths",
		Example:           cmdExamples,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: pathCompletion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ra.Paths = args

			return runRules(cmd, ra)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func runRules(cmd *cobra.Command, ra *RulesArgs) error {
	pol, _, err := loadPolicy(ra.RootArgs)
	if err != nil {
		return err
	}

	paths := ra.Paths
	if len(paths) == 1 && paths[0] == "-" {
		paths, err = readPaths(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	switch ra.Output {
	case outputJSON:
		return writeRulesJSON(cmd.OutOrStdout(), pol, paths)

	case outputText:
		writeRulesText(cmd.OutOrStdout(), pol, paths)

		return nil

	default:
		return fmt.Errorf("unknown output format %q, expected one of: %s", ra.Output, allOutputs)
	}
}

// readPaths reads newline-separated file paths, skipping blank lines.
func readPaths(r io.Reader) ([]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	var paths []string

	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}

	return paths, nil
}

// writeRulesText prints one rule per line for a single path, and one
// aligned line per path otherwise. Without paths it prints the globally
// enabled rules.
func writeRulesText(w io.Writer, pol *policy.Policy, paths []string) {
	switch len(paths) {
	case 0:
		for _, id := range pol.BaseRules().Sorted() {
			mustN(fmt.Fprintln(w, id))
		}

	case 1:
		for _, id := range pol.EffectiveRules(paths[0]).Sorted() {
			mustN(fmt.Fprintln(w, id))
		}

	default:
		for _, p := range paths {
			mustN(fmt.Fprintf(w, "%s: %s\n", p, strings.Join(pol.EffectiveRules(p).Sorted(), ", ")))
		}
	}
}

type pathRules struct {
	Path  string   `json:"path,omitempty"`
	Rules []string `json:"rules"`
}

func writeRulesJSON(w io.Writer, pol *policy.Policy, paths []string) error {
	entries := make([]pathRules, 0, len(paths)+1)
	if len(paths) == 0 {
		entries = append(entries, pathRules{Rules: pol.BaseRules().Sorted()})
	}

	for _, p := range paths {
		entries = append(entries, pathRules{Path: p, Rules: pol.EffectiveRules(p).Sorted()})
	}

	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal rules: %w", err)
	}

	mustN(fmt.Fprintln(w, string(b)))

	return nil
}
