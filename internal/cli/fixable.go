package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewFixableCmd(rootArgs *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:               "fixable <rule>...",
		Short:             "Report whether rules may be auto-fixed",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: ruleCodeCompletion(rootArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixable(cmd, rootArgs, args)
		},
	}
}

// runFixable prints the fixability of every queried rule code. It returns
// an error when any code is unfixable, so scripts can branch on the exit
// status.
func runFixable(cmd *cobra.Command, ra *RootArgs, codes []string) error {
	pol, _, err := loadPolicy(ra)
	if err != nil {
		return err
	}

	unfixable := 0

	for _, code := range codes {
		if pol.IsFixable(code) {
			mustN(fmt.Fprintf(cmd.OutOrStdout(), "%s: fixable\n", code))
		} else {
			unfixable++

			mustN(fmt.Fprintf(cmd.OutOrStdout(), "%s: unfixable\n", code))
		}
	}

	if unfixable > 0 {
		return fmt.Errorf("%d of %d rules are unfixable", unfixable, len(codes))
	}

	return nil
}
