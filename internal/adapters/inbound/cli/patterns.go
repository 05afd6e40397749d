package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/py3kit/py3kit/internal/adapters/outbound/tui"
)

func newPatternsCmd() *cobra.Command {
	var (
		category   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "patterns [keyword]",
		Short: "Browse the migration rule catalog",
		Long:  "List the known Python 2 patterns. With a keyword, search the catalog; a keyword that exactly matches a rule id shows that rule in full.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if rule, err := svc.patterns.Get(args[0]); err == nil {
					if jsonOutput {
						return renderJSON(cmd, rule)
					}
					fmt.Fprint(cmd.OutOrStdout(), tui.RenderPattern(rule))
					return nil
				}
				rules := svc.patterns.Search(args[0])
				if jsonOutput {
					return renderJSON(cmd, rules)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderPatterns(rules))
				return nil
			}

			rules, err := svc.patterns.List(category)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, rules)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderPatterns(rules))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "List only one category (imports, methods, builtins, operators, syntax)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output rules as JSON")

	return cmd
}
