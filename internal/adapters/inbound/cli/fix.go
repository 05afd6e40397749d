package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/py3kit/py3kit/internal/adapters/outbound/tui"
	"github.com/py3kit/py3kit/internal/application"
	"github.com/py3kit/py3kit/internal/domain"
)

func newFixCmd() *cobra.Command {
	var (
		dryRun     bool
		jsonOutput bool
		ruleIDs    []string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Rewrite Python 2 constructs to their Python 3 form",
		Long:  "Rewrite a Python file or source tree in place. Every changed file is backed up under .py3kit/backups/ first; constructs that cannot be rewritten mechanically are reported instead.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			svc, err := newServices()
			if err != nil {
				return err
			}

			opts := application.FixOptions{
				DryRun:  dryRun,
				RuleIDs: ruleIDs,
				Workers: workers,
			}

			info, err := os.Stat(absPath)
			if err != nil {
				return err
			}

			var report *domain.AggregateReport
			if info.IsDir() {
				report, err = svc.fix.FixTree(absPath, opts)
				if err != nil {
					return fmt.Errorf("fix failed: %w", err)
				}
			} else {
				fr, err := svc.fix.FixFile(absPath, opts)
				if err != nil {
					return err
				}
				mode := domain.ModeApply
				if dryRun {
					mode = domain.ModeDryRun
				}
				report = singleFileReport(fr, mode)
			}

			if jsonOutput {
				return renderJSON(cmd, report)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show rewrites without touching any file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().StringSliceVar(&ruleIDs, "rules", nil, "Apply only the listed rule ids")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size (overrides config)")

	return cmd
}
