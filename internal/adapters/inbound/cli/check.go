package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/py3kit/py3kit/internal/adapters/outbound/tui"
	"github.com/py3kit/py3kit/internal/domain"
)

func newCheckCmd() *cobra.Command {
	var (
		jsonOutput bool
		ciMode     bool
		ruleIDs    []string
	)

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Scan for Python 2 constructs without modifying anything",
		Long:  "Scan a Python file or source tree and report every Python-2-only construct found, with the suggested Python 3 form where one exists.",
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
			for _, id := range ruleIDs {
				if _, err := svc.patterns.Get(id); err != nil {
					return err
				}
			}

			info, err := os.Stat(absPath)
			if err != nil {
				return err
			}

			if !info.IsDir() {
				findings, err := svc.verify.VerifyFile(absPath)
				if err != nil {
					return fmt.Errorf("check failed: %w", err)
				}
				findings = filterFindings(findings, ruleIDs)
				if jsonOutput {
					return renderJSON(cmd, findings)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderFindings(path, findings))
				if ciMode && len(findings) > 0 {
					return fmt.Errorf("%d Python 2 constructs found", len(findings))
				}
				return nil
			}

			report, err := svc.verify.VerifyTree(absPath)
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}
			if len(ruleIDs) > 0 {
				for i := range report.Files {
					report.Files[i].Findings = filterFindings(report.Files[i].Findings, ruleIDs)
				}
				report.Tally()
			}

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if ciMode && !report.Clean() {
				return fmt.Errorf("%d findings in %d files (%d files failed)",
					report.FindingCount, report.FilesScanned, report.FilesFailed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if anything was found")
	cmd.Flags().StringSliceVar(&ruleIDs, "rules", nil, "Report only the listed rule ids")

	return cmd
}

// filterFindings narrows findings to the listed rules. The syntax-error
// marker always survives. Empty ids means no filtering.
func filterFindings(findings []domain.Match, ids []string) []domain.Match {
	if len(ids) == 0 {
		return findings
	}
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	var out []domain.Match
	for _, m := range findings {
		if keep[m.RuleID] || m.RuleID == domain.SyntaxErrorRuleID {
			out = append(out, m)
		}
	}
	return out
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// singleFileReport wraps one FileReport so file and tree runs render the
// same way.
func singleFileReport(fr domain.FileReport, mode string) *domain.AggregateReport {
	report := &domain.AggregateReport{
		RootPath: filepath.Dir(fr.Path),
		Mode:     mode,
		Files:    []domain.FileReport{fr},
	}
	report.Tally()
	return report
}
