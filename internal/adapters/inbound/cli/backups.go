package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/py3kit/py3kit/internal/adapters/outbound/backup"
	"github.com/py3kit/py3kit/internal/adapters/outbound/tui"
)

func newBackupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "Inspect and restore pre-fix backups",
	}
	cmd.AddCommand(newBackupsListCmd())
	cmd.AddCommand(newBackupsRestoreCmd())
	return cmd
}

func newBackupsListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List recorded backups, newest first",
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

			records, err := backup.New(absPath).List()
			if err != nil {
				return fmt.Errorf("listing backups: %w", err)
			}
			if jsonOutput {
				return renderJSON(cmd, records)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderBackups(records))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output backups as JSON")
	return cmd
}

func newBackupsRestoreCmd() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore a file from its most recent backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absProject, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			rec, err := backup.New(absProject).Restore(args[0])
			if err != nil {
				return fmt.Errorf("restore failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %s from %s\n", rec.OriginalPath, rec.BackupPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root holding the backup index")
	return cmd
}
