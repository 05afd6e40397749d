package tui

import (
	"fmt"
	"strings"

	"github.com/py3kit/py3kit/internal/domain"
)

// RenderBackups formats the backup index for terminal output.
func RenderBackups(records []domain.BackupRecord) string {
	if len(records) == 0 {
		return "\n  " + dimStyle.Render("No backups recorded.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Backups") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, r := range records {
		fmt.Fprintf(&b, "  %s  %s  %s\n",
			dimStyle.Render(r.Timestamp.Format("2006-01-02 15:04:05")),
			fileStyle.Render(r.OriginalPath),
			faintStyle.Render(fmt.Sprintf("%d bytes", r.Size)),
		)
		if r.Description != "" {
			fmt.Fprintf(&b, "    %s\n", faintStyle.Render(r.Description))
		}
	}
	return b.String()
}

// RenderRunHistory formats recorded check/fix runs, oldest first.
func RenderRunHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "\n  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		counts := fmt.Sprintf("%d scanned", e.FilesScanned)
		if e.AppliedCount > 0 {
			counts += passStyle.Render(fmt.Sprintf("  %d fixed", e.AppliedCount))
		}
		if e.FindingCount > 0 {
			counts += warnStyle.Render(fmt.Sprintf("  %d findings", e.FindingCount))
		}
		if e.FilesFailed > 0 {
			counts += failStyle.Render(fmt.Sprintf("  %d failed", e.FilesFailed))
		}

		fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
			dimStyle.Render(e.Timestamp.Format("2006-01-02 15:04")),
			faintStyle.Render(hash),
			infoTagStyle.Render(padRight(e.Mode, 7)),
			counts,
		)
	}
	return b.String()
}
