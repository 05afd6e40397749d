package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/py3kit/py3kit/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(fg).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	codeStyle     = lipgloss.NewStyle().Foreground(info)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a tree-walk report (check or fix) for the terminal.
func RenderReport(report *domain.AggregateReport) string {
	var b strings.Builder

	title := headerStyle.Render("py3kit")
	subtitle := dimStyle.Render(subtitleFor(report.Mode))
	summary := summaryLine(report)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + summary))
	b.WriteString("\n\n")

	for _, f := range report.Files {
		if len(f.Findings) == 0 && len(f.Applied) == 0 && !f.Failed() {
			continue
		}
		renderFile(&b, f, report.Mode)
	}

	b.WriteString("  " + separatorLine + "\n\n")
	renderTotals(&b, report)
	b.WriteString("\n")
	return b.String()
}

// RenderFindings formats a single file's findings, for `check <file>`.
func RenderFindings(path string, findings []domain.Match) string {
	var b strings.Builder
	b.WriteString("\n  " + fileStyle.Render(path) + "\n")
	if len(findings) == 0 {
		b.WriteString("    " + passStyle.Render("Already Python 3 compatible.") + "\n")
		return b.String()
	}
	for _, m := range findings {
		renderFinding(&b, m)
	}
	return b.String()
}

func renderFile(b *strings.Builder, f domain.FileReport, mode string) {
	b.WriteString("  " + fileStyle.Render(f.Path) + "\n")

	if f.Failed() {
		fmt.Fprintf(b, "    %s %s\n\n", errorTagStyle.Render("error"), dimStyle.Render(f.Error))
		return
	}

	for _, m := range f.Applied {
		verb := "would fix"
		if mode == domain.ModeApply {
			verb = "fixed"
		}
		fmt.Fprintf(b, "    %s %s  %s\n",
			passStyle.Render(verb),
			ruleTag(m.RuleID),
			codeStyle.Render(oneLine(m.Text)+" → "+oneLine(m.Suggestion)),
		)
	}
	for _, m := range f.Findings {
		renderFinding(b, m)
	}
	if f.BackupPath != "" {
		fmt.Fprintf(b, "    %s %s\n", faintStyle.Render("backup"), faintStyle.Render(f.BackupPath))
	}
	b.WriteString("\n")
}

func renderFinding(b *strings.Builder, m domain.Match) {
	tag := warnTagStyle.Render("warn ")
	if m.RuleID == domain.SyntaxErrorRuleID {
		tag = errorTagStyle.Render("error")
	} else if m.Suggestion == "" {
		tag = infoTagStyle.Render("info ")
	}

	fmt.Fprintf(b, "    %s %s %s  %s\n",
		tag,
		dimStyle.Render(fmt.Sprintf("%d:%d", m.Line, m.Col)),
		ruleTag(m.RuleID),
		codeStyle.Render(oneLine(m.Text)),
	)
	if m.Suggestion != "" {
		fmt.Fprintf(b, "          %s %s\n", faintStyle.Render("suggest"), codeStyle.Render(oneLine(m.Suggestion)))
	}
}

func renderTotals(b *strings.Builder, report *domain.AggregateReport) {
	if report.Clean() {
		b.WriteString("  " + passStyle.Render("No Python 2 constructs found.") + "\n")
		return
	}

	fmt.Fprintf(b, "  %s  %s",
		titleStyle.Render("Totals"),
		dimStyle.Render(fmt.Sprintf("%d files scanned", report.FilesScanned)),
	)
	if report.AppliedCount > 0 {
		fmt.Fprintf(b, "  %s", passStyle.Render(fmt.Sprintf("%d fixes in %d files", report.AppliedCount, report.FilesChanged)))
	}
	if report.FindingCount > 0 {
		fmt.Fprintf(b, "  %s", warnStyle.Render(fmt.Sprintf("%d findings", report.FindingCount)))
	}
	if report.FilesFailed > 0 {
		fmt.Fprintf(b, "  %s", failStyle.Render(fmt.Sprintf("%d files failed", report.FilesFailed)))
	}
	b.WriteString("\n")
}

func subtitleFor(mode string) string {
	switch mode {
	case domain.ModeApply:
		return "Python 2 → 3 fix"
	case domain.ModeDryRun:
		return "Python 2 → 3 fix (dry run)"
	default:
		return "Python 2 → 3 check"
	}
}

func summaryLine(report *domain.AggregateReport) string {
	count := report.FindingCount
	noun := "findings"
	if report.Mode != domain.ModeVerify {
		count = report.AppliedCount
		noun = "fixes"
	}
	color := success
	if count > 0 || report.FilesFailed > 0 {
		color = warning
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).
		Render(fmt.Sprintf("%d %s in %d files", count, noun, report.FilesScanned))
}

func ruleTag(id string) string {
	return lipgloss.NewStyle().Foreground(accent).Render(id)
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", "⏎")
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return s
}
