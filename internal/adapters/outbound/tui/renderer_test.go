package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/py3kit/py3kit/internal/adapters/outbound/tui"
	"github.com/py3kit/py3kit/internal/domain"
)

func sampleReport() *domain.AggregateReport {
	report := &domain.AggregateReport{
		RootPath: "/tmp/project",
		Mode:     domain.ModeVerify,
		Files: []domain.FileReport{
			{
				Path: "app.py",
				Findings: []domain.Match{
					{RuleID: "print-statement", Line: 3, Col: 0, Text: `print "hello"`, Suggestion: `print("hello")`},
					{RuleID: "integer-division", Line: 7, Col: 4, Text: "1/2"},
				},
			},
			{Path: "clean.py"},
			{Path: "broken.py", Error: "open broken.py: permission denied"},
		},
	}
	report.Tally()
	return report
}

func TestRenderReport_ContainsHeader(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "py3kit")
	assert.Contains(t, output, "check")
}

func TestRenderReport_ContainsFindings(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "app.py")
	assert.Contains(t, output, "print-statement")
	assert.Contains(t, output, "3:0")
	assert.Contains(t, output, `print("hello")`)
}

func TestRenderReport_SkipsCleanFiles(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.NotContains(t, output, "clean.py")
}

func TestRenderReport_ContainsFailures(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "broken.py")
	assert.Contains(t, output, "permission denied")
	assert.Contains(t, output, "1 files failed")
}

func TestRenderReport_FixMode(t *testing.T) {
	report := &domain.AggregateReport{
		Mode: domain.ModeApply,
		Files: []domain.FileReport{
			{
				Path:       "app.py",
				Applied:    []domain.Match{{RuleID: "xrange", Text: "xrange(10)", Suggestion: "range(10)"}},
				BackupPath: "/tmp/project/.py3kit/backups/app.py.bak",
			},
		},
	}
	report.Tally()

	output := tui.RenderReport(report)
	assert.Contains(t, output, "fixed")
	assert.Contains(t, output, "xrange(10)")
	assert.Contains(t, output, "backups/app.py.bak")
}

func TestRenderReport_DryRunVerb(t *testing.T) {
	report := &domain.AggregateReport{
		Mode: domain.ModeDryRun,
		Files: []domain.FileReport{
			{Path: "app.py", Applied: []domain.Match{{RuleID: "xrange", Text: "xrange(10)", Suggestion: "range(10)"}}},
		},
	}
	report.Tally()

	output := tui.RenderReport(report)
	assert.Contains(t, output, "would fix")
	assert.Contains(t, output, "dry run")
}

func TestRenderReport_CleanTree(t *testing.T) {
	report := &domain.AggregateReport{
		Mode:  domain.ModeVerify,
		Files: []domain.FileReport{{Path: "app.py"}},
	}
	report.Tally()

	output := tui.RenderReport(report)
	assert.Contains(t, output, "No Python 2 constructs found")
}

func TestRenderFindings_File(t *testing.T) {
	findings := []domain.Match{
		{RuleID: "legacy-import", Line: 1, Col: 7, Text: "import urllib2", Suggestion: "import urllib.request"},
	}
	output := tui.RenderFindings("app.py", findings)
	assert.Contains(t, output, "app.py")
	assert.Contains(t, output, "legacy-import")
	assert.Contains(t, output, "suggest")
}

func TestRenderFindings_Clean(t *testing.T) {
	output := tui.RenderFindings("app.py", nil)
	assert.Contains(t, output, "Already Python 3 compatible")
}

func TestRenderFindings_SyntaxError(t *testing.T) {
	findings := []domain.Match{
		{RuleID: domain.SyntaxErrorRuleID, Line: 4, Col: 0, Text: "unterminated string"},
	}
	output := tui.RenderFindings("bad.py", findings)
	assert.Contains(t, output, "error")
	assert.Contains(t, output, "unterminated string")
}
