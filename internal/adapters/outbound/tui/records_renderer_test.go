package tui_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/py3kit/py3kit/internal/adapters/outbound/tui"
	"github.com/py3kit/py3kit/internal/domain"
)

func TestRenderBackups(t *testing.T) {
	records := []domain.BackupRecord{
		{
			ID:           "app.py.20260825T100000",
			OriginalPath: "/tmp/project/app.py",
			BackupPath:   "/tmp/project/.py3kit/backups/app.py.20260825T100000.bak",
			Timestamp:    time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
			Size:         120,
			Description:  "pre-fix copy of app.py",
		},
	}
	output := tui.RenderBackups(records)
	assert.Contains(t, output, "Backups")
	assert.Contains(t, output, "/tmp/project/app.py")
	assert.Contains(t, output, "120 bytes")
	assert.Contains(t, output, "pre-fix copy of app.py")
}

func TestRenderBackups_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderBackups(nil), "No backups recorded")
}

func TestRenderRunHistory(t *testing.T) {
	entries := []domain.RunEntry{
		{
			Timestamp:    time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC),
			CommitHash:   "0123456789abcdef0123456789abcdef01234567",
			Mode:         domain.ModeVerify,
			FilesScanned: 14,
			FindingCount: 3,
		},
		{
			Timestamp:    time.Date(2026, 8, 25, 9, 45, 0, 0, time.UTC),
			Mode:         domain.ModeApply,
			FilesScanned: 14,
			FilesChanged: 2,
			AppliedCount: 3,
			FilesFailed:  1,
		},
	}
	output := tui.RenderRunHistory(entries)
	assert.Contains(t, output, "Run History")
	assert.Contains(t, output, "0123456")
	assert.NotContains(t, output, "0123456789abcdef")
	assert.Contains(t, output, "verify")
	assert.Contains(t, output, "apply")
	assert.Contains(t, output, "14 scanned")
	assert.Contains(t, output, "3 findings")
	assert.Contains(t, output, "3 fixed")
	assert.Contains(t, output, "1 failed")
	assert.Contains(t, output, "·······")
}

func TestRenderRunHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderRunHistory(nil), "No run history found")
}
