package history_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/py3kit/py3kit/internal/adapters/outbound/history"
	"github.com/py3kit/py3kit/internal/domain"
)

func TestHistory_AppendAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entry := domain.RunEntry{
		Timestamp:    time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		CommitHash:   "abc1234",
		Mode:         domain.ModeVerify,
		FilesScanned: 12,
		FindingCount: 5,
	}

	require.NoError(t, h.Append(dir, entry))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "abc1234", entries[0].CommitHash)
	assert.Equal(t, 12, entries[0].FilesScanned)
}

func TestHistory_AppendMultiple(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	require.NoError(t, h.Append(dir, domain.RunEntry{Mode: domain.ModeVerify, FindingCount: 9}))
	require.NoError(t, h.Append(dir, domain.RunEntry{Mode: domain.ModeApply, AppliedCount: 9}))
	require.NoError(t, h.Append(dir, domain.RunEntry{Mode: domain.ModeVerify}))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.ModeApply, entries[1].Mode)
	assert.Zero(t, entries[2].FindingCount)
}

func TestHistory_LoadEmpty(t *testing.T) {
	entries, err := history.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
