package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupportedExtension(t *testing.T) {
	for _, ext := range []string{".png", ".JPG", ".Jpeg", ".tiff", ".webp", ".HEIC"} {
		assert.True(t, IsSupportedExtension(ext), ext)
	}
	for _, ext := range []string{".txt", ".mp4", ".raw", "", "png"} {
		assert.False(t, IsSupportedExtension(ext), ext)
	}
}

func TestNewFileEntryNormalizes(t *testing.T) {
	entry := NewFileEntry("/photos", "/photos/trip/IMG.JPG", "trip/IMG.JPG", 42)

	assert.Equal(t, "IMG.JPG", entry.Name)
	assert.Equal(t, ".jpg", entry.Ext)
	assert.Equal(t, "trip/IMG.JPG", entry.RelativePath)
	assert.Equal(t, int64(42), entry.Size)
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode(" Copy ")
	require.NoError(t, err)
	assert.Equal(t, ModeCopy, mode)

	mode, err = ParseMode("MOVE")
	require.NoError(t, err)
	assert.Equal(t, ModeMove, mode)

	_, err = ParseMode("teleport")
	assert.Error(t, err)
}

func TestParseCollisionPolicy(t *testing.T) {
	for in, want := range map[string]CollisionPolicy{
		"rename":    CollisionRename,
		"Skip":      CollisionSkip,
		"OVERWRITE": CollisionOverwrite,
	} {
		got, err := ParseCollisionPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseCollisionPolicy("merge")
	assert.Error(t, err)
}

func TestConfigurationIncludes(t *testing.T) {
	cfg := DefaultMergeConfiguration()
	assert.True(t, cfg.Includes(".png"))
	assert.True(t, cfg.Includes(".WEBP"))
	assert.False(t, cfg.Includes(".txt"))

	cfg.IncludedExtensions = []string{".png"}
	assert.True(t, cfg.Includes(".PNG"))
	assert.False(t, cfg.Includes(".jpg"))
}

func TestConfigurationValidate(t *testing.T) {
	cfg := DefaultMergeConfiguration()
	require.NoError(t, cfg.Validate())

	cfg.IncludedExtensions = []string{".png", ".exe"}
	assert.Error(t, cfg.Validate())

	cfg = DefaultMergeConfiguration()
	cfg.OnCollision = "merge"
	assert.Error(t, cfg.Validate())

	cfg = MergeConfiguration{}
	assert.Error(t, cfg.Validate())
}

func TestMergePlanTotals(t *testing.T) {
	plan := MergePlan{Entries: []MergePlanEntry{
		{File: FileEntry{Size: 10}, Action: ActionCopy},
		{File: FileEntry{Size: 20}, Action: ActionMove},
		{File: FileEntry{Size: 30}, Action: ActionSkip, SkipReason: "destination already exists"},
	}}

	assert.Equal(t, 3, plan.TotalFiles())
	assert.Equal(t, int64(30), plan.TotalBytes())
	assert.Equal(t, 1, plan.SkippedCount())
}

func TestJobStateStringAndTerminal(t *testing.T) {
	states := map[JobState]string{
		StatePending:   "pending",
		StatePlanning:  "planning",
		StateRunning:   "running",
		StateCompleted: "completed",
		StateCancelled: "cancelled",
		StateFailed:    "failed",
	}
	for state, want := range states {
		assert.Equal(t, want, state.String())
		terminal := state == StateCompleted || state == StateCancelled || state == StateFailed
		assert.Equal(t, terminal, state.Terminal())
	}
}
