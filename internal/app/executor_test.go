package app

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picmerge/internal/domain"
	appErrors "picmerge/internal/errors"
	osfs "picmerge/internal/infra/fs"
	"picmerge/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func planEntry(root, name, rel, dest string, action domain.Action, size int64) domain.MergePlanEntry {
	return domain.MergePlanEntry{
		File:        domain.NewFileEntry(root, filepath.Join(root, name), rel, size),
		Destination: dest,
		Action:      action,
	}
}

func TestTransferCopyLeavesSourceIntact(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "1.png"), "picture bytes")
	mtime := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(src, "1.png"), mtime, mtime))

	executor := &Executor{FS: osfs.OSFS{}, Logger: logging.Nop()}
	entry := planEntry(src, "1.png", "1.png", "1.png", domain.ActionCopy, 13)
	require.NoError(t, executor.Transfer(entry, dest))

	got, err := os.ReadFile(filepath.Join(dest, "1.png"))
	require.NoError(t, err)
	assert.Equal(t, "picture bytes", string(got))

	srcInfo, err := os.Stat(filepath.Join(src, "1.png"))
	require.NoError(t, err)
	assert.Equal(t, int64(13), srcInfo.Size())

	destInfo, err := os.Stat(filepath.Join(dest, "1.png"))
	require.NoError(t, err)
	assert.True(t, destInfo.ModTime().Equal(mtime))
}

func TestTransferMoveRemovesSourceAfterRename(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "1.png"), "moved bytes")

	executor := &Executor{FS: osfs.OSFS{}, Logger: logging.Nop()}
	entry := planEntry(src, "1.png", "1.png", "1.png", domain.ActionMove, 11)
	require.NoError(t, executor.Transfer(entry, dest))

	_, err := os.Stat(filepath.Join(src, "1.png"))
	assert.True(t, os.IsNotExist(err))

	got, err := os.ReadFile(filepath.Join(dest, "1.png"))
	require.NoError(t, err)
	assert.Equal(t, "moved bytes", string(got))
}

func TestTransferCreatesNestedDestinationDirectories(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "trip", "beach.png"), "sand")

	executor := &Executor{FS: osfs.OSFS{}, Logger: logging.Nop()}
	entry := domain.MergePlanEntry{
		File:        domain.NewFileEntry(src, filepath.Join(src, "trip", "beach.png"), "trip/beach.png", 4),
		Destination: "trip/beach.png",
		Action:      domain.ActionCopy,
	}
	require.NoError(t, executor.Transfer(entry, dest))

	got, err := os.ReadFile(filepath.Join(dest, "trip", "beach.png"))
	require.NoError(t, err)
	assert.Equal(t, "sand", string(got))
}

func TestTransferClassifiesDiskFullAsFatalKind(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "1.png"), "bytes")

	executor := &Executor{
		FS:     failWriteFS{FileSystem: osfs.OSFS{}, err: syscall.ENOSPC},
		Logger: logging.Nop(),
	}
	entry := planEntry(src, "1.png", "1.png", "1.png", domain.ActionCopy, 5)
	err := executor.Transfer(entry, dest)
	require.Error(t, err)
	assert.Equal(t, appErrors.DiskFull, appErrors.KindOf(err))
	assert.True(t, appErrors.Fatal(err))

	// No destination file and no leftover temp artifact.
	entries, readErr := os.ReadDir(dest)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestTransferDigestMismatchIsIntegrityError(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "1.png"), "original content")

	executor := &Executor{
		FS:     corruptReadFS{FileSystem: osfs.OSFS{}},
		Logger: logging.Nop(),
	}
	entry := planEntry(src, "1.png", "1.png", "1.png", domain.ActionCopy, 16)
	err := executor.Transfer(entry, dest)
	require.Error(t, err)
	assert.Equal(t, appErrors.Integrity, appErrors.KindOf(err))

	// Source untouched, temp artifact removed.
	_, statErr := os.Stat(filepath.Join(src, "1.png"))
	require.NoError(t, statErr)
	entries, readErr := os.ReadDir(dest)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestTransferMissingSourceIsNotFound(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()

	executor := &Executor{FS: osfs.OSFS{}, Logger: logging.Nop()}
	entry := planEntry(src, "gone.png", "gone.png", "gone.png", domain.ActionCopy, 1)
	err := executor.Transfer(entry, dest)
	require.Error(t, err)
	assert.Equal(t, appErrors.NotFound, appErrors.KindOf(err))
}
