package app

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/zeebo/xxh3"

	"picmerge/internal/domain"
	appErrors "picmerge/internal/errors"
)

type Executor struct {
	FS     FileSystem
	Logger zerolog.Logger
}

// Transfer copies the entry's bytes to a temp file next to the final path,
// verifies size and content digest, then renames into place. Under move
// mode the source is removed only after the rename succeeded, so a crash at
// any point leaves at least one complete copy of the file.
func (e *Executor) Transfer(entry domain.MergePlanEntry, destRoot string) error {
	src := entry.File.SourcePath
	dest := filepath.Join(destRoot, filepath.FromSlash(entry.Destination))

	info, err := e.FS.Stat(src)
	if err != nil {
		return appErrors.Classify("stat", src, err)
	}

	in, err := e.FS.Open(src)
	if err != nil {
		return appErrors.Classify("open", src, err)
	}
	defer in.Close()

	if err := e.FS.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return appErrors.Classify("mkdir", filepath.Dir(dest), err)
	}

	// Temp file lives in the destination directory so the final rename
	// stays on one filesystem and is atomic.
	tmp, tmpPath, err := e.FS.CreateTemp(filepath.Dir(dest), ".picmerge-*")
	if err != nil {
		return appErrors.Classify("create", dest, err)
	}

	hasher := xxh3.New()
	written, err := io.Copy(io.MultiWriter(tmp, hasher), in)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		e.discard(tmpPath)
		return appErrors.Classify("write", dest, err)
	}
	if written != info.Size() {
		e.discard(tmpPath)
		return appErrors.Wrap(appErrors.Integrity, "verify", dest,
			fmt.Errorf("wrote %d bytes, expected %d", written, info.Size()))
	}
	if err := e.verifyDigest(tmpPath, hasher.Sum64()); err != nil {
		e.discard(tmpPath)
		return err
	}

	if err := e.FS.Rename(tmpPath, dest); err != nil {
		e.discard(tmpPath)
		return appErrors.Classify("rename", dest, err)
	}
	if err := e.FS.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		e.Logger.Debug().Str("path", dest).Err(err).Msg("could not restore modification time")
	}

	if entry.Action == domain.ActionMove {
		if err := e.FS.Remove(src); err != nil {
			return appErrors.Classify("remove", src, err)
		}
	}
	return nil
}

// verifyDigest re-reads the written temp file and compares its digest with
// the digest of the bytes that were read from the source.
func (e *Executor) verifyDigest(path string, want uint64) error {
	f, err := e.FS.Open(path)
	if err != nil {
		return appErrors.Classify("verify", path, err)
	}
	defer f.Close()

	hasher := xxh3.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return appErrors.Classify("verify", path, err)
	}
	if got := hasher.Sum64(); got != want {
		return appErrors.Wrap(appErrors.Integrity, "verify", path,
			fmt.Errorf("content digest mismatch: %016x != %016x", got, want))
	}
	return nil
}

func (e *Executor) discard(tmpPath string) {
	if err := e.FS.Remove(tmpPath); err != nil {
		e.Logger.Debug().Str("path", tmpPath).Err(err).Msg("could not remove temp file")
	}
}
