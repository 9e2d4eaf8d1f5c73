package app

import (
	"context"
	"io"
	"io/fs"
	"time"
)

type FileSystem interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error
	Open(path string) (io.ReadCloser, error)
	// CreateTemp creates a writable temp file in dir and returns it together
	// with its path, so a finished write can be renamed into place.
	CreateTemp(dir, pattern string) (io.WriteCloser, string, error)
	Rename(oldPath, newPath string) error
	Remove(path string) error
	Chtimes(path string, atime, mtime time.Time) error
}

type MetadataReader interface {
	DateTimeOriginal(ctx context.Context, path string) (time.Time, error)
}
