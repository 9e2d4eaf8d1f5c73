package app

import (
	"errors"
	"io"
	"io/fs"
	"sort"
	"strings"
	"time"
)

// mockFS replays a fixed directory layout for planner tests. Paths use
// forward slashes and are treated as absolute.
type mockFS struct {
	dirs   []string
	files  []mockFile
	exists map[string]bool
}

type mockFile struct {
	path    string
	size    int64
	symlink bool
}

func (m mockFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	type item struct {
		path    string
		isDir   bool
		size    int64
		symlink bool
	}

	items := []item{{path: root, isDir: true}}
	for _, d := range m.dirs {
		if strings.HasPrefix(d, root+"/") {
			items = append(items, item{path: d, isDir: true})
		}
	}
	for _, f := range m.files {
		if strings.HasPrefix(f.path, root+"/") {
			items = append(items, item{path: f.path, size: f.size, symlink: f.symlink})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].path < items[j].path })

	skip := ""
	for _, it := range items {
		if skip != "" && strings.HasPrefix(it.path, skip+"/") {
			continue
		}
		entry := mockDirEntry{name: baseName(it.path), isDir: it.isDir, size: it.size, symlink: it.symlink}
		err := fn(it.path, entry, nil)
		if errors.Is(err, fs.SkipDir) {
			if it.isDir {
				skip = it.path
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m mockFS) Stat(path string) (fs.FileInfo, error) {
	for _, d := range m.dirs {
		if d == path {
			return mockFileInfo{name: baseName(path), isDir: true}, nil
		}
	}
	for _, f := range m.files {
		if f.path == path {
			return mockFileInfo{name: baseName(path), size: f.size}, nil
		}
	}
	return nil, fs.ErrNotExist
}

func (m mockFS) Exists(path string) (bool, error) {
	return m.exists[path], nil
}

func (m mockFS) ReadDir(path string) ([]fs.DirEntry, error) {
	return nil, errors.New("not implemented")
}

func (m mockFS) MkdirAll(path string, perm fs.FileMode) error {
	return nil
}

func (m mockFS) Open(path string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (m mockFS) CreateTemp(dir, pattern string) (io.WriteCloser, string, error) {
	return nil, "", errors.New("not implemented")
}

func (m mockFS) Rename(oldPath, newPath string) error {
	return errors.New("not implemented")
}

func (m mockFS) Remove(path string) error {
	return errors.New("not implemented")
}

func (m mockFS) Chtimes(path string, atime, mtime time.Time) error {
	return nil
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

type mockDirEntry struct {
	name    string
	isDir   bool
	size    int64
	symlink bool
}

func (m mockDirEntry) Name() string { return m.name }
func (m mockDirEntry) IsDir() bool  { return m.isDir }
func (m mockDirEntry) Type() fs.FileMode {
	if m.symlink {
		return fs.ModeSymlink
	}
	if m.isDir {
		return fs.ModeDir
	}
	return 0
}
func (m mockDirEntry) Info() (fs.FileInfo, error) {
	return mockFileInfo{name: m.name, size: m.size, isDir: m.isDir}, nil
}

type mockFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (m mockFileInfo) Name() string       { return m.name }
func (m mockFileInfo) Size() int64        { return m.size }
func (m mockFileInfo) Mode() fs.FileMode  { return 0 }
func (m mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m mockFileInfo) IsDir() bool        { return m.isDir }
func (m mockFileInfo) Sys() any           { return nil }

// hookFS wraps a real filesystem and lets a test observe source opens, for
// deterministic mid-job cancellation.
type hookFS struct {
	FileSystem
	onOpen func(path string)
}

func (h hookFS) Open(path string) (io.ReadCloser, error) {
	if h.onOpen != nil {
		h.onOpen(path)
	}
	return h.FileSystem.Open(path)
}

// denyOpenFS refuses to open a single source path, as if its permissions
// excluded the current user.
type denyOpenFS struct {
	FileSystem
	denied string
}

func (d denyOpenFS) Open(path string) (io.ReadCloser, error) {
	if path == d.denied {
		return nil, fs.ErrPermission
	}
	return d.FileSystem.Open(path)
}

// failWriteFS makes every temp-file write fail with the given error.
type failWriteFS struct {
	FileSystem
	err error
}

func (f failWriteFS) CreateTemp(dir, pattern string) (io.WriteCloser, string, error) {
	w, path, err := f.FileSystem.CreateTemp(dir, pattern)
	if err != nil {
		return nil, "", err
	}
	return failWriter{inner: w, err: f.err}, path, nil
}

type failWriter struct {
	inner io.WriteCloser
	err   error
}

func (w failWriter) Write(p []byte) (int, error) { return 0, w.err }
func (w failWriter) Close() error                { return w.inner.Close() }

// corruptReadFS serves altered bytes when the executor re-reads its temp
// file, to force a digest mismatch.
type corruptReadFS struct {
	FileSystem
}

func (c corruptReadFS) Open(path string) (io.ReadCloser, error) {
	if strings.Contains(baseName(path), ".picmerge-") {
		return io.NopCloser(strings.NewReader("corrupted")), nil
	}
	return c.FileSystem.Open(path)
}
