package app

import (
	"io/fs"
	"path/filepath"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"picmerge/internal/domain"
	appErrors "picmerge/internal/errors"
)

// previewDepth bounds how far below a folder the preview search descends.
const previewDepth = 2

// FolderSummary describes one immediate subdirectory of a root: how many
// images it holds and which image represents it.
type FolderSummary struct {
	Path       string
	Name       string
	ImageCount int
	Preview    string
}

// PreviewFinder locates a representative image for a folder. Lookups walk
// the filesystem, so results are kept in an LRU cache keyed by folder path.
type PreviewFinder struct {
	FS     FileSystem
	Logger zerolog.Logger
	cache  *lru.Cache[string, string]
}

func NewPreviewFinder(fsys FileSystem, logger zerolog.Logger, cacheSize int) (*PreviewFinder, error) {
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, err
	}
	return &PreviewFinder{FS: fsys, Logger: logger, cache: cache}, nil
}

// Preview returns the first non-empty supported image in folder, searching
// the folder itself and then up to two levels of subfolders.
func (f *PreviewFinder) Preview(folder string) (string, bool) {
	if cached, ok := f.cache.Get(folder); ok {
		return cached, cached != ""
	}
	found := f.find(folder, 0)
	f.cache.Add(folder, found)
	return found, found != ""
}

func (f *PreviewFinder) find(folder string, depth int) string {
	entries, err := f.FS.ReadDir(folder)
	if err != nil {
		f.Logger.Debug().Str("dir", folder).Err(err).Msg("could not read directory")
		return ""
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() || entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if !domain.IsSupportedExtension(filepath.Ext(entry.Name())) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() == 0 {
			continue
		}
		return filepath.Join(folder, entry.Name())
	}

	if depth >= previewDepth {
		return ""
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if found := f.find(filepath.Join(folder, entry.Name()), depth+1); found != "" {
			return found
		}
	}
	return ""
}

// Summarize lists the immediate subdirectories of root with their recursive
// image counts and preview images.
func (f *PreviewFinder) Summarize(root string) ([]FolderSummary, error) {
	entries, err := f.FS.ReadDir(root)
	if err != nil {
		return nil, appErrors.Classify("list", root, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []FolderSummary
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		preview, _ := f.Preview(path)
		out = append(out, FolderSummary{
			Path:       path,
			Name:       entry.Name(),
			ImageCount: f.countImages(path),
			Preview:    preview,
		})
	}
	return out, nil
}

func (f *PreviewFinder) countImages(folder string) int {
	count := 0
	_ = f.FS.WalkDir(folder, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if domain.IsSupportedExtension(filepath.Ext(d.Name())) {
			count++
		}
		return nil
	})
	return count
}
