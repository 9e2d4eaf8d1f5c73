package domain

import (
	"path/filepath"
	"strings"
)

// FileEntry is one discovered image file. Immutable once created.
type FileEntry struct {
	SourceRoot   string
	SourcePath   string
	RelativePath string
	Name         string
	Ext          string
	Size         int64
}

func NewFileEntry(sourceRoot, sourcePath, relativePath string, size int64) FileEntry {
	name := filepath.Base(sourcePath)
	return FileEntry{
		SourceRoot:   sourceRoot,
		SourcePath:   sourcePath,
		RelativePath: filepath.ToSlash(relativePath),
		Name:         name,
		Ext:          strings.ToLower(filepath.Ext(name)),
		Size:         size,
	}
}

var supportedExtensions = []string{
	".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff", ".webp", ".heic",
}

func IsSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, s := range supportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// SupportedExtensions returns the full supported image extension set,
// lowercase with leading dots.
func SupportedExtensions() []string {
	out := make([]string, len(supportedExtensions))
	copy(out, supportedExtensions)
	return out
}
