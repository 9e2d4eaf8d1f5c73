package app

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	appErrors "picmerge/internal/errors"
)

type PruneOptions struct {
	DryRun bool
	// IncludeRoot allows removal of the root itself once it is empty, which
	// is what a move merge wants for drained source folders.
	IncludeRoot bool
}

type Pruner struct {
	FS     FileSystem
	Logger zerolog.Logger
}

// Prune removes empty directories under root, deepest first, and returns how
// many were removed (or would be, under DryRun).
func (p *Pruner) Prune(root string, opts PruneOptions) (int, error) {
	var dirs []string
	err := p.FS.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return 0, appErrors.Classify("prune", root, err)
	}

	// Children sort after their parent, so walking the list backwards
	// visits the deepest directories first.
	sort.Strings(dirs)

	// A dry run deletes nothing, so emptiness has to discount children it
	// would already have removed or parents undercount against a real run.
	wouldRemove := map[string]bool{}

	removed := 0
	for i := len(dirs) - 1; i >= 0; i-- {
		dir := dirs[i]
		if dir == root && !opts.IncludeRoot {
			continue
		}
		entries, err := p.FS.ReadDir(dir)
		if err != nil {
			p.Logger.Debug().Str("dir", dir).Err(err).Msg("could not read directory")
			continue
		}
		remaining := 0
		for _, entry := range entries {
			if !wouldRemove[filepath.Join(dir, entry.Name())] {
				remaining++
			}
		}
		if remaining > 0 {
			continue
		}
		if opts.DryRun {
			p.Logger.Info().Str("dir", dir).Msg("would remove empty directory")
			wouldRemove[dir] = true
			removed++
			continue
		}
		if err := p.FS.Remove(dir); err != nil {
			p.Logger.Warn().Str("dir", dir).Err(err).Msg("could not remove empty directory")
			continue
		}
		p.Logger.Debug().Str("dir", dir).Msg("removed empty directory")
		removed++
	}
	return removed, nil
}
