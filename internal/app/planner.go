package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"picmerge/internal/domain"
	appErrors "picmerge/internal/errors"
)

type Planner struct {
	FS     FileSystem
	Logger zerolog.Logger
}

// ValidateLayout checks the source and destination roots before anything is
// enumerated. A destination inside a source (or the other way around) would
// make the merge ingest its own output.
func (p *Planner) ValidateLayout(sources []string, destination string) error {
	if len(sources) == 0 {
		return appErrors.Wrap(appErrors.InvalidConfig, "validate", "", errors.New("no source roots given"))
	}
	if destination == "" {
		return appErrors.Wrap(appErrors.InvalidConfig, "validate", "", errors.New("no destination root given"))
	}

	destAbs, err := filepath.Abs(destination)
	if err != nil {
		return appErrors.Wrap(appErrors.InvalidConfig, "validate", destination, err)
	}

	for _, src := range sources {
		info, err := p.FS.Stat(src)
		if err != nil {
			return appErrors.Wrap(appErrors.NotFound, "validate", src, err)
		}
		if !info.IsDir() {
			return appErrors.Wrap(appErrors.NotFound, "validate", src, errors.New("not a directory"))
		}
		srcAbs, err := filepath.Abs(src)
		if err != nil {
			return appErrors.Wrap(appErrors.InvalidConfig, "validate", src, err)
		}
		if srcAbs == destAbs || nested(destAbs, srcAbs) || nested(srcAbs, destAbs) {
			return appErrors.Wrap(appErrors.InvalidConfig, "validate", destination,
				fmt.Errorf("destination %s overlaps source %s", destination, src))
		}
	}

	if info, err := p.FS.Stat(destination); err == nil && !info.IsDir() {
		return appErrors.Wrap(appErrors.InvalidConfig, "validate", destination, errors.New("destination is not a directory"))
	}
	return nil
}

// Plan enumerates every eligible file under the source roots and resolves a
// destination for each. Ordering is source-root order, then lexicographic
// relative path within a root, so two runs over an unchanged tree produce
// the same plan.
func (p *Planner) Plan(ctx context.Context, sources []string, destination string, cfg domain.MergeConfiguration) (domain.MergePlan, error) {
	action := domain.ActionCopy
	if cfg.Mode == domain.ModeMove {
		action = domain.ActionMove
	}

	claimed := map[string]bool{}
	exists := func(rel string) bool {
		ok, err := p.FS.Exists(filepath.Join(destination, filepath.FromSlash(rel)))
		if err != nil {
			p.Logger.Debug().Str("path", rel).Err(err).Msg("existence check failed, treating as absent")
		}
		return ok
	}

	var plan domain.MergePlan
	for _, root := range sources {
		if err := ctx.Err(); err != nil {
			return domain.MergePlan{}, err
		}
		files, err := p.enumerate(root, cfg)
		if err != nil {
			return domain.MergePlan{}, appErrors.Classify("plan", root, err)
		}
		p.Logger.Debug().Str("root", root).Int("files", len(files)).Msg("enumerated source root")

		for _, file := range files {
			final, skip := Resolve(file.RelativePath, claimed, exists, cfg.OnCollision)
			if skip {
				plan.Entries = append(plan.Entries, domain.MergePlanEntry{
					File:        file,
					Destination: final,
					Action:      domain.ActionSkip,
					SkipReason:  "destination already exists",
				})
				continue
			}
			if cfg.OnCollision == domain.CollisionOverwrite && claimed[final] {
				p.Logger.Warn().Str("path", final).Msg("multiple sources overwrite the same destination, last one wins")
			}
			claimed[final] = true
			plan.Entries = append(plan.Entries, domain.MergePlanEntry{
				File:        file,
				Destination: final,
				Action:      action,
			})
		}
	}
	return plan, nil
}

func (p *Planner) enumerate(root string, cfg domain.MergeConfiguration) ([]domain.FileEntry, error) {
	var entries []domain.FileEntry
	err := p.FS.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !cfg.Recursive && path != root {
				return fs.SkipDir
			}
			return nil
		}
		// Symlinks are never followed; a link into a source root could
		// otherwise produce cycles or duplicate entries.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if !cfg.Includes(filepath.Ext(d.Name())) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = d.Name()
		}
		entries = append(entries, domain.NewFileEntry(root, path, rel, info.Size()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RelativePath < entries[j].RelativePath
	})
	return entries, nil
}

// nested reports whether a lies strictly inside b.
func nested(a, b string) bool {
	rel, err := filepath.Rel(b, a)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
