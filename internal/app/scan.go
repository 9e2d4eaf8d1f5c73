package app

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"picmerge/internal/domain"
	appErrors "picmerge/internal/errors"
)

// ScannedImage is a discovered image plus its capture date, when one could
// be read. TakenAt falls back to the file modification time.
type ScannedImage struct {
	domain.FileEntry
	TakenAt time.Time
	HasDate bool
}

type Scanner struct {
	FS       FileSystem
	Metadata MetadataReader
	Workers  int
	Logger   zerolog.Logger
}

// Scan enumerates supported images under folder recursively and resolves
// capture dates with a bounded worker pool.
func (s *Scanner) Scan(ctx context.Context, folder string) ([]ScannedImage, error) {
	info, err := s.FS.Stat(folder)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.NotFound, "scan", folder, err)
	}
	if !info.IsDir() {
		return nil, appErrors.Wrap(appErrors.NotFound, "scan", folder, errors.New("not a directory"))
	}

	planner := &Planner{FS: s.FS, Logger: s.Logger}
	files, err := planner.enumerate(folder, domain.MergeConfiguration{Recursive: true})
	if err != nil {
		return nil, err
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	out := make([]ScannedImage, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			out[i] = ScannedImage{FileEntry: file}
			if s.Metadata == nil {
				return nil
			}
			takenAt, err := s.Metadata.DateTimeOriginal(ctx, file.SourcePath)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				if info, statErr := s.FS.Stat(file.SourcePath); statErr == nil {
					out[i].TakenAt = info.ModTime()
				}
				return nil
			}
			out[i].TakenAt = takenAt
			out[i].HasDate = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
