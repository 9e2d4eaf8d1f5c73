package app

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"picmerge/internal/domain"
	appErrors "picmerge/internal/errors"
)

const eventBuffer = 64

// Job is one merge run. The worker goroutine owns the plan and state; the
// consumer only reads the event stream, which carries one PlanReady, one
// per-file event per plan entry, and exactly one closing JobSummary.
type Job struct {
	ID          uuid.UUID
	sources     []string
	destination string
	cfg         domain.MergeConfiguration

	fs     FileSystem
	logger zerolog.Logger

	events     chan domain.Event
	cancel     chan struct{}
	cancelOnce sync.Once

	mu    sync.Mutex
	state domain.JobState
}

// Service accepts merge submissions and tracks running jobs by handle.
type Service struct {
	FS     FileSystem
	Logger zerolog.Logger

	mu   sync.Mutex
	jobs map[uuid.UUID]*Job
}

func NewService(fsys FileSystem, logger zerolog.Logger) *Service {
	return &Service{
		FS:     fsys,
		Logger: logger,
		jobs:   make(map[uuid.UUID]*Job),
	}
}

// Submit validates the configuration and the root layout synchronously, then
// starts the merge on a background goroutine. A job that fails validation is
// never created.
func (s *Service) Submit(sources []string, destination string, cfg domain.MergeConfiguration) (*Job, error) {
	if err := cfg.Validate(); err != nil {
		return nil, appErrors.Wrap(appErrors.InvalidConfig, "submit", "", err)
	}
	planner := &Planner{FS: s.FS, Logger: s.Logger}
	if err := planner.ValidateLayout(sources, destination); err != nil {
		return nil, err
	}

	id := uuid.New()
	job := &Job{
		ID:          id,
		sources:     append([]string(nil), sources...),
		destination: destination,
		cfg:         cfg,
		fs:          s.FS,
		logger:      s.Logger.With().Str("job", id.String()).Logger(),
		events:      make(chan domain.Event, eventBuffer),
		cancel:      make(chan struct{}),
		state:       domain.StatePending,
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	go job.run()
	return job, nil
}

func (s *Service) Job(id uuid.UUID) (*Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	return job, ok
}

func (s *Service) Cancel(id uuid.UUID) bool {
	job, ok := s.Job(id)
	if !ok {
		return false
	}
	job.Cancel()
	return true
}

// Events returns the subscription stream. The caller must drain it; the
// channel is closed after the summary event.
func (j *Job) Events() <-chan domain.Event {
	return j.events
}

// Cancel requests cooperative cancellation. Safe to call from any goroutine
// and idempotent; the worker observes it before starting the next transfer.
func (j *Job) Cancel() {
	j.cancelOnce.Do(func() {
		close(j.cancel)
	})
}

func (j *Job) State() domain.JobState {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

func (j *Job) setState(s domain.JobState) {
	j.mu.Lock()
	j.state = s
	j.mu.Unlock()
}

func (j *Job) cancelled() bool {
	select {
	case <-j.cancel:
		return true
	default:
		return false
	}
}

func (j *Job) run() {
	defer close(j.events)

	j.setState(domain.StatePlanning)
	planner := &Planner{FS: j.fs, Logger: j.logger}
	plan, err := planner.Plan(context.Background(), j.sources, j.destination, j.cfg)
	if err != nil {
		j.setState(domain.StateFailed)
		j.events <- domain.JobSummary{FinalState: domain.StateFailed, Err: err}
		return
	}
	if err := j.fs.MkdirAll(j.destination, 0o755); err != nil {
		j.setState(domain.StateFailed)
		j.events <- domain.JobSummary{FinalState: domain.StateFailed, Err: appErrors.Classify("mkdir", j.destination, err)}
		return
	}

	j.events <- domain.PlanReady{TotalFiles: plan.TotalFiles(), TotalBytes: plan.TotalBytes()}
	j.setState(domain.StateRunning)

	executor := &Executor{FS: j.fs, Logger: j.logger}
	var completed, skipped, failed int
	summary := func(state domain.JobState, pruned int, err error) domain.JobSummary {
		return domain.JobSummary{
			Completed:  completed,
			Skipped:    skipped,
			Failed:     failed,
			PrunedDirs: pruned,
			FinalState: state,
			Err:        err,
		}
	}

	for _, entry := range plan.Entries {
		// Cancellation is observed only at this boundary, so a file is
		// either fully transferred or never started.
		if j.cancelled() {
			j.setState(domain.StateCancelled)
			j.events <- summary(domain.StateCancelled, 0, nil)
			return
		}

		if entry.Action == domain.ActionSkip {
			skipped++
			j.events <- domain.FileSkipped{Path: entry.Destination, Reason: entry.SkipReason}
			continue
		}

		if err := executor.Transfer(entry, j.destination); err != nil {
			failed++
			j.logger.Error().Str("path", entry.File.SourcePath).Err(err).Msg("transfer failed")
			j.events <- domain.FileFailed{Path: entry.Destination, Kind: string(appErrors.KindOf(err)), Err: err}
			if appErrors.Fatal(err) {
				j.setState(domain.StateFailed)
				j.events <- summary(domain.StateFailed, 0, err)
				return
			}
			continue
		}

		completed++
		j.events <- domain.FileTransferred{Path: entry.Destination, Bytes: entry.File.Size}
	}

	// A move merge drains its sources; clean up what it left behind, the
	// source roots themselves included.
	pruned := 0
	if j.cfg.Mode == domain.ModeMove {
		pruner := &Pruner{FS: j.fs, Logger: j.logger}
		for _, root := range j.sources {
			n, err := pruner.Prune(root, PruneOptions{IncludeRoot: true})
			if err != nil {
				j.logger.Warn().Str("root", root).Err(err).Msg("could not prune empty source directories")
				continue
			}
			pruned += n
		}
	}

	j.setState(domain.StateCompleted)
	j.events <- summary(domain.StateCompleted, pruned, nil)
}
