package domain

// Event is the interface implemented by all merge job events. Events are
// delivered to the consumer in emission order: one PlanReady, then exactly
// one per-file event per plan entry, then one JobSummary.
type Event interface {
	isEvent()
}

// PlanReady is emitted once planning finishes, before the first transfer.
type PlanReady struct {
	TotalFiles int
	TotalBytes int64
}

func (PlanReady) isEvent() {}

// FileTransferred is emitted after a file is verified and renamed into place.
type FileTransferred struct {
	Path  string
	Bytes int64
}

func (FileTransferred) isEvent() {}

// FileSkipped is emitted for entries excluded by the collision policy.
type FileSkipped struct {
	Path   string
	Reason string
}

func (FileSkipped) isEvent() {}

// FileFailed is emitted for per-file errors; the job moves on to the next
// entry unless the error kind is job-fatal.
type FileFailed struct {
	Path string
	Kind string
	Err  error
}

func (FileFailed) isEvent() {}

// JobSummary is the final event of every job. No events follow it.
type JobSummary struct {
	Completed  int
	Skipped    int
	Failed     int
	PrunedDirs int
	FinalState JobState
	Err        error
}

func (JobSummary) isEvent() {}
