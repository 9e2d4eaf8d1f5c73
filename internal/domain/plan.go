package domain

// Action tags what the executor should do with a plan entry.
type Action string

const (
	ActionCopy Action = "copy"
	ActionMove Action = "move"
	ActionSkip Action = "skip"
)

// MergePlanEntry pairs a discovered file with its resolved destination.
// The full plan is computed before any write happens, so totals are exact
// and a dry run can show precisely what a merge would do.
type MergePlanEntry struct {
	File FileEntry
	// Destination is the resolved path relative to the destination root,
	// in slash form.
	Destination string
	Action      Action
	SkipReason  string
}

type MergePlan struct {
	Entries []MergePlanEntry
}

// TotalFiles counts every entry; each produces exactly one per-file event.
func (p MergePlan) TotalFiles() int {
	return len(p.Entries)
}

// TotalBytes sums the sizes of the entries that will actually be written.
func (p MergePlan) TotalBytes() int64 {
	var total int64
	for _, e := range p.Entries {
		if e.Action != ActionSkip {
			total += e.File.Size
		}
	}
	return total
}

func (p MergePlan) SkippedCount() int {
	n := 0
	for _, e := range p.Entries {
		if e.Action == ActionSkip {
			n++
		}
	}
	return n
}
