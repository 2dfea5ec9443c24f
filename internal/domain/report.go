package domain

import "time"

type OutcomeStatus string

const (
	Copied             OutcomeStatus = "copied"
	SkippedNoTimestamp OutcomeStatus = "skipped_no_timestamp"
	SkippedUnsupported OutcomeStatus = "skipped_unsupported"
	AbortedNotFound    OutcomeStatus = "aborted_not_found"
	AbortedIO          OutcomeStatus = "aborted_io"
)

func (s OutcomeStatus) Skipped() bool {
	return s == SkippedNoTimestamp || s == SkippedUnsupported
}

func (s OutcomeStatus) Fatal() bool {
	return s == AbortedNotFound || s == AbortedIO
}

type Outcome struct {
	Source     SourceFile
	Status     OutcomeStatus
	TakenAt    time.Time
	Folder     string
	TargetPath string
	Err        error
}

// BatchReport holds one Outcome per processed file. Files after a fatal
// outcome are never processed and have no entry.
type BatchReport struct {
	ID        string
	Outcomes  []Outcome
	Total     int
	Completed bool
	DryRun    bool
	Started   time.Time
	Finished  time.Time
}

func (r BatchReport) Count(status OutcomeStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

func (r BatchReport) CopiedCount() int {
	return r.Count(Copied)
}

func (r BatchReport) SkippedCount() int {
	return r.Count(SkippedNoTimestamp) + r.Count(SkippedUnsupported)
}

// Fatal returns the outcome that aborted the batch, if any.
func (r BatchReport) Fatal() (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Status.Fatal() {
			return o, true
		}
	}
	return Outcome{}, false
}

// Folders lists destination folders in first-use order.
func (r BatchReport) Folders() []string {
	seen := map[string]bool{}
	var folders []string
	for _, o := range r.Outcomes {
		if o.Status != Copied || seen[o.Folder] {
			continue
		}
		seen[o.Folder] = true
		folders = append(folders, o.Folder)
	}
	return folders
}
