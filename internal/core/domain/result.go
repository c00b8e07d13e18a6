package domain

import "time"

// Outcome is the result of processing one matched file.
type Outcome int

const (
	// OutcomeSkipped means the file already existed locally and no request was made.
	OutcomeSkipped Outcome = iota
	// OutcomeDownloaded means the file was fetched and saved under its final name.
	OutcomeDownloaded
	// OutcomeFailed means fetching or saving the file failed.
	OutcomeFailed
	// OutcomeCanceled means the run was interrupted before the file was finished.
	OutcomeCanceled
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeDownloaded:
		return "downloaded"
	case OutcomeFailed:
		return "failed"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// FileFailure records why a single file could not be downloaded.
type FileFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// TaskResult accounts for every candidate of one task in one cycle.
// Listed - Matched candidates were filtered out.
type TaskResult struct {
	Category   string        `json:"category"`
	Listed     int           `json:"listed"`
	Matched    int           `json:"matched"`
	Downloaded int           `json:"downloaded"`
	Skipped    int           `json:"skipped"`
	Failed     int           `json:"failed"`
	Canceled   int           `json:"canceled"`
	Bytes      int64         `json:"bytes"`
	Error      string        `json:"error,omitempty"`
	Failures   []FileFailure `json:"failures,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}

// Record adds the outcome of one matched file.
func (r *TaskResult) Record(filename string, outcome Outcome, size int64, err error) {
	switch outcome {
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeDownloaded:
		r.Downloaded++
		r.Bytes += size
	case OutcomeFailed:
		r.Failed++
		f := FileFailure{Filename: filename}
		if err != nil {
			f.Error = err.Error()
		}
		r.Failures = append(r.Failures, f)
	case OutcomeCanceled:
		r.Canceled++
	}
}

// Filtered returns the number of listed candidates rejected by the pattern.
func (r TaskResult) Filtered() int {
	return r.Listed - r.Matched
}

// HasFailure reports whether the task failed as a whole or for any file.
func (r TaskResult) HasFailure() bool {
	return r.Error != "" || r.Failed > 0
}

// Duration returns how long the task took.
func (r TaskResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// CycleResult aggregates the task results of one cycle.
type CycleResult struct {
	Tasks []TaskResult
}

// Failed reports whether any task in the cycle failed.
func (c CycleResult) Failed() bool {
	for _, t := range c.Tasks {
		if t.HasFailure() {
			return true
		}
	}
	return false
}

// Downloaded returns the number of files saved across all tasks.
func (c CycleResult) Downloaded() int {
	n := 0
	for _, t := range c.Tasks {
		n += t.Downloaded
	}
	return n
}
