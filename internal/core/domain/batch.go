package domain

import "time"

// FileState is the lifecycle state of one file within a batch run.
type FileState string

const (
	// FileDiscovered means the file was listed and is eligible.
	FileDiscovered FileState = "discovered"

	// FileProcessing means the processor is running on the file.
	FileProcessing FileState = "processing"

	// FileDisposed means stats were saved and the file was retired.
	FileDisposed FileState = "disposed"

	// FileFailed means a step failed and the file was left in place.
	FileFailed FileState = "failed"
)

// FileResult is the outcome of one file in a batch run.
type FileResult struct {
	// Name is the file's base name.
	Name string

	// Path is the file's original path.
	Path string

	// State is the terminal state reached.
	State FileState

	// Outcome is set once processing succeeded, even if a later step failed.
	Outcome *Outcome

	// Destination is the archive path, empty when deleted or failed.
	Destination string

	// Err is the failure cause for FileFailed.
	Err error
}

// BatchReport summarises one folder run.
type BatchReport struct {
	// RunID correlates log lines of the run.
	RunID string

	// Category is the category whose folder was processed.
	Category Category

	// Folder is the absolute or root-relative folder path.
	Folder string

	// StartedAt is when the run began; it also names the archive folder.
	StartedAt time.Time

	// Files holds one entry per eligible file, in listing order.
	Files []FileResult
}

// Succeeded returns the number of files that were fully retired.
func (r BatchReport) Succeeded() int {
	n := 0
	for _, f := range r.Files {
		if f.State == FileDisposed {
			n++
		}
	}
	return n
}

// Failed returns the files that ended in FileFailed.
func (r BatchReport) Failed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.State == FileFailed {
			out = append(out, f)
		}
	}
	return out
}
