package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a page could not be downloaded.
type ErrorKind int

const (
	// KindNone is the kind of a successful or skipped result.
	KindNone ErrorKind = iota

	// KindTransientNetwork is a connection-level failure that persisted
	// for the whole retry budget.
	KindTransientNetwork

	// KindPermanent is a failure that is not worth retrying: an
	// unclassifiable transport error or an unusable HTTP response.
	KindPermanent

	// KindParse means the page document lacked the expected structure.
	KindParse

	// KindFilesystem is a directory creation or file write failure.
	KindFilesystem
)

// String returns a human-readable representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransientNetwork:
		return "transient network error"
	case KindPermanent:
		return "permanent error"
	case KindParse:
		return "parse error"
	case KindFilesystem:
		return "filesystem error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Kinder is implemented by errors that know their ErrorKind.
type Kinder interface {
	Kind() ErrorKind
}

// KindOf returns the ErrorKind of the first error in err's chain that
// implements Kinder. Errors without a kind are permanent.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var k Kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindPermanent
}

// FilesystemError wraps a failure to create the output directory or to
// write an artifact.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem: %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// Kind implements Kinder.
func (e *FilesystemError) Kind() ErrorKind { return KindFilesystem }

// Status is the terminal state of a DownloadTask.
type Status int

const (
	StatusSkipped Status = iota
	StatusSaved
	StatusFailed
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusSaved:
		return "saved"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of one DownloadTask.
type Result struct {
	Task   DownloadTask
	Status Status

	// Path is the artifact path. It is empty when the image reference
	// could not be resolved.
	Path string

	// Kind and Err are set only for failed results.
	Kind ErrorKind
	Err  error
}

// Skipped builds a result for an artifact that already existed.
func Skipped(task DownloadTask, path string) Result {
	return Result{Task: task, Status: StatusSkipped, Path: path}
}

// Saved builds a result for a newly written artifact.
func Saved(task DownloadTask, path string) Result {
	return Result{Task: task, Status: StatusSaved, Path: path}
}

// Failed builds a failed result, classifying err with KindOf.
func Failed(task DownloadTask, path string, err error) Result {
	return Result{Task: task, Status: StatusFailed, Path: path, Kind: KindOf(err), Err: err}
}
