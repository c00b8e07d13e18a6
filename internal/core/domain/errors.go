package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// Error kinds. Errors produced by adapters and the engine are joined with one
// of these so callers can classify them with errors.Is.
var (
	// ErrConfigInvalid marks a malformed task configuration. It is fatal at startup.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrNetwork marks a failed fetch: connection error, timeout or non-success status.
	ErrNetwork = zerr.New("network error")

	// ErrIO marks a failed local filesystem operation.
	ErrIO = zerr.New("local I/O error")
)

var (
	// ErrCustomTaskIncomplete is returned when a custom task is missing its pattern, listing path or image directory.
	ErrCustomTaskIncomplete = zerr.New("custom task requires pattern, listing path and image directory")

	// ErrDuplicateCategory is returned when two tasks share a category name.
	ErrDuplicateCategory = zerr.New("duplicate category")

	// ErrInvalidCategory is returned when a category name cannot be used as a directory name.
	ErrInvalidCategory = zerr.New("category name can only contain alphanumeric characters, hyphens and underscores")

	// ErrNoTasksConfigured is returned when no category is enabled.
	ErrNoTasksConfigured = zerr.New("no tasks configured")

	// ErrInvalidHost is returned when the upstream host is not an absolute http(s) URL.
	ErrInvalidHost = zerr.New("invalid upstream host")

	// ErrInvalidPath is returned when a listing path or image directory cannot be resolved against the host.
	ErrInvalidPath = zerr.New("invalid upstream path")

	// ErrInvalidOption is returned when a numeric run option is out of range.
	ErrInvalidOption = zerr.New("invalid option")

	// ErrConfigReadFailed is returned when the task file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read task file")

	// ErrConfigParseFailed is returned when the task file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse task file")

	// ErrUnsupportedConfigVersion is returned when the task file declares an unknown version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported task file version")

	// ErrUnexpectedStatus is returned when the upstream answers with a non-success status.
	ErrUnexpectedStatus = zerr.New("unexpected HTTP status")

	// ErrListingFetchFailed is returned when a task's listing resource cannot be fetched.
	ErrListingFetchFailed = zerr.New("failed to fetch listing")

	// ErrLocalDirCreateFailed is returned when a download directory cannot be created.
	ErrLocalDirCreateFailed = zerr.New("failed to create download directory")

	// ErrLocalDirReadFailed is returned when a download directory cannot be listed.
	ErrLocalDirReadFailed = zerr.New("failed to read download directory")

	// ErrLocalWriteFailed is returned when a downloaded file cannot be written.
	ErrLocalWriteFailed = zerr.New("failed to write file")

	// ErrJournalReadFailed is returned when a journal entry cannot be read.
	ErrJournalReadFailed = zerr.New("failed to read journal entry")

	// ErrJournalUnmarshalFailed is returned when a journal entry cannot be decoded.
	ErrJournalUnmarshalFailed = zerr.New("failed to unmarshal journal entry")

	// ErrJournalMarshalFailed is returned when a journal entry cannot be encoded.
	ErrJournalMarshalFailed = zerr.New("failed to marshal journal entry")

	// ErrJournalWriteFailed is returned when a journal entry cannot be written.
	ErrJournalWriteFailed = zerr.New("failed to write journal entry")

	// ErrCycleFailed is returned by a one-shot run in which at least one task or file failed.
	ErrCycleFailed = zerr.New("one or more tasks failed")
)

// Classify joins err with the kind sentinel so that errors.Is matches both the
// kind and everything already in err's chain. A nil err stays nil.
func Classify(kind, err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(kind, err)
}
