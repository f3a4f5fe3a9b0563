package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Run Errors.

	// ErrUsage indicates the command line was incomplete or malformed.
	// Nothing has been read or written when this is returned.
	ErrUsage = errors.New("usage error")

	// ErrInputNotFound indicates the conversation archive does not exist.
	ErrInputNotFound = errors.New("archive not found")

	// Sync Errors.
	// Apart from ErrRelocation these abort a single document only.

	// ErrHeaderParse indicates a document header could not be parsed.
	// The file needs manual verification.
	ErrHeaderParse = errors.New("header parse failed")

	// ErrTypeConflict indicates the on-disk document has a different type
	// than the incoming one.
	ErrTypeConflict = errors.New("type conflict")

	// ErrVersionConflict indicates both the on-disk copy and the archive
	// changed since the last import.
	ErrVersionConflict = errors.New("version conflict")

	// ErrRelocation indicates a previously imported file could not be moved
	// to its new location. The run halts because the index is no longer
	// consistent with the disk.
	ErrRelocation = errors.New("relocation failed")
)

// IsConflict reports whether err is a sync outcome that needs manual resolution.
func IsConflict(err error) bool {
	return errors.Is(err, ErrTypeConflict) ||
		errors.Is(err, ErrVersionConflict) ||
		errors.Is(err, ErrHeaderParse)
}
