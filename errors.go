package srctrail

import "errors"

// Error taxonomy. Every public operation that can fail wraps one of these
// sentinels into lastError; none of them escape the public API directly —
// callers inspect GetLastError instead. They remain exported so tests and
// embedders that do inspect an error value via errors.Is can do so.
var (
	// ErrBackend wraps a SQL, file-open, or VACUUM failure surfaced from
	// the storage layer.
	ErrBackend = errors.New("srctrail: backend error")
	// ErrIncompatibleDatabase is returned when opening a non-empty
	// database whose storage_version does not match this writer.
	ErrIncompatibleDatabase = errors.New("srctrail: incompatible database")
	// ErrBadInput marks caller-supplied data rejected before it reaches
	// the storage layer (empty name hierarchy, zero source/target id).
	ErrBadInput = errors.New("srctrail: bad input")
	// ErrIO wraps an unexpected failure reading a source file.
	ErrIO = errors.New("srctrail: io error")
	// ErrBadKind marks an integer outside a kind's defined set.
	ErrBadKind = errors.New("srctrail: bad kind")
	// ErrUsage marks an operation invoked while no database is open.
	ErrUsage = errors.New("srctrail: no database is open")
)
