package domain

import "errors"

// Error categories for the sync engine and its collaborators. Errors are
// wrapped with fmt.Errorf("...: %w", ...) and classified with errors.Is.
var (
	// ErrConfiguration indicates bad or missing workflow or connector
	// configuration. Fatal before any sync work starts.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrStorage indicates a ledger read or write failure. Aborts the
	// current pass.
	ErrStorage = errors.New("ledger storage failure")

	// ErrPrecondition indicates incremental sync was attempted on a
	// workflow that lacks an initial sync. Aborts the whole invocation
	// before any workflow runs.
	ErrPrecondition = errors.New("initial sync missing")

	// ErrConnector indicates a source fetch or target push failure.
	ErrConnector = errors.New("connector failure")
)
