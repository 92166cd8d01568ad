package entities

import "errors"

// Tagged errors returned by the repository and service layers. Callers match
// them with errors.Is; descriptive context is added with fmt.Errorf and %w.
var (
	// ErrNotFound means an id did not resolve to a persisted entity.
	ErrNotFound = errors.New("not found")

	// ErrConstraintViolation means an operation would break a domain
	// invariant, e.g. lending an unavailable book or a duplicate
	// outstanding loan for the same book.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrNoOutstandingLoan means a return was requested for a book that
	// has no open loan.
	ErrNoOutstandingLoan = errors.New("no outstanding loan")

	// ErrValidation means the input itself was malformed (email, date).
	ErrValidation = errors.New("validation error")

	// ErrStoreFailure means the underlying store failed; the operation
	// was rolled back before the error was reported.
	ErrStoreFailure = errors.New("store failure")
)
