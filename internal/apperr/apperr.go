// Package apperr defines the domain error taxonomy shared by the account
// hierarchy, ledger and report services. Handlers map these onto HTTP status
// codes; repositories wrap driver errors with %w and never return these
// directly.
package apperr

import "fmt"

// ValidationError reports malformed input: bad code format, out-of-range
// code, unbalanced posting set.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError.
func Validation(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness or structural conflict: duplicate code,
// self-parenting, a reparent that would close a cycle.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return "conflict: " + e.Reason }

// Conflict builds a ConflictError.
func Conflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// ReferentialIntegrityError reports a delete blocked by dependent rows.
type ReferentialIntegrityError struct {
	Reason string
}

func (e *ReferentialIntegrityError) Error() string {
	return "referential integrity: " + e.Reason
}

// Referential builds a ReferentialIntegrityError.
func Referential(format string, args ...interface{}) *ReferentialIntegrityError {
	return &ReferentialIntegrityError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing group, ledger, entry or accounting year.
type NotFoundError struct {
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(kind string, id int) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// StateError reports an operation rejected by system state: no active
// accounting year, mutation of a fixed group.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string { return "state: " + e.Reason }

// State builds a StateError.
func State(format string, args ...interface{}) *StateError {
	return &StateError{Reason: fmt.Sprintf(format, args...)}
}

// ErrNoActiveYear is the failure every report returns when no accounting
// year is active. Reports must fail with this before touching balances,
// never return a zero-filled result.
var ErrNoActiveYear = &StateError{Reason: "no active accounting year"}
