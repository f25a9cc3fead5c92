package models

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks enum or payload values rejected at construction.
var ErrInvalidInput = errors.New("invalid input")

// NotFoundError signals that a referenced record does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidReferenceError signals that a secondary reference, such as a breeding
// partner, does not resolve to an existing record.
type InvalidReferenceError struct {
	Field string
	ID    string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%s references unknown record %s", e.Field, e.ID)
}

// InvalidStateError signals an action attempted against an animal whose status
// forbids it, or a manual edit trying to bypass the lifecycle.
type InvalidStateError struct {
	AnimalID string
	Status   AnimalStatus
	Action   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s animal %s in status %s", e.Action, e.AnimalID, e.Status)
}

// InvalidSexError signals a breeding action whose primary animal is not female.
type InvalidSexError struct {
	AnimalID string
	Sex      Sex
}

func (e *InvalidSexError) Error() string {
	return fmt.Sprintf("animal %s is %s; breeding requires a female primary", e.AnimalID, e.Sex)
}

// InvalidDateError signals a malformed or logically impossible date.
type InvalidDateError struct {
	Field  string
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// LedgerInconsistencyError signals that an entity write succeeded but the
// matching history append failed, leaving a state change without an audit
// trail. Callers must surface it for reconciliation rather than swallow it.
type LedgerInconsistencyError struct {
	AnimalID string
	Action   string
	Err      error
}

func (e *LedgerInconsistencyError) Error() string {
	return fmt.Sprintf("ledger append failed after %s on animal %s: %v", e.Action, e.AnimalID, e.Err)
}

func (e *LedgerInconsistencyError) Unwrap() error { return e.Err }
