package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgUserNotFound     = "user not found"
	ErrMsgInvalidScore     = "invalid score"
	ErrMsgInvalidInput     = "invalid input"
	ErrMsgStoreUnavailable = "store unavailable"
	ErrMsgTextsNotSeeded   = "typing texts not seeded"
)

// Common domain errors.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrUserNotFound marks a profile lookup for a user with no stored
	// aggregate. This is a normal, reportable outcome, not a failure.
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// ErrInvalidScore marks a NaN or negative-infinity score offered to a
	// ranked board. Such scores are rejected outright, never clamped.
	ErrInvalidScore = errors.New(ErrMsgInvalidScore)

	// ErrInvalidInput marks a submission rejected before any state mutation.
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// ErrStoreUnavailable marks a failed round-trip to the shared store.
	// Fatal at startup; surfaced to the triggering request mid-run.
	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)

	// ErrTextsNotSeeded marks a prompt request against an empty prompt
	// hash, which only happens if startup seeding was skipped.
	ErrTextsNotSeeded = errors.New(ErrMsgTextsNotSeeded)
)
