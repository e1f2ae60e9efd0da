package view

import "errors"

var (
	// ErrMutationInFlight is returned when a mutation for the same sweet is already running.
	// The request is dropped without a network call or notification.
	ErrMutationInFlight = errors.New("mutation already in flight")
	// ErrDeleteCancelled is returned when the user declines the delete confirmation.
	ErrDeleteCancelled = errors.New("delete cancelled")
	// ErrNoDraft is returned by Submit when no create or edit form is open.
	ErrNoDraft = errors.New("no form open")
	// ErrUnknownSweet is returned when the id is not in the cached collection.
	ErrUnknownSweet = errors.New("sweet not in collection")
)

// ValidationError is a client-side input problem detected before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
