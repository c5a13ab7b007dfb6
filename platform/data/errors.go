package data

import "errors"

var (
	// ErrStaticProviderNoRuntimeUpdates is returned when runtime data is added to a
	// provider whose data is fixed at construction.
	ErrStaticProviderNoRuntimeUpdates = errors.New("static provider does not accept runtime updates")

	ErrEmptyContextKey = errors.New("context key is empty")
	ErrNoProvider      = errors.New("no data provider available")
	ErrInvalidData     = errors.New("invalid data")
)
