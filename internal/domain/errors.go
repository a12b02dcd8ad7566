package domain

import "errors"

var (
	// ErrNotFound means the catalog answered and the record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSourceUnavailable means the catalog could not be asked (network, timeout, 5xx).
	ErrSourceUnavailable = errors.New("catalog source unavailable")

	ErrSubmissionInFlight = errors.New("submission already in flight for this form")
	ErrHandOffUnavailable = errors.New("operator hand-off unavailable")
)
