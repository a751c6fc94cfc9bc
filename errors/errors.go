package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidInput covers malformed or missing request fields.
	ErrInvalidInput = fmt.Errorf("invalid input")
	// ErrAlreadyRegistered is returned when a participant name is already taken.
	ErrAlreadyRegistered = fmt.Errorf("participant already registered")
	// ErrUnknownSender is returned when an operation references a participant
	// that is not currently present in the exchange.
	ErrUnknownSender = fmt.Errorf("unknown sender")
	// ErrNotFound is returned by heartbeat/evict on an absent participant.
	ErrNotFound = fmt.Errorf("participant not found")

	ErrWorkerPanic = fmt.Errorf("worker panic")
	ErrEmptyWords  = fmt.Errorf("no words have been found")
)

// MapToHTTPStatus translates a service error into the transport status code.
// Anything outside the known taxonomy is a server fault.
func MapToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnknownSender):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
