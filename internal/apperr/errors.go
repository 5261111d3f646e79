// Package apperr defines the domain error taxonomy shared across routing,
// booking, and the API layer. Errors carry context via fmt wrapping so that
// callers can both match with errors.Is and surface the offending field,
// node, or leg in a message.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks bad input shape or format. Recoverable by the
	// caller correcting the input.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownNode marks an origin that is not present in a weighted graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidGraph marks a graph that violates Dijkstra preconditions,
	// e.g. a negative edge weight.
	ErrInvalidGraph = errors.New("invalid graph")

	// ErrIncompleteCrossMetric marks a shortest path whose edges are missing
	// in one of the other criterion graphs. Never substituted with zero.
	ErrIncompleteCrossMetric = errors.New("incomplete cross-metric path")

	// ErrMissingRouteMetrics marks a leg with no row in either metrics table.
	// Fatal to the whole booking attempt.
	ErrMissingRouteMetrics = errors.New("missing route metrics")

	// ErrUniqueness marks a duplicate email, phone, category, or reservation
	// code. The wrapped message names the conflicting field.
	ErrUniqueness = errors.New("uniqueness violation")

	// ErrUnknownCategory marks a strict category lookup miss. Traveler
	// registration never creates categories as a side effect.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrNotFound marks a missing persisted entity (reservation lookup).
	ErrNotFound = errors.New("not found")
)

// Validationf wraps ErrValidation with a field-level message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Uniqueness wraps ErrUniqueness naming the conflicting field.
func Uniqueness(field string) error {
	return fmt.Errorf("%w: %s already registered", ErrUniqueness, field)
}
