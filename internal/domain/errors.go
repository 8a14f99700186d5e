package domain

import "errors"

// ErrNotFound is returned when the requested resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing driver, empty origin, non-positive fuel price).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrStorageWrite is returned when the persistence medium rejects a write
// (capacity, connectivity, or a revision conflict that could not be retried).
// The mutation did not persist; callers should tell the user.
var ErrStorageWrite = errors.New("storage write failed")

// ErrDomain is returned by ComputeTrip when a driver's fuel efficiency is not
// positive. Valid data never reaches it, but the computation must fail
// instead of producing Inf or NaN costs.
var ErrDomain = errors.New("domain error")

// ErrLookupUnavailable is returned when the location collaborator could not
// be reached or produced no usable answer. No trip is recorded.
var ErrLookupUnavailable = errors.New("location lookup unavailable")

// ErrRouteNotFound is returned when the location collaborator answered but
// reported a non-positive distance. No trip is recorded.
var ErrRouteNotFound = errors.New("route not found")
