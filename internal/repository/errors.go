// Package repository holds the in-memory stores backing the box office.
// Each store guards its maps with a mutex because the HTTP layer serves
// requests concurrently; there are no cross-store transactions.  The
// sentinel values below let handlers map failures onto HTTP statuses
// without string matching.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation they are
// not allowed to perform, such as an inactive staff account reading the
// audit log.  Handlers should translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// existing state, such as registering a hall whose name is already taken.
// Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrFilmNotFound is returned when a film lookup fails.
var ErrFilmNotFound = errors.New("film not found")

// ErrHallNotFound is returned when a hall lookup fails.
var ErrHallNotFound = errors.New("hall not found")

// ErrViewerNotFound is returned when a viewer lookup fails.
var ErrViewerNotFound = errors.New("viewer not found")

// ErrScreeningNotFound is returned when a screening does not belong to the
// film it was addressed through.
var ErrScreeningNotFound = errors.New("screening not found")

// ErrPromotionNotFound is returned when a promotion lookup fails.
var ErrPromotionNotFound = errors.New("promotion not found")

// ErrScheduleConflict is returned when a screening would overlap another
// showing in the same hall.  Handlers should translate this into 409.
var ErrScheduleConflict = errors.New("schedule conflict")

// ErrCapacityExceeded is returned when a reservation asks for more seats
// than the hall has left for the showing.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// ErrNotReserved is returned when a cancellation asks to release more seats
// than are currently reserved for the showing.
var ErrNotReserved = errors.New("seats not reserved")
