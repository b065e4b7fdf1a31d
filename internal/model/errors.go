// Package model contains the domain entities of the box office: films and
// their screenings, halls, tickets, payments, promotions, viewers and the
// loyalty program.  Entities validate themselves; bookkeeping that spans
// entities (seat counters, schedules, statistics) lives in the repository
// package.
package model

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every entity validation failure.  Handlers
// should translate it into an HTTP 400 response.  Use errors.Is to test.
var ErrValidation = errors.New("validation failed")

// invalidf builds a validation error carrying a human readable detail while
// remaining matchable against ErrValidation.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
