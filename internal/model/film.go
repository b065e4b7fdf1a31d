package model

import (
	"fmt"
	"strconv"
	"time"
)

// Duration bounds for a film, in minutes.  Sixteen hours is enough for any
// marathon cut the programmers have come up with so far.
const (
	MinDurationMin = 1
	MaxDurationMin = 960
)

// Age-rating labels accepted on films.
const (
	RatingG    = "G"
	RatingPG   = "PG"
	RatingPG13 = "PG-13"
	RatingR    = "R"
	RatingNC17 = "NC-17"
)

// ratingMinAge maps every accepted rating to the minimum viewer age.
var ratingMinAge = map[string]int{
	RatingG:    0,
	RatingPG:   0,
	RatingPG13: 13,
	RatingR:    17,
	RatingNC17: 18,
}

// ValidRating reports whether r is one of the accepted rating labels.
func ValidRating(r string) bool {
	_, ok := ratingMinAge[r]
	return ok
}

// MinAgeForRating returns the minimum viewer age required by a rating.
// Unknown ratings require no minimum age; creation-time validation keeps
// unknown ratings out of the catalog in the first place.
func MinAgeForRating(r string) int {
	return ratingMinAge[r]
}

// Film represents a title in the cinema's catalog.  Screenings of the film
// are kept by the film registry, not on the struct, so the entity stays a
// plain value.
//
// Fields:
//  ID          – registry identifier, assigned on creation.
//  Title       – film title; must be non-empty.
//  DurationMin – running time in minutes, within [MinDurationMin, MaxDurationMin].
//  Rating      – age rating label (G, PG, PG-13, R, NC-17).
//  Genres      – optional genre labels used for viewer preferences.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Film struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	DurationMin uint32    `json:"duration_min"`
	Rating      string    `json:"rating"`
	Genres      []string  `json:"genres,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the film's invariants and returns a ErrValidation-wrapped
// error describing the first violation found.
func (f *Film) Validate() error {
	if f.Title == "" {
		return invalidf("title cannot be empty")
	}
	if !ValidRating(f.Rating) {
		return invalidf("invalid rating %q", f.Rating)
	}
	if f.DurationMin < MinDurationMin || f.DurationMin > MaxDurationMin {
		return invalidf("duration must be between %d and %d minutes", MinDurationMin, MaxDurationMin)
	}
	return nil
}

// Duration returns the film's running time as a time.Duration.
func (f *Film) Duration() time.Duration {
	return time.Duration(f.DurationMin) * time.Minute
}

// Screening identifies a single showing: a hall and a start time.  The end
// time is derived from the film's duration and is not stored.  Two
// screenings are the same showing when hall and start match exactly.
type Screening struct {
	HallID   uint64    `json:"hall_id"`
	StartsAt time.Time `json:"starts_at"`
}

// Validate checks that the screening starts in the future relative to now
// and references a plausible hall.  Hall existence is verified against the
// hall registry by the caller.
func (s Screening) Validate(now time.Time) error {
	if s.HallID == 0 {
		return invalidf("hall id must be positive")
	}
	if !s.StartsAt.After(now) {
		return invalidf("screening time must be in the future")
	}
	return nil
}

// Key returns a stable identifier for the showing, used as a map key by the
// booking and statistics repositories and as the screening reference in
// snapshots and events.
func (s Screening) Key() string {
	return strconv.FormatUint(s.HallID, 10) + "@" + s.StartsAt.UTC().Format(time.RFC3339)
}

// EndGiven returns the end of the showing for a film of the given duration.
func (s Screening) EndGiven(d time.Duration) time.Time {
	return s.StartsAt.Add(d)
}

func (s Screening) String() string {
	return fmt.Sprintf("hall %d at %s", s.HallID, s.StartsAt.Format("2006-01-02 15:04"))
}
