package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFilm() Film {
	return Film{Title: "Blade Runner", DurationMin: 117, Rating: RatingR}
}

func TestFilmValidate(t *testing.T) {
	f := validFilm()
	require.NoError(t, f.Validate())

	f = validFilm()
	f.Title = ""
	assert.ErrorIs(t, f.Validate(), ErrValidation)

	f = validFilm()
	f.Rating = "PG-18"
	assert.ErrorIs(t, f.Validate(), ErrValidation)

	f = validFilm()
	f.DurationMin = 0
	assert.ErrorIs(t, f.Validate(), ErrValidation)

	f = validFilm()
	f.DurationMin = MaxDurationMin + 1
	assert.ErrorIs(t, f.Validate(), ErrValidation)

	f = validFilm()
	f.DurationMin = MaxDurationMin
	assert.NoError(t, f.Validate())
}

func TestMinAgeForRating(t *testing.T) {
	assert.Equal(t, 0, MinAgeForRating(RatingG))
	assert.Equal(t, 0, MinAgeForRating(RatingPG))
	assert.Equal(t, 13, MinAgeForRating(RatingPG13))
	assert.Equal(t, 17, MinAgeForRating(RatingR))
	assert.Equal(t, 18, MinAgeForRating(RatingNC17))
	assert.False(t, ValidRating("X"))
}

func TestScreeningValidate(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	s := Screening{HallID: 1, StartsAt: now.Add(time.Hour)}
	require.NoError(t, s.Validate(now))

	s = Screening{HallID: 0, StartsAt: now.Add(time.Hour)}
	assert.ErrorIs(t, s.Validate(now), ErrValidation)

	// Starting exactly at now is not in the future.
	s = Screening{HallID: 1, StartsAt: now}
	assert.ErrorIs(t, s.Validate(now), ErrValidation)

	s = Screening{HallID: 1, StartsAt: now.Add(-time.Minute)}
	assert.ErrorIs(t, s.Validate(now), ErrValidation)
}

func TestScreeningKeyAndEnd(t *testing.T) {
	start := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	s := Screening{HallID: 3, StartsAt: start}
	assert.Equal(t, "3@2026-09-01T20:00:00Z", s.Key())

	// Key normalizes to UTC so the same instant in another zone matches.
	zoned := Screening{HallID: 3, StartsAt: start.In(time.FixedZone("CET", 3600))}
	assert.Equal(t, s.Key(), zoned.Key())

	assert.Equal(t, start.Add(117*time.Minute), s.EndGiven(117*time.Minute))
}

func TestInvalidfWrapsValidation(t *testing.T) {
	err := invalidf("bad %s", "thing")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "bad thing")
}
