package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

var testNow = time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

func newFilm(t *testing.T, r *FilmRepo, title string, durationMin uint32) *model.Film {
	t.Helper()
	f := &model.Film{Title: title, DurationMin: durationMin, Rating: model.RatingPG}
	require.NoError(t, r.Create(f))
	return f
}

func at(hallID uint64, hoursFromNow int) model.Screening {
	return model.Screening{HallID: hallID, StartsAt: testNow.Add(time.Duration(hoursFromNow) * time.Hour)}
}

func TestFilmRepoCreateAssignsIDs(t *testing.T) {
	r := NewFilmRepo()
	a := newFilm(t, r, "Alien", 117)
	b := newFilm(t, r, "Aliens", 137)
	assert.Equal(t, uint64(1), a.ID)
	assert.Equal(t, uint64(2), b.ID)

	got, err := r.GetByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alien", got.Title)

	_, err = r.GetByID(99)
	assert.ErrorIs(t, err, ErrFilmNotFound)

	bad := &model.Film{Title: "", DurationMin: 90, Rating: model.RatingG}
	assert.ErrorIs(t, r.Create(bad), model.ErrValidation)
}

func TestAddScreeningRejectsPastAndDuplicates(t *testing.T) {
	r := NewFilmRepo()
	f := newFilm(t, r, "Heat", 170)

	assert.ErrorIs(t, r.AddScreening(f.ID, at(1, -1), testNow), model.ErrValidation)

	s := at(1, 2)
	require.NoError(t, r.AddScreening(f.ID, s, testNow))
	assert.ErrorIs(t, r.AddScreening(f.ID, s, testNow), ErrConflict)

	assert.ErrorIs(t, r.AddScreening(42, at(1, 8), testNow), ErrFilmNotFound)
}

func TestAddScreeningDetectsOverlapAcrossFilms(t *testing.T) {
	r := NewFilmRepo()
	long := newFilm(t, r, "Lawrence of Arabia", 216) // ends 3h36m after start
	short := newFilm(t, r, "Short", 60)

	require.NoError(t, r.AddScreening(long.ID, at(1, 2), testNow))

	// Another film starting inside the long film's window in the same hall.
	assert.ErrorIs(t, r.AddScreening(short.ID, at(1, 3), testNow), ErrScheduleConflict)

	// Same slot in a different hall is fine.
	require.NoError(t, r.AddScreening(short.ID, at(2, 3), testNow))

	// Back to back is fine: the interval is [start, start+duration).
	require.NoError(t, r.AddScreening(short.ID, model.Screening{
		HallID:   1,
		StartsAt: testNow.Add(2*time.Hour + 216*time.Minute),
	}, testNow))

	// A showing that would run into an existing one conflicts too.
	assert.ErrorIs(t, r.AddScreening(long.ID, at(2, 1), testNow), ErrScheduleConflict)
}

func TestRemoveScreeningFreesTheSlot(t *testing.T) {
	r := NewFilmRepo()
	a := newFilm(t, r, "A", 120)
	b := newFilm(t, r, "B", 120)

	s := at(1, 2)
	require.NoError(t, r.AddScreening(a.ID, s, testNow))
	assert.ErrorIs(t, r.AddScreening(b.ID, at(1, 3), testNow), ErrScheduleConflict)

	require.NoError(t, r.RemoveScreening(a.ID, s))
	assert.NoError(t, r.AddScreening(b.ID, at(1, 3), testNow))

	assert.ErrorIs(t, r.RemoveScreening(a.ID, s), ErrScreeningNotFound)
}

func TestScreeningsOrderingAndUpcoming(t *testing.T) {
	r := NewFilmRepo()
	f := newFilm(t, r, "F", 60)

	require.NoError(t, r.AddScreening(f.ID, at(1, 6), testNow))
	require.NoError(t, r.AddScreening(f.ID, at(1, 2), testNow))
	require.NoError(t, r.AddScreening(f.ID, at(1, 4), testNow))

	list, err := r.Screenings(f.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].StartsAt.Before(list[1].StartsAt))
	assert.True(t, list[1].StartsAt.Before(list[2].StartsAt))

	up, err := r.Upcoming(f.ID, testNow.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Len(t, up, 2)
}

func TestDeleteFilmPurgesTimetable(t *testing.T) {
	r := NewFilmRepo()
	f := newFilm(t, r, "F", 60)
	other := newFilm(t, r, "G", 60)

	require.NoError(t, r.AddScreening(f.ID, at(1, 2), testNow))
	assert.True(t, r.HallInUse(1))

	require.NoError(t, r.Delete(f.ID))
	assert.False(t, r.HallInUse(1))
	assert.NoError(t, r.AddScreening(other.ID, at(1, 2), testNow))
}

func TestFilmExportRestoreRoundTrip(t *testing.T) {
	r := NewFilmRepo()
	f := newFilm(t, r, "F", 90)
	s := at(1, 2)
	require.NoError(t, r.AddScreening(f.ID, s, testNow))

	films, screenings := r.Export()

	fresh := NewFilmRepo()
	fresh.Restore(films, screenings)

	assert.True(t, fresh.HasScreening(f.ID, s))
	// The timetable is rebuilt, so the restored slot still blocks others.
	other := newFilm(t, fresh, "G", 60)
	assert.ErrorIs(t, fresh.AddScreening(other.ID, at(1, 3), testNow), ErrScheduleConflict)
	// And the sequence resumes past restored IDs.
	assert.Greater(t, other.ID, f.ID)
}
