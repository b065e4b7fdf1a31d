package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/repository"
)

func seededState(t *testing.T) (*repository.HallRepo, *repository.FilmRepo, *repository.BookingRepo, model.Screening) {
	t.Helper()
	now := time.Now().UTC()

	halls := repository.NewHallRepo()
	hall := &model.Hall{Name: "Main", Capacity: 50}
	require.NoError(t, halls.Create(hall, false))

	films := repository.NewFilmRepo()
	film := &model.Film{Title: "Arrival", DurationMin: 116, Rating: model.RatingPG13}
	require.NoError(t, films.Create(film))

	s := model.Screening{HallID: hall.ID, StartsAt: now.Add(2 * time.Hour).Truncate(time.Second)}
	require.NoError(t, films.AddScreening(film.ID, s, now))

	bookings := repository.NewBookingRepo()
	require.NoError(t, bookings.Reserve(hall, s, 12, true))

	return halls, films, bookings, s
}

func TestSnapshotRoundTrip(t *testing.T) {
	halls, films, bookings, s := seededState(t)
	path := filepath.Join(t.TempDir(), "catalog.json")

	snap := Capture("Roxy", halls, films, bookings)
	assert.Equal(t, "Roxy", snap.Meta.Name)
	require.NoError(t, Save(path, snap))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Roxy", loaded.Meta.Name)

	freshHalls := repository.NewHallRepo()
	freshFilms := repository.NewFilmRepo()
	freshBookings := repository.NewBookingRepo()
	loaded.Apply(freshHalls, freshFilms, freshBookings)

	hall, err := freshHalls.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Main", hall.Name)

	film, err := freshFilms.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Arrival", film.Title)
	assert.True(t, freshFilms.HasScreening(film.ID, s))

	assert.Equal(t, uint32(12), freshBookings.Reserved(s))
	assert.Equal(t, uint32(38), freshBookings.Available(hall, s))
}

func TestSaveBacksUpPreviousFile(t *testing.T) {
	halls, films, bookings, _ := seededState(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")

	snap := Capture("Roxy", halls, films, bookings)
	require.NoError(t, Save(path, snap))
	require.NoError(t, Save(path, snap))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var backups int
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".bak" {
			backups++
		}
	}
	assert.Equal(t, 1, backups)
}

func TestLoadFailuresWrapErrSnapshot(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrSnapshot)

	path := filepath.Join(t.TempDir(), "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrSnapshot)
}
