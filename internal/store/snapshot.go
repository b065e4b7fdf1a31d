// Package store persists the catalog state as a JSON snapshot on disk.
// This is deliberately whole-file read/write, not a persistence engine:
// the domain lives in memory and the snapshot exists so a restart does not
// lose the day's bookings.  Before overwriting, the previous file is kept
// as a timestamped .bak copy.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/repository"
)

// ErrSnapshot wraps every load/save failure so callers can surface a single
// error class regardless of whether the cause was I/O or malformed JSON.
var ErrSnapshot = errors.New("snapshot error")

// filmRecord bundles a film with its scheduled screenings for the file.
type filmRecord struct {
	Film       model.Film        `json:"film"`
	Screenings []model.Screening `json:"screenings,omitempty"`
}

// Snapshot is the on-disk shape of the catalog state.
type Snapshot struct {
	Meta struct {
		Name    string    `json:"name"`
		SavedAt time.Time `json:"saved_at"`
	} `json:"meta"`
	Halls        []model.Hall                   `json:"halls"`
	Films        []filmRecord                   `json:"films"`
	Reservations []repository.ReservationRecord `json:"reservations"`
}

// Capture assembles a snapshot from the live repositories.
func Capture(name string, halls *repository.HallRepo, films *repository.FilmRepo, bookings *repository.BookingRepo) *Snapshot {
	snap := &Snapshot{}
	snap.Meta.Name = name
	snap.Meta.SavedAt = time.Now().UTC()
	for _, h := range halls.List() {
		snap.Halls = append(snap.Halls, *h)
	}
	filmList, screenings := films.Export()
	for _, f := range filmList {
		snap.Films = append(snap.Films, filmRecord{Film: f, Screenings: screenings[f.ID]})
	}
	snap.Reservations = bookings.Export()
	return snap
}

// Apply restores the snapshot into the live repositories.
func (s *Snapshot) Apply(halls *repository.HallRepo, films *repository.FilmRepo, bookings *repository.BookingRepo) {
	halls.Restore(s.Halls)
	filmList := make([]model.Film, 0, len(s.Films))
	screenings := make(map[uint64][]model.Screening, len(s.Films))
	for _, rec := range s.Films {
		filmList = append(filmList, rec.Film)
		if len(rec.Screenings) > 0 {
			screenings[rec.Film.ID] = rec.Screenings
		}
	}
	films.Restore(filmList, screenings)
	bookings.Restore(s.Reservations)
}

// Save writes the snapshot to path.  An existing file is first copied to a
// timestamped .bak sibling so a bad write never destroys the last good
// state.
func Save(path string, snap *Snapshot) error {
	if _, err := os.Stat(path); err == nil {
		stamp := time.Now().UTC().Format("20060102_150405.000000000")
		prev, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: read previous: %v", ErrSnapshot, err)
		}
		if err := os.WriteFile(fmt.Sprintf("%s.%s.bak", path, stamp), prev, 0o644); err != nil {
			return fmt.Errorf("%w: write backup: %v", ErrSnapshot, err)
		}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrSnapshot, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrSnapshot, path, err)
	}
	return nil
}

// Load reads a snapshot from path.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrSnapshot, path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrSnapshot, path, err)
	}
	return &snap, nil
}
