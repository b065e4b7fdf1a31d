package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// scheduleEntry is one occupied interval in a hall's timetable.
type scheduleEntry struct {
	filmID uint64
	start  time.Time
	end    time.Time
}

// FilmRepo stores the film catalog and every scheduled screening.  Besides
// the per-film screening lists it maintains a per-hall timetable so that a
// new screening is checked for overlap against every film in that hall,
// not just its own.
type FilmRepo struct {
	mu         sync.RWMutex
	seq        uint64
	films      map[uint64]*model.Film
	screenings map[uint64][]model.Screening
	schedule   map[uint64][]scheduleEntry
}

// NewFilmRepo constructs an empty film catalog.
func NewFilmRepo() *FilmRepo {
	return &FilmRepo{
		films:      make(map[uint64]*model.Film),
		screenings: make(map[uint64][]model.Screening),
		schedule:   make(map[uint64][]scheduleEntry),
	}
}

// Create validates and registers a film, assigning its ID.
func (r *FilmRepo) Create(f *model.Film) error {
	if err := f.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	f.ID = r.seq
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	r.films[f.ID] = f
	return nil
}

// GetByID returns a copy of the film or ErrFilmNotFound.
func (r *FilmRepo) GetByID(id uint64) (*model.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.films[id]
	if !ok {
		return nil, ErrFilmNotFound
	}
	cp := *f
	return &cp, nil
}

// List returns every film ordered by ID.
func (r *FilmRepo) List() []*model.Film {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Film, 0, len(r.films))
	for _, f := range r.films {
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Delete removes a film and all of its screenings from the catalog and the
// hall timetables.
func (r *FilmRepo) Delete(id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.films[id]; !ok {
		return ErrFilmNotFound
	}
	delete(r.films, id)
	delete(r.screenings, id)
	for hallID, entries := range r.schedule {
		kept := entries[:0]
		for _, e := range entries {
			if e.filmID != id {
				kept = append(kept, e)
			}
		}
		r.schedule[hallID] = kept
	}
	return nil
}

// AddScreening schedules a showing of the film.  The screening must start
// in the future and must not overlap any showing already scheduled in the
// same hall; overlap is checked on [start, start+duration) intervals across
// all films.  An exact duplicate for the same film yields ErrConflict.
// Hall existence is the caller's check, against the hall registry.
func (r *FilmRepo) AddScreening(filmID uint64, s model.Screening, now time.Time) error {
	if err := s.Validate(now); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.films[filmID]
	if !ok {
		return ErrFilmNotFound
	}
	for _, existing := range r.screenings[filmID] {
		if existing.HallID == s.HallID && existing.StartsAt.Equal(s.StartsAt) {
			return ErrConflict
		}
	}
	start := s.StartsAt
	end := s.EndGiven(f.Duration())
	for _, e := range r.schedule[s.HallID] {
		if start.Before(e.end) && e.start.Before(end) {
			return ErrScheduleConflict
		}
	}

	list := append(r.screenings[filmID], s)
	sort.Slice(list, func(i, j int) bool { return list[i].StartsAt.Before(list[j].StartsAt) })
	r.screenings[filmID] = list

	entries := append(r.schedule[s.HallID], scheduleEntry{filmID: filmID, start: start, end: end})
	sort.Slice(entries, func(i, j int) bool { return entries[i].start.Before(entries[j].start) })
	r.schedule[s.HallID] = entries
	return nil
}

// RemoveScreening takes a showing off the film's list and frees its slot in
// the hall timetable.
func (r *FilmRepo) RemoveScreening(filmID uint64, s model.Screening) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.films[filmID]; !ok {
		return ErrFilmNotFound
	}
	list := r.screenings[filmID]
	idx := -1
	for i, existing := range list {
		if existing.HallID == s.HallID && existing.StartsAt.Equal(s.StartsAt) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrScreeningNotFound
	}
	r.screenings[filmID] = append(list[:idx], list[idx+1:]...)

	entries := r.schedule[s.HallID]
	for i, e := range entries {
		if e.filmID == filmID && e.start.Equal(s.StartsAt) {
			r.schedule[s.HallID] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	return nil
}

// Screenings returns the film's showings ordered by start time.
func (r *FilmRepo) Screenings(filmID uint64) ([]model.Screening, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.films[filmID]; !ok {
		return nil, ErrFilmNotFound
	}
	return append([]model.Screening(nil), r.screenings[filmID]...), nil
}

// Upcoming returns the film's showings that start after now.
func (r *FilmRepo) Upcoming(filmID uint64, now time.Time) ([]model.Screening, error) {
	all, err := r.Screenings(filmID)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, s := range all {
		if s.StartsAt.After(now) {
			out = append(out, s)
		}
	}
	return out, nil
}

// HasScreening reports whether the showing belongs to the film.
func (r *FilmRepo) HasScreening(filmID uint64, s model.Screening) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, existing := range r.screenings[filmID] {
		if existing.HallID == s.HallID && existing.StartsAt.Equal(s.StartsAt) {
			return true
		}
	}
	return false
}

// HallInUse reports whether any screening is scheduled in the hall, used
// before a hall is deleted.
func (r *FilmRepo) HallInUse(hallID uint64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.schedule[hallID]) > 0
}

// Export returns the catalog contents for a snapshot: films ordered by ID
// and the screening list per film.
func (r *FilmRepo) Export() ([]model.Film, map[uint64][]model.Screening) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	films := make([]model.Film, 0, len(r.films))
	for _, f := range r.films {
		films = append(films, *f)
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	screenings := make(map[uint64][]model.Screening, len(r.screenings))
	for id, list := range r.screenings {
		screenings[id] = append([]model.Screening(nil), list...)
	}
	return films, screenings
}

// Restore replaces the catalog with snapshot contents and rebuilds the hall
// timetables.  Snapshot data is trusted; invariants were enforced when the
// state was first built.
func (r *FilmRepo) Restore(films []model.Film, screenings map[uint64][]model.Screening) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.films = make(map[uint64]*model.Film, len(films))
	r.screenings = make(map[uint64][]model.Screening, len(screenings))
	r.schedule = make(map[uint64][]scheduleEntry)
	r.seq = 0
	for i := range films {
		f := films[i]
		r.films[f.ID] = &f
		if f.ID > r.seq {
			r.seq = f.ID
		}
	}
	for filmID, list := range screenings {
		f, ok := r.films[filmID]
		if !ok {
			continue
		}
		sorted := append([]model.Screening(nil), list...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartsAt.Before(sorted[j].StartsAt) })
		r.screenings[filmID] = sorted
		for _, s := range sorted {
			r.schedule[s.HallID] = append(r.schedule[s.HallID], scheduleEntry{
				filmID: filmID,
				start:  s.StartsAt,
				end:    s.EndGiven(f.Duration()),
			})
		}
	}
	for hallID := range r.schedule {
		entries := r.schedule[hallID]
		sort.Slice(entries, func(i, j int) bool { return entries[i].start.Before(entries[j].start) })
		r.schedule[hallID] = entries
	}
}
