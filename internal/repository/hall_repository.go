package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// HallRepo stores the hall catalog.  Hall names are unique; a duplicate
// registration is rejected unless the caller asks to overwrite.
type HallRepo struct {
	mu     sync.RWMutex
	seq    uint64
	halls  map[uint64]*model.Hall
	byName map[string]uint64
}

// NewHallRepo constructs an empty hall catalog.
func NewHallRepo() *HallRepo {
	return &HallRepo{
		halls:  make(map[uint64]*model.Hall),
		byName: make(map[string]uint64),
	}
}

// Create registers a hall and assigns its ID.  When overwrite is true an
// existing hall with the same name is replaced (keeping its ID); otherwise
// a duplicate name yields ErrConflict.
func (r *HallRepo) Create(h *model.Hall, overwrite bool) error {
	if err := h.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existingID, ok := r.byName[h.Name]; ok {
		if !overwrite {
			return ErrConflict
		}
		h.ID = existingID
		h.CreatedAt = r.halls[existingID].CreatedAt
		h.UpdatedAt = now
		r.halls[existingID] = h
		return nil
	}
	r.seq++
	h.ID = r.seq
	h.CreatedAt = now
	h.UpdatedAt = now
	r.halls[h.ID] = h
	r.byName[h.Name] = h.ID
	return nil
}

// GetByID returns the hall or ErrHallNotFound.
func (r *HallRepo) GetByID(id uint64) (*model.Hall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.halls[id]
	if !ok {
		return nil, ErrHallNotFound
	}
	cp := *h
	return &cp, nil
}

// Delete removes a hall from the catalog.  Screenings already scheduled in
// the hall are the film registry's concern; the handler checks there first.
func (r *HallRepo) Delete(id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.halls[id]
	if !ok {
		return ErrHallNotFound
	}
	delete(r.byName, h.Name)
	delete(r.halls, id)
	return nil
}

// List returns every hall ordered by ID.
func (r *HallRepo) List() []*model.Hall {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Hall, 0, len(r.halls))
	for _, h := range r.halls {
		cp := *h
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Restore replaces the catalog with halls loaded from a snapshot.  The
// sequence counter resumes past the highest restored ID.
func (r *HallRepo) Restore(halls []model.Hall) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.halls = make(map[uint64]*model.Hall, len(halls))
	r.byName = make(map[string]uint64, len(halls))
	r.seq = 0
	for i := range halls {
		h := halls[i]
		r.halls[h.ID] = &h
		r.byName[h.Name] = h.ID
		if h.ID > r.seq {
			r.seq = h.ID
		}
	}
}
