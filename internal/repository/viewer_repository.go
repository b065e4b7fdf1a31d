package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// ViewerRepo stores registered viewers and their purchase histories.
// Emails are unique; a second registration with the same address is
// rejected with ErrConflict.
type ViewerRepo struct {
	mu      sync.RWMutex
	seq     uint64
	viewers map[uint64]*model.Viewer
	byEmail map[string]uint64
}

// NewViewerRepo constructs an empty viewer registry.
func NewViewerRepo() *ViewerRepo {
	return &ViewerRepo{
		viewers: make(map[uint64]*model.Viewer),
		byEmail: make(map[string]uint64),
	}
}

// Create validates and registers a viewer, assigning their ID.
func (r *ViewerRepo) Create(v *model.Viewer) error {
	if err := v.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[v.Email]; ok {
		return ErrConflict
	}
	r.seq++
	v.ID = r.seq
	v.RegisteredAt = time.Now().UTC()
	r.viewers[v.ID] = v
	r.byEmail[v.Email] = v.ID
	return nil
}

// GetByID returns a copy of the viewer or ErrViewerNotFound.
func (r *ViewerRepo) GetByID(id uint64) (*model.Viewer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.viewers[id]
	if !ok {
		return nil, ErrViewerNotFound
	}
	cp := *v
	cp.PurchaseHistory = append([]model.Ticket(nil), v.PurchaseHistory...)
	return &cp, nil
}

// AddTicket records a purchased ticket on the viewer's history and accrues
// the per-ticket loyalty points.
func (r *ViewerRepo) AddTicket(viewerID uint64, t model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.viewers[viewerID]
	if !ok {
		return ErrViewerNotFound
	}
	v.AddTicket(t)
	return nil
}

// List returns every viewer ordered by ID, without purchase histories.
func (r *ViewerRepo) List() []*model.Viewer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Viewer, 0, len(r.viewers))
	for _, v := range r.viewers {
		cp := *v
		cp.PurchaseHistory = nil
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
