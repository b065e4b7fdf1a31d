package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// PromotionRepo stores promotions and the single-promotion-per-screening
// assignment.  Expiry is checked when a promotion is applied; an already
// assigned promotion keeps discounting until staff remove it.
type PromotionRepo struct {
	mu          sync.RWMutex
	seq         uint64
	promotions  map[uint64]*model.Promotion
	byScreening map[string]uint64
}

// NewPromotionRepo constructs an empty promotion registry.
func NewPromotionRepo() *PromotionRepo {
	return &PromotionRepo{
		promotions:  make(map[uint64]*model.Promotion),
		byScreening: make(map[string]uint64),
	}
}

// Create validates and registers a promotion, assigning its ID.
func (r *PromotionRepo) Create(p *model.Promotion) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = r.seq
	r.promotions[p.ID] = p
	return nil
}

// GetByID returns the promotion or ErrPromotionNotFound.
func (r *PromotionRepo) GetByID(id uint64) (*model.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.promotions[id]
	if !ok {
		return nil, ErrPromotionNotFound
	}
	cp := *p
	return &cp, nil
}

// List returns every promotion ordered by ID.
func (r *PromotionRepo) List() []*model.Promotion {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Promotion, 0, len(r.promotions))
	for _, p := range r.promotions {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Apply attaches a promotion to a showing.  A showing carries at most one
// promotion (ErrConflict otherwise) and expired promotions cannot be
// applied.  The caller verifies the screening belongs to a film first.
func (r *PromotionRepo) Apply(promotionID uint64, s model.Screening, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.promotions[promotionID]
	if !ok {
		return ErrPromotionNotFound
	}
	if p.Expired(now) {
		return model.ErrValidation
	}
	key := s.Key()
	if _, taken := r.byScreening[key]; taken {
		return ErrConflict
	}
	r.byScreening[key] = promotionID
	return nil
}

// Remove detaches the promotion assigned to a showing.
func (r *PromotionRepo) Remove(s model.Screening) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := s.Key()
	if _, ok := r.byScreening[key]; !ok {
		return ErrPromotionNotFound
	}
	delete(r.byScreening, key)
	return nil
}

// ForScreening returns the promotion assigned to a showing, or nil when the
// showing has none.
func (r *PromotionRepo) ForScreening(s model.Screening) *model.Promotion {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byScreening[s.Key()]
	if !ok {
		return nil
	}
	p, ok := r.promotions[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}
