package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/utils"
)

// ErrStaffNotFound is returned when a staff lookup fails.
var ErrStaffNotFound = errors.New("staff not found")

// ErrBadCredentials is returned when a login attempt fails.  The same value
// covers unknown usernames, wrong passwords and deactivated accounts so the
// response does not leak which one it was.
var ErrBadCredentials = errors.New("invalid credentials")

// StaffRepo stores employee accounts.  Only bcrypt hashes of passwords are
// kept.  The first account ever created becomes the manager.
type StaffRepo struct {
	mu     sync.RWMutex
	seq    uint64
	users  map[uint64]*model.StaffUser
	byName map[string]uint64
	cost   int
}

// NewStaffRepo constructs an empty staff registry.  cost is the bcrypt cost
// used when hashing passwords.
func NewStaffRepo(cost int) *StaffRepo {
	return &StaffRepo{
		users:  make(map[uint64]*model.StaffUser),
		byName: make(map[string]uint64),
		cost:   cost,
	}
}

// Create registers a staff account with a freshly hashed password.  The
// first account is given the manager role regardless of the requested one;
// duplicate usernames yield ErrConflict.
func (r *StaffRepo) Create(username, password, role string) (*model.StaffUser, error) {
	if username == "" || password == "" {
		return nil, model.ErrValidation
	}
	if role != model.RoleManager && role != model.RoleStaff {
		return nil, model.ErrValidation
	}
	hash, err := utils.HashPassword(password, r.cost)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[username]; ok {
		return nil, ErrConflict
	}
	if len(r.users) == 0 {
		role = model.RoleManager
	}
	r.seq++
	u := &model.StaffUser{
		ID:           r.seq,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	r.users[u.ID] = u
	r.byName[username] = u.ID
	cp := *u
	return &cp, nil
}

// Authenticate verifies a username/password pair against an active account.
func (r *StaffRepo) Authenticate(username, password string) (*model.StaffUser, error) {
	r.mu.RLock()
	id, ok := r.byName[username]
	var u *model.StaffUser
	if ok {
		u = r.users[id]
	}
	r.mu.RUnlock()
	if u == nil || !u.IsActive || !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	cp := *u
	return &cp, nil
}

// GetByID returns the staff account or ErrStaffNotFound.
func (r *StaffRepo) GetByID(id uint64) (*model.StaffUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrStaffNotFound
	}
	cp := *u
	return &cp, nil
}

// SetActive toggles an account.  Deactivated accounts cannot log in or read
// the audit log.
func (r *StaffRepo) SetActive(id uint64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrStaffNotFound
	}
	u.IsActive = active
	return nil
}

// Count returns the number of registered accounts.
func (r *StaffRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// AuditRepo is the append-only log of administrative operations.
type AuditRepo struct {
	mu      sync.Mutex
	entries []model.AuditEntry
}

// NewAuditRepo constructs an empty audit log.
func NewAuditRepo() *AuditRepo {
	return &AuditRepo{}
}

// Append records an operation performed by an actor.
func (r *AuditRepo) Append(operation, actor string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, model.AuditEntry{
		At:        time.Now().UTC(),
		Operation: operation,
		Actor:     actor,
	})
}

// List returns the log for an active staff account.  Inactive accounts get
// ErrForbidden.
func (r *AuditRepo) List(actor *model.StaffUser) ([]model.AuditEntry, error) {
	if actor == nil || !actor.IsActive {
		return nil, ErrForbidden
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.AuditEntry(nil), r.entries...), nil
}
