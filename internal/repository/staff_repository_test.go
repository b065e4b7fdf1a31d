package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

func newStaffRepo() *StaffRepo {
	return NewStaffRepo(bcrypt.MinCost)
}

func TestFirstAccountBecomesManager(t *testing.T) {
	r := newStaffRepo()

	u, err := r.Create("alice", "secret", model.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, u.Role)
	assert.True(t, u.IsActive)

	u2, err := r.Create("bob", "secret", model.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, u2.Role)
	assert.Equal(t, 2, r.Count())
}

func TestCreateStaffValidation(t *testing.T) {
	r := newStaffRepo()

	_, err := r.Create("", "secret", model.RoleStaff)
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = r.Create("alice", "", model.RoleStaff)
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = r.Create("alice", "secret", "JANITOR")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = r.Create("alice", "secret", model.RoleManager)
	require.NoError(t, err)
	_, err = r.Create("alice", "other", model.RoleStaff)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	r := newStaffRepo()
	created, err := r.Create("alice", "secret", model.RoleManager)
	require.NoError(t, err)

	u, err := r.Authenticate("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = r.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = r.Authenticate("nobody", "secret")
	assert.ErrorIs(t, err, ErrBadCredentials)

	require.NoError(t, r.SetActive(created.ID, false))
	_, err = r.Authenticate("alice", "secret")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestPasswordsAreHashed(t *testing.T) {
	r := newStaffRepo()
	u, err := r.Create("alice", "secret", model.RoleManager)
	require.NoError(t, err)

	stored, err := r.GetByID(u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))
}

func TestAuditLogAccess(t *testing.T) {
	staff := newStaffRepo()
	audit := NewAuditRepo()

	u, err := staff.Create("alice", "secret", model.RoleManager)
	require.NoError(t, err)

	audit.Append("hall created: Main", u.Username)
	audit.Append("film 1 deleted", u.Username)

	entries, err := audit.List(u)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "hall created: Main", entries[0].Operation)
	assert.Equal(t, "alice", entries[0].Actor)

	_, err = audit.List(nil)
	assert.ErrorIs(t, err, ErrForbidden)

	inactive := *u
	inactive.IsActive = false
	_, err = audit.List(&inactive)
	assert.ErrorIs(t, err, ErrForbidden)
}
