package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLifecycle(t *testing.T) {
	r := NewTokenRepo()
	exp := testNow.Add(24 * time.Hour)

	r.Save("hash-a", 1, exp)

	id, err := r.Lookup("hash-a", testNow)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	_, err = r.Lookup("unknown", testNow)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	// Expired tokens are removed on lookup.
	_, err = r.Lookup("hash-a", exp.Add(time.Second))
	assert.ErrorIs(t, err, ErrTokenNotFound)
	_, err = r.Lookup("hash-a", testNow)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenRotate(t *testing.T) {
	r := NewTokenRepo()
	exp := testNow.Add(24 * time.Hour)

	r.Save("old", 7, exp)
	r.Rotate("old", "new", 7, exp.Add(24*time.Hour))

	_, err := r.Lookup("old", testNow)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	id, err := r.Lookup("new", testNow)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)

	// Delete is idempotent.
	r.Delete("new")
	r.Delete("new")
	_, err = r.Lookup("new", testNow)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
