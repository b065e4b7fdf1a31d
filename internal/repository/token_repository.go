package repository

import (
	"errors"
	"sync"
	"time"
)

// ErrTokenNotFound is returned when a refresh token is unknown, revoked or
// expired.
var ErrTokenNotFound = errors.New("refresh token not found")

// refreshRecord stores one live refresh token.  Only the SHA-256 hash of
// the raw token is kept; see utils.HashRefreshRaw.
type refreshRecord struct {
	staffID   uint64
	expiresAt time.Time
}

// TokenRepo stores hashed refresh tokens for staff sessions.
type TokenRepo struct {
	mu     sync.Mutex
	tokens map[string]refreshRecord
}

// NewTokenRepo constructs an empty token store.
func NewTokenRepo() *TokenRepo {
	return &TokenRepo{tokens: make(map[string]refreshRecord)}
}

// Save records a refresh token hash for a staff account.
func (r *TokenRepo) Save(hash string, staffID uint64, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[hash] = refreshRecord{staffID: staffID, expiresAt: expiresAt}
}

// Lookup resolves a token hash to its staff ID.  Expired tokens are removed
// on sight.
func (r *TokenRepo) Lookup(hash string, now time.Time) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.tokens[hash]
	if !ok {
		return 0, ErrTokenNotFound
	}
	if now.After(rec.expiresAt) {
		delete(r.tokens, hash)
		return 0, ErrTokenNotFound
	}
	return rec.staffID, nil
}

// Delete revokes a refresh token.  Deleting an unknown hash is not an
// error; logout must be idempotent.
func (r *TokenRepo) Delete(hash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, hash)
}

// Rotate atomically revokes the old token and stores a replacement.
func (r *TokenRepo) Rotate(oldHash, newHash string, staffID uint64, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, oldHash)
	r.tokens[newHash] = refreshRecord{staffID: staffID, expiresAt: expiresAt}
}
