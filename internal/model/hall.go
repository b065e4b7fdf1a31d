package model

import "time"

// Hall represents a screening hall with a fixed seat capacity.  Seats are
// counted, not laid out: the booking repository tracks how many of the
// capacity are taken per showing.
//
// Fields:
//  ID        – registry identifier, assigned on creation.
//  Name      – human readable label, unique within the registry.
//  Capacity  – number of seats; must be positive.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hall struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Capacity  uint32    `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the hall's invariants.
func (h *Hall) Validate() error {
	if h.Name == "" {
		return invalidf("hall name cannot be empty")
	}
	if h.Capacity == 0 {
		return invalidf("capacity must be positive")
	}
	return nil
}
