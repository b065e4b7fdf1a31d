package model

import "time"

// Staff roles used in JWT role claims.  Managers can administer the catalog
// and read reports; regular staff can do everything except manage other
// staff accounts.
const (
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
)

// StaffUser is an employee account used to authenticate against the admin
// API.  Only the bcrypt hash of the password is ever stored.
type StaffUser struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuditEntry records one administrative operation for the audit log.
type AuditEntry struct {
	At        time.Time `json:"at"`
	Operation string    `json:"operation"`
	Actor     string    `json:"actor"`
}
