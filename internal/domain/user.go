package domain

import "time"

// Role distinguishes clients (who file tickets) from agents (who work them).
type Role string

const (
	RoleClient Role = "client"
	RoleAgent  Role = "agent"
)

// Valid reports whether the role is one of the defined values.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAgent
}

// User is the domain model for registered accounts. Role is fixed at
// registration; there is no promotion path.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
