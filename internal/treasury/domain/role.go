package domain

import "time"

// Role is a row in the role catalogue. Permission sets are not stored; they
// come from the rbac registry keyed by Name.
type Role struct {
	Name        string
	Description string
}

// RoleAssignment is one time-ranged grant of a role to a user. An assignment
// is active while RevokedAt is nil.
type RoleAssignment struct {
	ID        string
	UserID    string
	RoleName  string
	GrantedBy string
	GrantedAt time.Time
	RevokedAt *time.Time
	RevokedBy string
}

func (a RoleAssignment) Active() bool { return a.RevokedAt == nil }
