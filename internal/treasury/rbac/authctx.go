package rbac

import (
	"slices"
	"sort"
)

// AuthContext is the caller identity and active role set for one request.
// It is built once by the caller and passed explicitly to every operation.
type AuthContext struct {
	UserID string
	Roles  []Role
}

// System is the actor used by administrative CLI commands.
func System() AuthContext {
	return AuthContext{UserID: "system", Roles: []Role{RoleAdmin}}
}

func (a AuthContext) HasRole(role Role) bool {
	return slices.Contains(a.Roles, role)
}

func (a AuthContext) HasAnyRole(roles ...Role) bool {
	return slices.ContainsFunc(roles, a.HasRole)
}

// HasPermission reports whether any held role grants perm. Unknown roles
// contribute nothing.
func (a AuthContext) HasPermission(perm Permission) bool {
	for _, role := range a.Roles {
		if p, ok := PermissionsFor(role); ok && p.Has(perm) {
			return true
		}
	}
	return false
}

// Permissions is the union of the permission sets of all held roles.
func (a AuthContext) Permissions() Permissions {
	out := make(Permissions)
	for _, role := range a.Roles {
		if p, ok := PermissionsFor(role); ok {
			for perm := range p {
				out[perm] = struct{}{}
			}
		}
	}
	return out
}

func (a AuthContext) IsExecutive() bool {
	return a.HasAnyRole(executiveRoles...)
}

// PrimaryRole returns the highest-ranked held role. admin ranks 0 so it is
// only primary when held alone. Equal ranks resolve to whichever appears
// first in Roles, so a user with two chair roles gets a primary role that
// depends on grant order. Returns "" when no known role is held.
func (a AuthContext) PrimaryRole() Role {
	best, bestRank := Role(""), -1
	for _, role := range a.Roles {
		rank, ok := hierarchy[role]
		if ok && rank > bestRank {
			best, bestRank = role, rank
		}
	}
	return best
}

// CanManageCommittee reports whether the caller may change a committee's
// budget or events: executives for every committee, chairs for their own.
func (a AuthContext) CanManageCommittee(committeeID string) bool {
	if a.IsExecutive() {
		return true
	}
	chair, ok := ChairFor(committeeID)
	return ok && a.HasRole(chair)
}

// CanEditEvent allows executives, the event's creator, and whoever manages
// the event's committee.
func (a AuthContext) CanEditEvent(createdBy, committeeID string) bool {
	if a.IsExecutive() {
		return true
	}
	if createdBy != "" && createdBy == a.UserID {
		return true
	}
	return committeeID != "" && a.CanManageCommittee(committeeID)
}

// ManagedCommittees lists the committees the caller may manage, sorted.
func (a AuthContext) ManagedCommittees() []string {
	out := make([]string, 0, len(committeeChairs))
	for id := range committeeChairs {
		if a.CanManageCommittee(id) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
