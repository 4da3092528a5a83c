// Package rbac holds the static role registry and the request-scoped
// AuthContext that every service operation is checked against.
package rbac

import "slices"

type Role = string

const (
	RoleBrother          Role = "brother"
	RoleChairBrotherhood Role = "chair_brotherhood"
	RoleChairSocial      Role = "chair_social"
	RoleChairRecruitment Role = "chair_recruitment"
	RoleTreasurer        Role = "treasurer"
	RoleVicePresident    Role = "vice_president"
	RolePresident        Role = "president"
	RoleAdmin            Role = "admin"
)

type Permission = string

const (
	PermViewCalendar               Permission = "view_calendar"
	PermViewDues                   Permission = "view_dues"
	PermCreateEvents               Permission = "create_events"
	PermEditOwnEvents              Permission = "edit_own_events"
	PermViewOwnEvents              Permission = "view_own_events"
	PermCreateSpendingPlans        Permission = "create_spending_plans"
	PermEditOwnSpendingPlans       Permission = "edit_own_spending_plans"
	PermViewOwnSpendingPlans       Permission = "view_own_spending_plans"
	PermManageCommitteeBudget      Permission = "manage_committee_budget"
	PermManageCommitteeEvents      Permission = "manage_committee_events"
	PermManageMasterBudget         Permission = "manage_master_budget"
	PermManageCommitteeAllocations Permission = "manage_committee_allocations"
	PermManageDues                 Permission = "manage_dues"
	PermManageRoles                Permission = "manage_roles"
	PermManageSemesters            Permission = "manage_semesters"
	PermManageEvents               Permission = "manage_events"
)

// Permissions is an immutable set of capabilities.
type Permissions map[Permission]struct{}

func newPermissions(perms ...Permission) Permissions {
	p := make(Permissions, len(perms))
	for _, perm := range perms {
		p[perm] = struct{}{}
	}
	return p
}

func (p Permissions) Has(perm Permission) bool {
	_, ok := p[perm]
	return ok
}

// List returns the permissions sorted by name.
func (p Permissions) List() []Permission {
	out := make([]Permission, 0, len(p))
	for perm := range p {
		out = append(out, perm)
	}
	slices.Sort(out)
	return out
}

var (
	brotherPerms = []Permission{PermViewCalendar, PermViewDues}

	chairPerms = []Permission{
		PermCreateEvents,
		PermEditOwnEvents,
		PermViewOwnEvents,
		PermCreateSpendingPlans,
		PermEditOwnSpendingPlans,
		PermViewOwnSpendingPlans,
		PermManageCommitteeBudget,
		PermManageCommitteeEvents,
	}

	executiveOnlyPerms = []Permission{
		PermManageMasterBudget,
		PermManageCommitteeAllocations,
		PermManageDues,
		PermManageRoles,
		PermManageSemesters,
		PermManageEvents,
	}
)

// AllPermissions lists every capability the system knows about.
func AllPermissions() []Permission {
	return slices.Concat(brotherPerms, chairPerms, executiveOnlyPerms)
}

var registry = map[Role]Permissions{
	RoleBrother:          newPermissions(brotherPerms...),
	RoleChairBrotherhood: newPermissions(chairPerms...),
	RoleChairSocial:      newPermissions(chairPerms...),
	RoleChairRecruitment: newPermissions(chairPerms...),
	RoleTreasurer:        newPermissions(AllPermissions()...),
	RoleVicePresident:    newPermissions(AllPermissions()...),
	RolePresident:        newPermissions(AllPermissions()...),
	RoleAdmin:            newPermissions(AllPermissions()...),
}

// PermissionsFor returns the capability set of a role. Unknown roles report
// false and grant nothing.
func PermissionsFor(role Role) (Permissions, bool) {
	p, ok := registry[role]
	return p, ok
}

// KnownRoles returns every registered role in hierarchy order, highest first.
func KnownRoles() []Role {
	return []Role{
		RolePresident,
		RoleVicePresident,
		RoleTreasurer,
		RoleChairBrotherhood,
		RoleChairSocial,
		RoleChairRecruitment,
		RoleBrother,
		RoleAdmin,
	}
}

// Executive roles hold every capability.
var executiveRoles = []Role{RoleTreasurer, RoleVicePresident, RolePresident, RoleAdmin}

// RoleAdmins may grant and revoke roles, approve accounts and read the audit log.
var RoleAdmins = []Role{RoleVicePresident, RolePresident, RoleAdmin}

// RolloverRoles may close out a semester.
var RolloverRoles = []Role{RoleVicePresident, RolePresident}

var committeeChairs = map[string]Role{
	"brotherhood": RoleChairBrotherhood,
	"social":      RoleChairSocial,
	"recruitment": RoleChairRecruitment,
}

// ChairFor returns the chair role that manages a committee.
func ChairFor(committeeID string) (Role, bool) {
	r, ok := committeeChairs[committeeID]
	return r, ok
}

var hierarchy = map[Role]int{
	RolePresident:        7,
	RoleVicePresident:    6,
	RoleTreasurer:        5,
	RoleChairBrotherhood: 4,
	RoleChairSocial:      4,
	RoleChairRecruitment: 4,
	RoleBrother:          1,
	RoleAdmin:            0,
}

// DefaultDescription is used when seeding the role catalogue.
func DefaultDescription(role Role) string {
	switch role {
	case RoleBrother:
		return "Chapter member"
	case RoleChairBrotherhood:
		return "Brotherhood committee chair"
	case RoleChairSocial:
		return "Social committee chair"
	case RoleChairRecruitment:
		return "Recruitment committee chair"
	case RoleTreasurer:
		return "Chapter treasurer"
	case RoleVicePresident:
		return "Chapter vice president"
	case RolePresident:
		return "Chapter president"
	case RoleAdmin:
		return "System administrator"
	}
	return ""
}
