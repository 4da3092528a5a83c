package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/metrics"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/aussiebroadwan/treasury/internal/treasury/store"
	"github.com/aussiebroadwan/treasury/pkg/idx"
)

type RolesService struct {
	Store   store.Store
	Metrics *metrics.Metrics
}

// RoleInfo is a catalogued role together with its registry permissions.
type RoleInfo struct {
	Role        domain.Role
	Permissions []string
}

func (s *RolesService) auditor() auditor {
	return auditor{store: s.Store, metrics: s.Metrics}
}

// GrantRole gives userID an active assignment of roleName. It reports false
// when the role is unknown or the user already holds it.
func (s *RolesService) GrantRole(ctx context.Context, actor rbac.AuthContext, userID, roleName string) (bool, error) {
	a := s.auditor()
	if !actor.HasAnyRole(rbac.RoleAdmins...) {
		return false, a.deny(ctx, actor, "grant_role")
	}
	if ok, err := s.roleExists(ctx, roleName); err != nil || !ok {
		return false, err
	}
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		return false, notFound("user", err)
	}

	return a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		if err := grant(ctx, tx, actor, userID, roleName); err != nil {
			return domain.AuditEntry{}, err
		}
		return domain.AuditEntry{
			Action:     domain.AuditRoleGranted,
			TargetType: "user",
			TargetID:   userID,
			Details:    map[string]any{"role": roleName},
		}, nil
	})
}

// RevokeRole ends userID's active assignment of roleName. It reports false
// when the role is unknown or no active assignment exists.
func (s *RolesService) RevokeRole(ctx context.Context, actor rbac.AuthContext, userID, roleName string) (bool, error) {
	a := s.auditor()
	if !actor.HasAnyRole(rbac.RoleAdmins...) {
		return false, a.deny(ctx, actor, "revoke_role")
	}
	if ok, err := s.roleExists(ctx, roleName); err != nil || !ok {
		return false, err
	}
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		return false, notFound("user", err)
	}

	return a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		ok, err := tx.Roles().RevokeAssignment(ctx, userID, roleName, actor.UserID, now())
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("revoke role: %w", err)
		}
		if !ok {
			return domain.AuditEntry{}, errNoChange
		}
		return domain.AuditEntry{
			Action:     domain.AuditRoleRevoked,
			TargetType: "user",
			TargetID:   userID,
			Details:    map[string]any{"role": roleName},
		}, nil
	})
}

// grant inserts an active assignment. A duplicate active assignment yields
// errNoChange and leaves the transaction usable.
func grant(ctx context.Context, tx store.Store, actor rbac.AuthContext, userID, roleName string) error {
	ok, err := tx.Roles().CreateAssignment(ctx, domain.RoleAssignment{
		ID:        idx.New().String(),
		UserID:    userID,
		RoleName:  roleName,
		GrantedBy: actor.UserID,
		GrantedAt: now(),
	})
	if err != nil {
		return fmt.Errorf("grant role: %w", err)
	}
	if !ok {
		return errNoChange
	}
	return nil
}

func (s *RolesService) roleExists(ctx context.Context, roleName string) (bool, error) {
	if _, ok := rbac.PermissionsFor(roleName); !ok {
		return false, nil
	}
	_, err := s.Store.Roles().GetRole(ctx, roleName)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("look up role: %w", err)
	}
	return true, nil
}

// ActiveRoles returns the names of the roles userID currently holds.
func (s *RolesService) ActiveRoles(ctx context.Context, userID string) ([]string, error) {
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		return nil, notFound("user", err)
	}
	return s.Store.Roles().ActiveRoleNames(ctx, userID)
}

// ListRoles returns every catalogued role with its permission set.
func (s *RolesService) ListRoles(ctx context.Context) ([]RoleInfo, error) {
	roles, err := s.Store.Roles().ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RoleInfo, 0, len(roles))
	for _, r := range roles {
		perms, ok := rbac.PermissionsFor(r.Name)
		if !ok {
			continue
		}
		out = append(out, RoleInfo{Role: r, Permissions: perms.List()})
	}
	return out, nil
}

func (s *RolesService) PermissionsFor(roleName string) ([]string, bool) {
	perms, ok := rbac.PermissionsFor(roleName)
	if !ok {
		return nil, false
	}
	return perms.List(), true
}

// AuthContextFor builds the request identity for userID. Users that are not
// active carry no roles and are therefore denied everything.
func (s *RolesService) AuthContextFor(ctx context.Context, userID string) (rbac.AuthContext, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return rbac.AuthContext{}, notFound("user", err)
	}
	if !u.IsActive() {
		return rbac.AuthContext{UserID: userID}, nil
	}
	roles, err := s.Store.Roles().ActiveRoleNames(ctx, userID)
	if err != nil {
		return rbac.AuthContext{}, err
	}
	return rbac.AuthContext{UserID: userID, Roles: roles}, nil
}
