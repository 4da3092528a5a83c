package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/stretchr/testify/require"
)

func TestGrantRevokeIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &RolesService{Store: st}
	userID := seedUser(t, st, "a@chapter.org", domain.UserActive)

	ok, err := svc.GrantRole(ctx, vp, userID, rbac.RoleTreasurer)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.GrantRole(ctx, vp, userID, rbac.RoleTreasurer)
	require.NoError(t, err)
	require.False(t, ok)

	roles, err := svc.ActiveRoles(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, []string{rbac.RoleTreasurer}, roles)
	require.Len(t, auditFor(t, st, domain.AuditRoleGranted), 1)

	ok, err = svc.RevokeRole(ctx, president, userID, rbac.RoleTreasurer)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.RevokeRole(ctx, president, userID, rbac.RoleTreasurer)
	require.NoError(t, err)
	require.False(t, ok)
	require.Len(t, auditFor(t, st, domain.AuditRoleRevoked), 1)

	roles, err = svc.ActiveRoles(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, roles)

	// A fresh grant after revocation is allowed.
	ok, err = svc.GrantRole(ctx, vp, userID, rbac.RoleTreasurer)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGrantRoleRejections(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &RolesService{Store: st}
	userID := seedUser(t, st, "a@chapter.org", domain.UserActive)

	t.Run("treasurer cannot grant", func(t *testing.T) {
		ok, err := svc.GrantRole(ctx, treasurer, userID, rbac.RoleBrother)
		require.ErrorIs(t, err, ErrForbidden)
		require.False(t, ok)
		require.Zero(t, auditCount(t, st))
	})

	t.Run("unknown role is a no-op", func(t *testing.T) {
		ok, err := svc.GrantRole(ctx, vp, userID, "grand_poobah")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GrantRole(ctx, vp, "nobody", rbac.RoleBrother)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("revoke unheld role", func(t *testing.T) {
		ok, err := svc.RevokeRole(ctx, vp, userID, rbac.RolePresident)
		require.NoError(t, err)
		require.False(t, ok)
	})

	require.Zero(t, auditCount(t, st))
}

func TestChairSocialScenario(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &RolesService{Store: st}
	userID := seedUser(t, st, "social@chapter.org", domain.UserActive)

	ok, err := svc.GrantRole(ctx, vp, userID, rbac.RoleChairSocial)
	require.NoError(t, err)
	require.True(t, ok)

	entries := auditFor(t, st, domain.AuditRoleGranted)
	require.Len(t, entries, 1)
	require.Equal(t, vp.UserID, entries[0].ActorID)
	require.Equal(t, "user", entries[0].TargetType)
	require.Equal(t, userID, entries[0].TargetID)
	require.Equal(t, rbac.RoleChairSocial, entries[0].Details["role"])

	actor, err := svc.AuthContextFor(ctx, userID)
	require.NoError(t, err)
	require.True(t, actor.CanManageCommittee("social"))
	require.False(t, actor.CanManageCommittee("brotherhood"))
	require.True(t, actor.HasPermission(rbac.PermManageCommitteeBudget))
	require.False(t, actor.HasPermission(rbac.PermManageDues))
	require.Equal(t, rbac.RoleChairSocial, actor.PrimaryRole())
}

func TestAuthContextForInactiveUser(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &RolesService{Store: st}
	userID := seedUser(t, st, "s@chapter.org", domain.UserActive)

	_, err := svc.GrantRole(ctx, vp, userID, rbac.RolePresident)
	require.NoError(t, err)
	require.NoError(t, st.Users().SetStatus(ctx, userID, domain.UserSuspended, vp.UserID, now()))

	actor, err := svc.AuthContextFor(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, actor.Roles)
	require.False(t, actor.HasPermission(rbac.PermViewCalendar))
}

func TestListRoles(t *testing.T) {
	svc := &RolesService{Store: newStore(t)}
	roles, err := svc.ListRoles(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, len(rbac.KnownRoles()))

	for _, r := range roles {
		if r.Role.Name == rbac.RoleBrother {
			require.Equal(t, []string{rbac.PermViewCalendar, rbac.PermViewDues}, r.Permissions)
		}
	}

	_, ok := svc.PermissionsFor("nope")
	require.False(t, ok)
}

func TestGrantRoleSurfacesStoreFailure(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &RolesService{Store: st}
	userID := seedUser(t, st, "a@chapter.org", domain.UserActive)
	require.NoError(t, st.Close())

	ok, err := svc.GrantRole(ctx, vp, userID, rbac.RoleTreasurer)
	require.False(t, ok)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotFound))

	_, err = svc.RevokeRole(ctx, vp, userID, rbac.RoleTreasurer)
	require.Error(t, err)
}
