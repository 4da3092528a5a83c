package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/metrics"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct-horse-battery"

func TestRegisterApproveAuthenticate(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	users := &UserService{Store: st}
	roles := &RolesService{Store: st}

	id, err := users.Register(ctx, RegisterParams{
		Email: "New.Brother@Chapter.org", FirstName: "New", LastName: "Brother", Password: testPassword,
	})
	require.NoError(t, err)

	_, err = users.Register(ctx, RegisterParams{
		Email: "new.brother@chapter.org", FirstName: "Dup", LastName: "Licate", Password: testPassword,
	})
	require.ErrorIs(t, err, ErrEmailTaken)
	require.ErrorIs(t, err, ErrConflict)

	_, err = users.Authenticate(ctx, "new.brother@chapter.org", testPassword)
	require.ErrorIs(t, err, ErrAccountInactive)

	_, err = users.Approve(ctx, treasurer, id)
	require.ErrorIs(t, err, ErrForbidden)

	ok, err := users.Approve(ctx, vp, id)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = users.Approve(ctx, vp, id)
	require.NoError(t, err)
	require.False(t, ok)
	require.Len(t, auditFor(t, st, domain.AuditUserApproved), 1)

	actor, err := roles.AuthContextFor(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{rbac.RoleBrother}, actor.Roles)

	u, err := users.Authenticate(ctx, "NEW.BROTHER@chapter.org", testPassword)
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.NotNil(t, u.LastLoginAt)

	_, err = users.Authenticate(ctx, "new.brother@chapter.org", "wrong-password-123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = users.Authenticate(ctx, "ghost@chapter.org", testPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	ok, err = users.Suspend(ctx, president, id)
	require.NoError(t, err)
	require.True(t, ok)
	_, err = users.Authenticate(ctx, "new.brother@chapter.org", testPassword)
	require.ErrorIs(t, err, ErrAccountInactive)
	require.Len(t, auditFor(t, st, domain.AuditUserSuspended), 1)
}

func TestApproveReactivatesSuspendedUser(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	m := metrics.New()
	users := &UserService{Store: st, Metrics: m}

	id, err := users.Register(ctx, RegisterParams{
		Email: "returning@chapter.org", FirstName: "Re", LastName: "Turning", Password: testPassword,
	})
	require.NoError(t, err)

	ok, err := users.Approve(ctx, vp, id)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = users.Suspend(ctx, vp, id)
	require.NoError(t, err)
	require.True(t, ok)

	// brother is still held from the first approval.
	ok, err = users.Approve(ctx, vp, id)
	require.NoError(t, err)
	require.True(t, ok)

	u, err := st.Users().GetUserByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.UserActive, u.Status)

	history, err := st.Roles().ListAssignments(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.True(t, history[0].Active())

	require.Len(t, auditFor(t, st, domain.AuditUserApproved), 2)
	require.Equal(t, 2.0, counterValue(t, m, "treasury_audit_entries_total", "action", "USER_APPROVED"))
}

func TestRegisterValidation(t *testing.T) {
	users := &UserService{Store: newStore(t)}
	cases := map[string]RegisterParams{
		"bad email":      {Email: "not-an-email", FirstName: "A", LastName: "B", Password: testPassword},
		"missing name":   {Email: "a@chapter.org", FirstName: "A", Password: testPassword},
		"short password": {Email: "a@chapter.org", FirstName: "A", LastName: "B", Password: "short"},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := users.Register(context.Background(), p)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUserReadAccess(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	users := &UserService{Store: st}
	id := seedUser(t, st, "a@chapter.org", domain.UserActive)
	self := rbac.AuthContext{UserID: id, Roles: []string{rbac.RoleBrother}}

	_, err := users.Get(ctx, self, id)
	require.NoError(t, err)
	_, err = users.Get(ctx, brother, id)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = users.Get(ctx, treasurer, "ghost")
	require.ErrorIs(t, err, ErrNotFound)

	list, err := users.List(ctx, treasurer, domain.UserActive)
	require.NoError(t, err)
	require.Len(t, list, 1)
	_, err = users.List(ctx, brother, "")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = users.Suspend(ctx, vp, vp.UserID)
	require.ErrorIs(t, err, ErrValidation)
}

func TestProvision(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	users := &UserService{Store: st}

	id, err := users.Provision(ctx, rbac.System(), RegisterParams{
		Email: "treasurer@chapter.org", FirstName: "Tess", LastName: "Urer", Password: testPassword,
	}, []string{rbac.RoleBrother, rbac.RoleTreasurer})
	require.NoError(t, err)

	names, err := st.Roles().ActiveRoleNames(ctx, id)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{rbac.RoleBrother, rbac.RoleTreasurer}, names)

	grants := auditFor(t, st, domain.AuditRoleGranted)
	require.Len(t, grants, 2)
	require.Equal(t, domain.SystemActor, grants[0].ActorID)

	_, err = users.Provision(ctx, rbac.System(), RegisterParams{
		Email: "x@chapter.org", FirstName: "X", LastName: "Y", Password: testPassword,
	}, []string{"emperor"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = users.Provision(ctx, brother, RegisterParams{}, nil)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestProvisionCountsEveryEntry(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	m := metrics.New()
	users := &UserService{Store: st, Metrics: m}

	id, err := users.Provision(ctx, rbac.System(), RegisterParams{
		Email: "social@chapter.org", FirstName: "So", LastName: "Cial", Password: testPassword,
	}, []string{rbac.RoleBrother, rbac.RoleChairSocial, rbac.RoleChairSocial})
	require.NoError(t, err)

	names, err := st.Roles().ActiveRoleNames(ctx, id)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{rbac.RoleBrother, rbac.RoleChairSocial}, names)

	require.Len(t, auditFor(t, st, domain.AuditRoleGranted), 2)
	require.Equal(t, 2.0, counterValue(t, m, "treasury_audit_entries_total", "action", "ROLE_GRANTED"))
	require.Equal(t, 1.0, counterValue(t, m, "treasury_audit_entries_total", "action", "USER_APPROVED"))
	require.Equal(t, 3, auditCount(t, st))
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	m := metrics.New()
	svc := &BootstrapService{Store: st, Metrics: m, Token: "let-me-in"}
	params := RegisterParams{Email: "founder@chapter.org", FirstName: "Found", LastName: "Er", Password: testPassword}

	_, err := svc.Bootstrap(ctx, "wrong", params)
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)
	require.ErrorIs(t, err, ErrForbidden)

	done, err := svc.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.False(t, done)

	id, err := svc.Bootstrap(ctx, "let-me-in", params)
	require.NoError(t, err)

	names, err := st.Roles().ActiveRoleNames(ctx, id)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{rbac.RolePresident, rbac.RoleAdmin}, names)
	require.Equal(t, 1.0, counterValue(t, m, "treasury_audit_entries_total", "action", "USER_APPROVED"))
	require.Equal(t, 2.0, counterValue(t, m, "treasury_audit_entries_total", "action", "ROLE_GRANTED"))
	require.Equal(t, 3, auditCount(t, st))

	_, err = svc.Bootstrap(ctx, "let-me-in", params)
	require.ErrorIs(t, err, ErrBootstrapAlready)

	disabled := &BootstrapService{Store: newStore(t)}
	_, err = disabled.Bootstrap(ctx, "", params)
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)
}
