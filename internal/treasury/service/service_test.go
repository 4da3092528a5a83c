package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/metrics"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/aussiebroadwan/treasury/internal/treasury/store"
	"github.com/aussiebroadwan/treasury/internal/treasury/store/drivers/sqlstore"
	"github.com/aussiebroadwan/treasury/pkg/cryptox"
	"github.com/aussiebroadwan/treasury/pkg/idx"
	"github.com/stretchr/testify/require"
)

var (
	vp        = rbac.AuthContext{UserID: "vp-user", Roles: []string{rbac.RoleBrother, rbac.RoleVicePresident}}
	president = rbac.AuthContext{UserID: "president-user", Roles: []string{rbac.RolePresident}}
	treasurer = rbac.AuthContext{UserID: "treasurer-user", Roles: []string{rbac.RoleBrother, rbac.RoleTreasurer}}
	brother   = rbac.AuthContext{UserID: "brother-user", Roles: []string{rbac.RoleBrother}}
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "treasury-service")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newStore(t *testing.T) store.Store {
	t.Helper()
	st, err := sqlstore.NewSQLite(filepath.Join(t.TempDir(), "treasury.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedUser(t *testing.T, st store.Store, email string, status domain.UserStatus) string {
	t.Helper()
	id := idx.New().String()
	require.NoError(t, st.Users().CreateUser(context.Background(), domain.User{
		ID:           id,
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "unused",
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}))
	return id
}

// seedSemester starts the chapter on fall_2024 through a rollover.
func seedSemester(t *testing.T, st store.Store) {
	t.Helper()
	svc := &SemesterService{Store: st}
	start := time.Date(2024, time.August, 26, 0, 0, 0, 0, time.UTC)
	ok, err := svc.Rollover(context.Background(), president,
		NewSemester{Season: domain.SeasonFall, Year: 2024, StartsOn: &start}, RolloverConfirmation)
	require.NoError(t, err)
	require.True(t, ok)
}

func auditFor(t *testing.T, st store.Store, action domain.AuditAction) []domain.AuditEntry {
	t.Helper()
	entries, err := st.Audit().List(context.Background(), domain.AuditFilter{Action: action, Limit: 200})
	require.NoError(t, err)
	return entries
}

func auditCount(t *testing.T, st store.Store) int {
	t.Helper()
	entries, err := st.Audit().List(context.Background(), domain.AuditFilter{Limit: 200})
	require.NoError(t, err)
	return len(entries)
}

// counterValue reads one labelled series of a counter from m's registry.
func counterValue(t *testing.T, m *metrics.Metrics, name, label, value string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, series := range f.GetMetric() {
			for _, l := range series.GetLabel() {
				if l.GetName() == label && l.GetValue() == value {
					return series.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
