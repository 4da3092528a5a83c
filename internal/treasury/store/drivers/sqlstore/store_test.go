package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/store"
	"github.com/aussiebroadwan/treasury/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "treasury.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func addUser(t *testing.T, st store.Store, email string, status domain.UserStatus) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FirstName:    "Test",
		LastName:     email,
		PasswordHash: "x",
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func addSemester(t *testing.T, st store.Store, season domain.Season, year int, current bool) domain.Semester {
	t.Helper()
	s := domain.Semester{
		ID:        domain.SemesterID(season, year),
		Name:      string(season),
		Year:      year,
		Season:    season,
		IsCurrent: current,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Semesters().CreateSemester(context.Background(), s))
	return s
}

func TestMigrationsSeedCatalogue(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	committees, err := st.Committees().ListCommittees(ctx)
	require.NoError(t, err)
	require.Len(t, committees, 3)
	require.Equal(t, "Brotherhood", committees[0].Name)

	roles, err := st.Roles().ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 8)

	// Re-applying is a no-op.
	require.NoError(t, st.ApplyMigrations())
	v, dirty, err := st.MigrationVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(1), v)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	u := addUser(t, st, "Brother@Chapter.org", domain.UserPending)

	got, err := st.Users().GetUserByEmail(ctx, "brother@chapter.org")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, domain.UserPending, got.Status)
	require.Nil(t, got.LastLoginAt)

	dup := u
	dup.ID = idx.New().String()
	err = st.Users().CreateUser(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = st.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	now := time.Now().UTC()
	require.NoError(t, st.Users().SetStatus(ctx, u.ID, domain.UserActive, "actor", now))
	require.NoError(t, st.Users().TouchLastLogin(ctx, u.ID, now))
	got, err = st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.UserActive, got.Status)
	require.Equal(t, "actor", got.ApprovedBy)
	require.NotNil(t, got.LastLoginAt)

	ids, err := st.Users().ListActiveUserIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{u.ID}, ids)

	n, err := st.Users().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestRoleAssignmentsAtMostOneActive(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := addUser(t, st, "a@chapter.org", domain.UserActive)

	grant := func() (bool, error) {
		return st.Roles().CreateAssignment(ctx, domain.RoleAssignment{
			ID: idx.New().String(), UserID: u.ID, RoleName: "treasurer", GrantedBy: "x", GrantedAt: time.Now().UTC(),
		})
	}

	ok, err := grant()
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = grant()
	require.NoError(t, err, "a duplicate active grant must not fail the statement")
	require.False(t, ok)

	ok, err = st.Roles().RevokeAssignment(ctx, u.ID, "treasurer", "x", time.Now().UTC())
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.Roles().RevokeAssignment(ctx, u.ID, "treasurer", "x", time.Now().UTC())
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = grant()
	require.NoError(t, err)
	require.True(t, ok)
	names, err := st.Roles().ActiveRoleNames(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"treasurer"}, names)

	history, err := st.Roles().ListAssignments(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.False(t, history[0].Active())
	require.True(t, history[1].Active())
}

func TestAtMostOneCurrentSemester(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	addSemester(t, st, domain.SeasonFall, 2024, true)
	err := st.Semesters().CreateSemester(ctx, domain.Semester{
		ID: "spring_2025", Name: "Spring 2025", Year: 2025, Season: domain.SeasonSpring,
		IsCurrent: true, CreatedAt: time.Now().UTC(),
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	require.NoError(t, st.Semesters().ArchiveCurrent(ctx, "fall_2024"))
	_, err = st.Semesters().GetCurrent(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	addSemester(t, st, domain.SeasonSpring, 2025, true)
	cur, err := st.Semesters().GetCurrent(ctx)
	require.NoError(t, err)
	require.Equal(t, "spring_2025", cur.ID)

	old, err := st.Semesters().GetSemester(ctx, "fall_2024")
	require.NoError(t, err)
	require.True(t, old.Archived)
	require.False(t, old.IsCurrent)
}

func TestDuesAggregates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := addUser(t, st, "dues@chapter.org", domain.UserActive)
	addSemester(t, st, domain.SeasonFall, 2024, true)

	base := time.Now().UTC().Add(-time.Hour)
	charge := func(cents int64, at time.Time) string {
		id := idx.New().String()
		require.NoError(t, st.Dues().CreateCharge(ctx, domain.DuesCharge{
			ID: id, SemesterID: "fall_2024", UserID: u.ID, ChargeCents: cents, Reason: "dues",
			IssuedAt: at, IssuedBy: "x",
		}))
		return id
	}
	c1 := charge(30000, base)
	c2 := charge(20000, base.Add(time.Minute))

	p1 := idx.New().String()
	require.NoError(t, st.Dues().CreatePayment(ctx, domain.DuesPayment{
		ID: p1, UserID: u.ID, AmountCents: 40000, PaidAt: base, Method: domain.MethodVenmo, RecordedBy: "x",
	}))
	require.NoError(t, st.Dues().CreateAllocation(ctx, domain.DuesPaymentAllocation{
		ID: idx.New().String(), PaymentID: p1, ChargeID: c1, AllocatedCents: 30000, AllocatedBy: "x", AllocatedAt: base,
	}))

	charged, err := st.Dues().SumCharges(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(50000), charged)

	paid, err := st.Dues().SumPayments(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(40000), paid)

	unalloc, err := st.Dues().UnallocatedForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(10000), unalloc)

	open, err := st.Dues().OpenCharges(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, open, 2)
	require.Equal(t, c1, open[0].ID)
	require.Zero(t, open[0].RemainingCents)
	require.Equal(t, c2, open[1].ID)
	require.Equal(t, int64(20000), open[1].RemainingCents)

	sum, err := st.Dues().SemesterSummary(ctx, "fall_2024")
	require.NoError(t, err)
	require.Equal(t, 2, sum.ChargeCount)
	require.Equal(t, int64(30000), sum.AllocatedCents)
	require.Equal(t, int64(20000), sum.OutstandingCents)
	require.InDelta(t, 0.6, sum.CollectionRate, 1e-9)

	// Deleting the payment removes its allocations from charge coverage.
	ok, err := st.Dues().SoftDeletePayment(ctx, p1, "x", time.Now().UTC())
	require.NoError(t, err)
	require.True(t, ok)

	allocated, err := st.Dues().AllocatedToCharge(ctx, c1)
	require.NoError(t, err)
	require.Zero(t, allocated)

	fromPayment, err := st.Dues().AllocatedFromPayment(ctx, p1)
	require.NoError(t, err)
	require.Equal(t, int64(30000), fromPayment)

	ok, err = st.Dues().SoftDeleteCharge(ctx, c2, "x", time.Now().UTC())
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = st.Dues().SoftDeleteCharge(ctx, c2, "x", time.Now().UTC())
	require.NoError(t, err)
	require.False(t, ok)

	charged, err = st.Dues().SumCharges(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(30000), charged)
}

func TestCommitteeBudget(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	addSemester(t, st, domain.SeasonFall, 2024, true)

	_, err := st.Committees().LatestAllocation(ctx, "fall_2024", "social")
	require.ErrorIs(t, err, store.ErrNotFound)

	first := time.Now().UTC().Add(-time.Hour)
	for i, cents := range []int64{100000, 200000} {
		require.NoError(t, st.Committees().CreateAllocation(ctx, domain.CommitteeBudgetAllocation{
			ID: idx.New().String(), SemesterID: "fall_2024", CommitteeID: "social",
			AllocatedCents: cents, AllocatedBy: "x", AllocatedAt: first.Add(time.Duration(i) * time.Minute),
		}))
	}
	latest, err := st.Committees().LatestAllocation(ctx, "fall_2024", "social")
	require.NoError(t, err)
	require.Equal(t, int64(200000), latest.AllocatedCents)

	for _, cents := range []int64{-50000, -10000, 5000} {
		require.NoError(t, st.Committees().CreateTransaction(ctx, domain.CommitteeTransaction{
			ID: idx.New().String(), SemesterID: "fall_2024", CommitteeID: "social",
			AmountCents: cents, CreatedBy: "x", CreatedAt: time.Now().UTC(),
		}))
	}
	spent, credits, err := st.Committees().TransactionTotals(ctx, "fall_2024", "social")
	require.NoError(t, err)
	require.Equal(t, int64(60000), spent)
	require.Equal(t, int64(5000), credits)

	txs, err := st.Committees().ListTransactions(ctx, "fall_2024", "social")
	require.NoError(t, err)
	require.Len(t, txs, 3)
}

func TestAuditListFilters(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	base := time.Now().UTC().Add(-time.Hour)
	for i := range 60 {
		action := domain.AuditTxCreated
		if i%2 == 0 {
			action = domain.AuditRoleGranted
		}
		require.NoError(t, st.Audit().Append(ctx, domain.AuditEntry{
			ID: idx.New().String(), ActorID: "actor", Action: action, TargetType: "user", TargetID: "u1",
			Details: map[string]any{"n": i}, CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	all, err := st.Audit().List(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 50)
	require.EqualValues(t, 59, all[0].Details["n"])

	grants, err := st.Audit().List(ctx, domain.AuditFilter{Action: domain.AuditRoleGranted, Limit: 500})
	require.NoError(t, err)
	require.Len(t, grants, 30)

	page, err := st.Audit().List(ctx, domain.AuditFilter{Limit: 10, Offset: 55})
	require.NoError(t, err)
	require.Len(t, page, 5)

	since := base.Add(50 * time.Second)
	recent, err := st.Audit().List(ctx, domain.AuditFilter{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 10)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		addSemester(t, tx, domain.SeasonFall, 2024, true)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Semesters().GetSemester(ctx, "fall_2024")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = st.WithTx(ctx, func(tx store.Tx) error {
		return tx.WithTx(ctx, func(store.Tx) error { return nil })
	})
	require.ErrorIs(t, err, sql.ErrTxDone)
}

func TestEventsAndCalendarLinks(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	addSemester(t, st, domain.SeasonFall, 2024, true)

	ev := domain.Event{
		ID: idx.New().String(), Title: "Mixer", CommitteeID: "social", SemesterID: "fall_2024",
		CreatedBy: "u1", Status: domain.EventPlanned, CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Events().CreateEvent(ctx, ev))

	require.NoError(t, st.Events().UpsertCalendarLink(ctx, domain.CalendarLink{
		EventID: ev.ID, CalendarID: "chapter", ExternalEventID: "ext-1", SyncStatus: domain.SyncPending,
	}))
	pending, err := st.Events().ListLinksByStatus(ctx, domain.SyncPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, st.Events().SetSyncResult(ctx, ev.ID, domain.SyncSynced, "", time.Now().UTC()))
	link, err := st.Events().GetCalendarLink(ctx, ev.ID)
	require.NoError(t, err)
	require.Equal(t, domain.SyncSynced, link.SyncStatus)
	require.NotNil(t, link.LastSyncedAt)

	require.ErrorIs(t, st.Events().SetSyncResult(ctx, "nope", domain.SyncFailed, "x", time.Now()), store.ErrNotFound)

	n, err := st.Events().ArchiveSemesterEvents(ctx, "fall_2024")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	visible, err := st.Events().ListEvents(ctx, "fall_2024", false)
	require.NoError(t, err)
	require.Empty(t, visible)

	archived, err := st.Events().ListEvents(ctx, "fall_2024", true)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	require.True(t, archived[0].IsArchived)
}

func TestMemberScheduleRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	addSemester(t, st, domain.SeasonFall, 2024, true)

	due := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)
	m := domain.Member{
		ID: idx.New().String(), Name: "Pat", Contact: "555-0100", ContactType: domain.ContactPhone,
		DuesCents: 40000, SemesterID: "fall_2024", CreatedAt: time.Now().UTC(),
		Schedule: domain.CustomSchedule{Items: []domain.Installment{{DueDate: due, AmountCents: 40000}}},
	}
	require.NoError(t, st.Members().CreateMember(ctx, m))

	got, err := st.Members().GetMember(ctx, m.ID)
	require.NoError(t, err)
	custom, ok := got.Schedule.(domain.CustomSchedule)
	require.True(t, ok)
	require.Len(t, custom.Items, 1)
	require.True(t, due.Equal(custom.Items[0].DueDate))

	require.NoError(t, st.Members().CreatePayment(ctx, domain.MemberPayment{
		ID: idx.New().String(), MemberID: m.ID, AmountCents: 15000, Method: domain.MethodCash,
		PaidAt: time.Now().UTC(), CreatedAt: time.Now().UTC(),
	}))
	paid, err := st.Members().PaidBySemester(ctx, "fall_2024")
	require.NoError(t, err)
	require.Equal(t, int64(15000), paid[m.ID])
}
