package treasury_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/treasury/pkg/treasurysdk"
	"github.com/stretchr/testify/require"
)

func TestBootstrapOnlyOnce(t *testing.T) {
	client := setupTreasury(t)
	ctx := t.Context()

	_, err := client.Bootstrap(ctx, "wrong-token", treasurysdk.BootstrapRequest{
		Email: "x@example.edu", FirstName: "X", LastName: "Y", Password: presidentPassword,
	})
	require.True(t, treasurysdk.IsAccessDenied(err))

	president := bootstrapPresident(t, client)
	me, err := president.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "president", me.PrimaryRole)

	_, err = client.Bootstrap(ctx, bootstrapToken, treasurysdk.BootstrapRequest{
		Email: "again@example.edu", FirstName: "A", LastName: "B", Password: presidentPassword,
	})
	require.True(t, treasurysdk.IsConflict(err))

	// The bootstrap password is a real login.
	session, err := client.AuthenticateWithPassword(ctx, presidentEmail, presidentPassword)
	require.NoError(t, err)
	require.Equal(t, me.User.ID, session.UserID())
}

func TestRoleGrantsAndAudit(t *testing.T) {
	client := setupTreasury(t)
	ctx := t.Context()
	president := bootstrapPresident(t, client)
	bro := addBrother(t, client, president, "treasurer@example.edu")

	_, err := bro.GrantRole(ctx, bro.UserID(), "president")
	require.True(t, treasurysdk.IsAccessDenied(err), "brothers cannot grant roles")

	ok, err := president.GrantRole(ctx, bro.UserID(), "treasurer")
	require.NoError(t, err)
	require.True(t, ok)

	roles, err := bro.UserRoles(ctx, bro.UserID())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"brother", "treasurer"}, roles.Roles)

	_, err = president.GrantRole(ctx, bro.UserID(), "grand_poobah")
	require.Error(t, err)

	ok, err = president.RevokeRole(ctx, bro.UserID(), "treasurer")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = president.RevokeRole(ctx, bro.UserID(), "treasurer")
	require.NoError(t, err)
	require.False(t, ok, "second revoke changes nothing")

	granted, err := president.AuditLog(ctx, treasurysdk.AuditQuery{Action: "ROLE_GRANTED", TargetID: bro.UserID()})
	require.NoError(t, err)
	require.NotEmpty(t, granted.Entries)

	revoked, err := president.AuditLog(ctx, treasurysdk.AuditQuery{Action: "ROLE_REVOKED", TargetID: bro.UserID()})
	require.NoError(t, err)
	require.Len(t, revoked.Entries, 1)
	require.Equal(t, president.UserID(), revoked.Entries[0].ActorID)
}

func TestSemesterDuesAndBudgets(t *testing.T) {
	client := setupTreasury(t)
	ctx := t.Context()
	president := bootstrapPresident(t, client)
	bro := addBrother(t, client, president, "brother@example.edu")

	rollover(t, president, "fall", 2024)

	count, err := president.CreateChargeBatch(ctx, treasurysdk.ChargeBatchRequest{
		AmountCents: 45000, Reason: "Fall dues",
	})
	require.NoError(t, err)
	require.Equal(t, 2, count)

	paymentID, err := president.RecordPayment(ctx, treasurysdk.PaymentRequest{
		UserID: bro.UserID(), AmountCents: 20000, Method: "zelle",
	})
	require.NoError(t, err)
	allocated, err := president.AutoAllocate(ctx, paymentID)
	require.NoError(t, err)
	require.Equal(t, int64(20000), allocated)

	bal, err := bro.DuesBalance(ctx, bro.UserID())
	require.NoError(t, err)
	require.Equal(t, int64(25000), bal.TotalCents)
	require.Equal(t, "$250.00", bal.Display)

	_, err = president.SetAllocation(ctx, "recruitment", treasurysdk.AllocationSetRequest{AllocatedCents: 100000})
	require.NoError(t, err)
	_, err = president.CreateTransaction(ctx, "recruitment", treasurysdk.TransactionRequest{
		AmountCents: 30000, Direction: "spend", Vendor: "BBQ Co",
	})
	require.NoError(t, err)

	summary, err := president.BudgetSummary(ctx, "")
	require.NoError(t, err)
	require.Equal(t, "fall_2024", summary.SemesterID)
	var recruitment *treasurysdk.BudgetResponse
	for i := range summary.Budgets {
		if summary.Budgets[i].CommitteeID == "recruitment" {
			recruitment = &summary.Budgets[i]
		}
	}
	require.NotNil(t, recruitment)
	require.Equal(t, int64(70000), recruitment.RemainingCents)

	// Rolling over leaves the fall charge as a prior-semester balance.
	rollover(t, president, "spring", 2025)
	current, err := president.CurrentSemester(ctx)
	require.NoError(t, err)
	require.Equal(t, "spring_2025", current.ID)

	bal, err = bro.DuesBalance(ctx, bro.UserID())
	require.NoError(t, err)
	require.Equal(t, int64(25000), bal.PriorCents)
	require.Equal(t, int64(0), bal.CurrentCents)

	semesters, err := president.ListSemesters(ctx)
	require.NoError(t, err)
	require.Len(t, semesters.Semesters, 2)
}

func TestEventsMembersAndLedger(t *testing.T) {
	client := setupTreasury(t)
	ctx := t.Context()
	president := bootstrapPresident(t, client)
	rollover(t, president, "fall", 2024)

	starts := time.Date(2024, time.October, 31, 20, 0, 0, 0, time.UTC)
	eventID, err := president.CreateEvent(ctx, treasurysdk.EventRequest{
		Title: "Halloween Social", CommitteeID: "social", StartsAt: &starts, EstimatedCostCents: 40000,
	})
	require.NoError(t, err)
	require.NoError(t, president.LinkCalendar(ctx, eventID, treasurysdk.CalendarLinkRequest{
		CalendarID: "chapter@group.calendar", ExternalEventID: "evt-1",
	}))

	events, err := president.ListEvents(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, events.Events, 1)
	require.Equal(t, "fall_2024", events.Events[0].SemesterID)

	memberID, err := president.AddMember(ctx, treasurysdk.MemberRequest{
		Name: "Alex Pledge", Contact: "alex@example.edu", ContactType: "email", DuesCents: 30000,
	})
	require.NoError(t, err)
	_, err = president.RecordMemberPayment(ctx, memberID, treasurysdk.MemberPaymentRequest{
		AmountCents: 30000, Method: "cash",
	})
	require.NoError(t, err)

	statement, err := president.Member(ctx, memberID)
	require.NoError(t, err)
	require.True(t, statement.PaidUp)
	require.Equal(t, int64(0), statement.BalanceCents)

	memberSummary, err := president.MemberSummary(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 1, memberSummary.PaidUpCount)

	_, err = president.AddLedgerEntry(ctx, treasurysdk.LedgerEntryRequest{AmountCents: 30000, Category: "dues"})
	require.NoError(t, err)
	_, err = president.AddLedgerEntry(ctx, treasurysdk.LedgerEntryRequest{AmountCents: -12550, Category: "supplies"})
	require.NoError(t, err)

	ledger, err := president.Ledger(ctx, 50, 0)
	require.NoError(t, err)
	require.Equal(t, int64(17450), ledger.BalanceCents)
	require.Equal(t, "$174.50", ledger.Display)
}

func TestPostgresBackend(t *testing.T) {
	client := setupTreasuryOnPostgres(t)
	ctx := t.Context()

	health, err := client.GetReadiness(ctx)
	assertHealthy(t, health, err)

	president := bootstrapPresident(t, client)
	bro := addBrother(t, client, president, "pg@example.edu")
	rollover(t, president, "fall", 2024)

	count, err := president.CreateChargeBatch(ctx, treasurysdk.ChargeBatchRequest{AmountCents: 10000})
	require.NoError(t, err)
	require.Equal(t, 2, count)

	_, err = client.Register(ctx, treasurysdk.RegisterRequest{
		Email: "pg@example.edu", FirstName: "Dup", LastName: "Licate", Password: memberPassword,
	})
	require.True(t, treasurysdk.IsConflict(err), "unique violations map to 409 on postgres too")

	bal, err := bro.DuesBalance(ctx, bro.UserID())
	require.NoError(t, err)
	require.Equal(t, int64(10000), bal.TotalCents)

	// The brother grant survives suspension, so re-approval must not trip the
	// unique index inside its transaction.
	ok, err := president.SuspendUser(ctx, bro.UserID())
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = president.ApproveUser(ctx, bro.UserID())
	require.NoError(t, err)
	require.True(t, ok)

	roles, err := president.UserRoles(ctx, bro.UserID())
	require.NoError(t, err)
	require.Equal(t, []string{"brother"}, roles.Roles)
}
