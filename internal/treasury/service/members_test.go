package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/stretchr/testify/require"
)

func TestMemberStatement(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedSemester(t, st)
	svc := &MemberService{Store: st}
	userID := seedUser(t, st, "pat@chapter.org", domain.UserActive)

	id, err := svc.AddMember(ctx, treasurer, MemberParams{
		UserID: userID, Name: "Pat", Contact: "555-0100", DuesCents: 40001, Plan: domain.PlanMonthly,
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, treasurer, id, MemberPaymentParams{AmountCents: 15000, Method: domain.MethodZelle})
	require.NoError(t, err)

	self := rbac.AuthContext{UserID: userID, Roles: []string{rbac.RoleBrother}}
	stmt, err := svc.Get(ctx, self, id)
	require.NoError(t, err)
	require.Equal(t, int64(15000), stmt.PaidCents)
	require.Equal(t, int64(25001), stmt.BalanceCents)
	require.False(t, stmt.PaidUp())

	require.Len(t, stmt.Schedule, 4)
	require.Equal(t, int64(10001), stmt.Schedule[0].AmountCents)
	require.Equal(t, domain.InstallmentPaid, stmt.Schedule[0].Status)
	require.Equal(t, domain.InstallmentPartial, stmt.Schedule[1].Status)
	require.Equal(t, int64(4999), stmt.Schedule[1].PaidCents)
	require.Equal(t, domain.InstallmentPending, stmt.Schedule[2].Status)
	require.Equal(t, time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), stmt.Schedule[0].DueDate.UTC())

	_, err = svc.Get(ctx, brother, id)
	require.ErrorIs(t, err, ErrForbidden)

	require.Len(t, auditFor(t, st, domain.AuditMemberAdded), 1)
	require.Len(t, auditFor(t, st, domain.AuditMemberPaymentRecorded), 1)
}

func TestMemberCustomPlan(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedSemester(t, st)
	svc := &MemberService{Store: st}
	due1 := time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC)
	due2 := time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC)

	_, err := svc.AddMember(ctx, treasurer, MemberParams{
		Name: "Sam", DuesCents: 30000, Plan: domain.PlanCustom,
		Installments: []domain.Installment{{DueDate: due1, AmountCents: 10000}},
	})
	require.ErrorIs(t, err, ErrValidation)

	id, err := svc.AddMember(ctx, treasurer, MemberParams{
		Name: "Sam", DuesCents: 30000, Plan: domain.PlanCustom,
		Installments: []domain.Installment{
			{DueDate: due2, AmountCents: 20000},
			{DueDate: due1, AmountCents: 10000},
		},
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, treasurer, id, MemberPaymentParams{AmountCents: 30000})
	require.NoError(t, err)

	stmt, err := svc.Get(ctx, treasurer, id)
	require.NoError(t, err)
	require.True(t, stmt.PaidUp())
	require.Len(t, stmt.Schedule, 2)
	require.True(t, due1.Equal(stmt.Schedule[0].DueDate))
	for _, it := range stmt.Schedule {
		require.Equal(t, domain.InstallmentPaid, it.Status)
	}

	_, err = svc.AddMember(ctx, treasurer, MemberParams{Name: "Bad", DuesCents: 1, Plan: "weekly"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestMemberDuesSummary(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedSemester(t, st)
	svc := &MemberService{Store: st}

	a, err := svc.AddMember(ctx, treasurer, MemberParams{Name: "A", DuesCents: 40000})
	require.NoError(t, err)
	b, err := svc.AddMember(ctx, treasurer, MemberParams{Name: "B", DuesCents: 40000})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, treasurer, a, MemberPaymentParams{AmountCents: 40000})
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, treasurer, b, MemberPaymentParams{AmountCents: 10000})
	require.NoError(t, err)

	sum, err := svc.DuesSummary(ctx, treasurer, "")
	require.NoError(t, err)
	require.Equal(t, 2, sum.MemberCount)
	require.Equal(t, 1, sum.PaidUpCount)
	require.Equal(t, int64(80000), sum.ProjectedCents)
	require.Equal(t, int64(50000), sum.CollectedCents)
	require.Equal(t, int64(30000), sum.OutstandingCents)
	require.InDelta(t, 0.625, sum.CollectionRate, 1e-9)

	members, err := svc.List(ctx, treasurer, "fall_2024")
	require.NoError(t, err)
	require.Len(t, members, 2)

	_, err = svc.DuesSummary(ctx, brother, "")
	require.ErrorIs(t, err, ErrForbidden)
}
