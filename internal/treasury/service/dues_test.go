package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/stretchr/testify/require"
)

func TestChargeBatchActiveUsersOnly(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedSemester(t, st)
	svc := &DuesService{Store: st}

	active := []string{
		seedUser(t, st, "a@chapter.org", domain.UserActive),
		seedUser(t, st, "b@chapter.org", domain.UserActive),
		seedUser(t, st, "c@chapter.org", domain.UserActive),
	}
	pending := seedUser(t, st, "p@chapter.org", domain.UserPending)
	seedUser(t, st, "s@chapter.org", domain.UserSuspended)

	n, err := svc.CreateChargeBatch(ctx, treasurer, ChargeBatchParams{SemesterID: "fall_2024", AmountCents: 50000})
	require.NoError(t, err)
	require.Equal(t, 3, n)

	sum, err := svc.SemesterSummary(ctx, treasurer, "fall_2024")
	require.NoError(t, err)
	require.Equal(t, 3, sum.ChargeCount)
	require.Equal(t, int64(150000), sum.ChargedCents)

	for _, id := range active {
		open, err := st.Dues().OpenCharges(ctx, id)
		require.NoError(t, err)
		require.Len(t, open, 1)
		require.Equal(t, defaultChargeReason, open[0].Reason)
	}
	open, err := st.Dues().OpenCharges(ctx, pending)
	require.NoError(t, err)
	require.Empty(t, open)

	entries := auditFor(t, st, domain.AuditDuesChargeBatchCreated)
	require.Len(t, entries, 1)
	require.EqualValues(t, 3, entries[0].Details["count"])
	require.EqualValues(t, 50000, entries[0].Details["charge_cents"])
	require.Equal(t, "fall_2024", entries[0].Details["semester_id"])
}

func TestChargeBatchValidation(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &DuesService{Store: st}

	_, err := svc.CreateChargeBatch(ctx, brother, ChargeBatchParams{AmountCents: 100})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateChargeBatch(ctx, treasurer, ChargeBatchParams{AmountCents: 0})
	require.ErrorIs(t, err, ErrInvalidAmount)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateChargeBatch(ctx, treasurer, ChargeBatchParams{AmountCents: 100})
	require.ErrorIs(t, err, ErrNoCurrentSemester)

	_, err = svc.CreateChargeBatch(ctx, treasurer, ChargeBatchParams{SemesterID: "spring_1999", AmountCents: 100})
	require.ErrorIs(t, err, ErrNotFound)

	require.Zero(t, auditCount(t, st))
}

func TestBalance(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedSemester(t, st)
	svc := &DuesService{Store: st}
	userID := seedUser(t, st, "a@chapter.org", domain.UserActive)

	t.Run("zero when nothing charged", func(t *testing.T) {
		b, err := svc.Balance(ctx, treasurer, userID)
		require.NoError(t, err)
		require.Zero(t, b.TotalCents)
		require.Zero(t, b.CurrentCents)
		require.Zero(t, b.PriorCents)
	})

	_, err := svc.CreateChargeBatch(ctx, treasurer, ChargeBatchParams{AmountCents: 50000})
	require.NoError(t, err)
	paymentID, err := svc.RecordPayment(ctx, treasurer, PaymentParams{UserID: userID, AmountCents: 20000, Method: domain.MethodVenmo})
	require.NoError(t, err)

	t.Run("charges minus payments", func(t *testing.T) {
		b, err := svc.Balance(ctx, rbacSelf(userID), userID)
		require.NoError(t, err)
		require.Equal(t, int64(50000), b.ChargedCents)
		require.Equal(t, int64(20000), b.PaidCents)
		require.Equal(t, int64(30000), b.TotalCents)
		require.Equal(t, int64(20000), b.UnallocatedCents)
		// Nothing allocated yet, so the whole charge is still open.
		require.Equal(t, int64(50000), b.CurrentCents)
	})

	t.Run("allocation moves the current split", func(t *testing.T) {
		allocated, err := svc.AutoAllocate(ctx, treasurer, paymentID)
		require.NoError(t, err)
		require.Equal(t, int64(20000), allocated)

		b, err := svc.Balance(ctx, treasurer, userID)
		require.NoError(t, err)
		require.Equal(t, int64(30000), b.TotalCents)
		require.Equal(t, int64(30000), b.CurrentCents)
		require.Zero(t, b.UnallocatedCents)
	})

	t.Run("other brothers cannot read", func(t *testing.T) {
		_, err := svc.Balance(ctx, brother, userID)
		require.ErrorIs(t, err, ErrForbidden)
	})
}

func rbacSelf(userID string) rbac.AuthContext {
	return rbac.AuthContext{UserID: userID, Roles: []string{rbac.RoleBrother}}
}

func TestAllocationInvariants(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedSemester(t, st)
	svc := &DuesService{Store: st}
	userID := seedUser(t, st, "a@chapter.org", domain.UserActive)
	otherID := seedUser(t, st, "b@chapter.org", domain.UserActive)

	_, err := svc.CreateChargeBatch(ctx, treasurer, ChargeBatchParams{AmountCents: 30000})
	require.NoError(t, err)
	open, err := st.Dues().OpenCharges(ctx, userID)
	require.NoError(t, err)
	chargeID := open[0].ID
	otherOpen, err := st.Dues().OpenCharges(ctx, otherID)
	require.NoError(t, err)

	paymentID, err := svc.RecordPayment(ctx, treasurer, PaymentParams{UserID: userID, AmountCents: 40000})
	require.NoError(t, err)

	_, err = svc.AllocatePayment(ctx, treasurer, paymentID, chargeID, 30001)
	require.ErrorIs(t, err, ErrAllocationExceedsCharge)

	_, err = svc.AllocatePayment(ctx, treasurer, paymentID, otherOpen[0].ID, 100)
	require.ErrorIs(t, err, ErrUserMismatch)

	_, err = svc.AllocatePayment(ctx, treasurer, paymentID, chargeID, 0)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.AllocatePayment(ctx, treasurer, paymentID, chargeID, 30000)
	require.NoError(t, err)
	require.Len(t, auditFor(t, st, domain.AuditDuesPaymentAllocated), 1)

	_, err = svc.AllocatePayment(ctx, treasurer, paymentID, chargeID, 1)
	require.ErrorIs(t, err, ErrAllocationExceedsCharge)

	// Remaining 10000 has no open charge to go to.
	allocated, err := svc.AutoAllocate(ctx, treasurer, paymentID)
	require.NoError(t, err)
	require.Zero(t, allocated)
	require.Empty(t, auditFor(t, st, domain.AuditDuesPaymentAutoAllocate))

	_, err = svc.CreateChargeBatch(ctx, treasurer, ChargeBatchParams{AmountCents: 25000, Reason: "Formal"})
	require.NoError(t, err)
	allocated, err = svc.AutoAllocate(ctx, treasurer, paymentID)
	require.NoError(t, err)
	require.Equal(t, int64(10000), allocated)

	_, err = svc.AllocatePayment(ctx, treasurer, paymentID, chargeID, 1)
	require.ErrorIs(t, err, ErrAllocationExceedsPayment)
}

func TestDeletePaymentReopensCharges(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedSemester(t, st)
	svc := &DuesService{Store: st}
	userID := seedUser(t, st, "a@chapter.org", domain.UserActive)

	_, err := svc.CreateChargeBatch(ctx, treasurer, ChargeBatchParams{AmountCents: 10000})
	require.NoError(t, err)
	paymentID, err := svc.RecordPayment(ctx, treasurer, PaymentParams{UserID: userID, AmountCents: 10000})
	require.NoError(t, err)
	_, err = svc.AutoAllocate(ctx, treasurer, paymentID)
	require.NoError(t, err)

	ok, err := svc.DeletePayment(ctx, treasurer, paymentID)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = svc.DeletePayment(ctx, treasurer, paymentID)
	require.NoError(t, err)
	require.False(t, ok)
	require.Len(t, auditFor(t, st, domain.AuditDuesPaymentDeleted), 1)

	b, err := svc.Balance(ctx, treasurer, userID)
	require.NoError(t, err)
	require.Equal(t, int64(10000), b.TotalCents)
	require.Equal(t, int64(10000), b.CurrentCents)

	_, err = svc.AutoAllocate(ctx, treasurer, paymentID)
	require.ErrorIs(t, err, ErrNotFound)

	open, err := st.Dues().OpenCharges(ctx, userID)
	require.NoError(t, err)
	ok, err = svc.DeleteCharge(ctx, treasurer, open[0].ID)
	require.NoError(t, err)
	require.True(t, ok)

	b, err = svc.Balance(ctx, treasurer, userID)
	require.NoError(t, err)
	require.Zero(t, b.TotalCents)
}

func TestRecordPaymentValidation(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &DuesService{Store: st}
	userID := seedUser(t, st, "a@chapter.org", domain.UserActive)

	_, err := svc.RecordPayment(ctx, treasurer, PaymentParams{UserID: userID, AmountCents: -5})
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.RecordPayment(ctx, treasurer, PaymentParams{UserID: userID, AmountCents: 5, Method: "bitcoin"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.RecordPayment(ctx, treasurer, PaymentParams{UserID: "ghost", AmountCents: 5})
	require.ErrorIs(t, err, ErrNotFound)

	id, err := svc.RecordPayment(ctx, treasurer, PaymentParams{UserID: userID, AmountCents: 5})
	require.NoError(t, err)
	p, err := st.Dues().GetPayment(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.MethodOther, p.Method)
	require.Equal(t, treasurer.UserID, p.RecordedBy)
}
