package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/stretchr/testify/require"
)

func TestEvents(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &EventService{Store: st}

	_, err := svc.Create(ctx, socialChair, EventParams{Title: "Mixer", CommitteeID: "social"})
	require.ErrorIs(t, err, ErrNoCurrentSemester)

	seedSemester(t, st)

	_, err = svc.Create(ctx, brother, EventParams{Title: "Chapter Dinner"})
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Create(ctx, brotherhoodChair, EventParams{Title: "Mixer", CommitteeID: "social"})
	require.ErrorIs(t, err, ErrForbidden)

	starts := time.Date(2024, time.October, 4, 20, 0, 0, 0, time.UTC)
	ends := starts.Add(-time.Hour)
	_, err = svc.Create(ctx, socialChair, EventParams{Title: "Mixer", CommitteeID: "social", StartsAt: &starts, EndsAt: &ends})
	require.ErrorIs(t, err, ErrValidation)

	ends = starts.Add(3 * time.Hour)
	id, err := svc.Create(ctx, socialChair, EventParams{
		Title: "Mixer", CommitteeID: "social", StartsAt: &starts, EndsAt: &ends, EstimatedCostCents: 25000,
	})
	require.NoError(t, err)

	list, err := svc.List(ctx, brother, "", false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, domain.EventPlanned, list[0].Status)
	require.Equal(t, "fall_2024", list[0].SemesterID)

	t.Run("calendar link lifecycle", func(t *testing.T) {
		require.ErrorIs(t, svc.LinkCalendar(ctx, brotherhoodChair, id, "chapter", "ext-1"), ErrForbidden)
		require.NoError(t, svc.LinkCalendar(ctx, socialChair, id, "chapter", "ext-1"))

		pending, err := svc.PendingLinks(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)

		require.NoError(t, svc.MarkSyncFailed(ctx, id, errors.New("calendar api down")))
		link, err := st.Events().GetCalendarLink(ctx, id)
		require.NoError(t, err)
		require.Equal(t, domain.SyncFailed, link.SyncStatus)
		require.Equal(t, "calendar api down", link.LastError)
		require.Nil(t, link.LastSyncedAt)

		require.NoError(t, svc.MarkSynced(ctx, id))
		pending, err = svc.PendingLinks(ctx)
		require.NoError(t, err)
		require.Empty(t, pending)

		require.ErrorIs(t, svc.MarkSynced(ctx, "missing"), ErrNotFound)
	})

	_, err = svc.Delete(ctx, brotherhoodChair, id)
	require.ErrorIs(t, err, ErrForbidden)
	ok, err := svc.Delete(ctx, socialChair, id)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = svc.Delete(ctx, treasurer, id)
	require.NoError(t, err)
	require.False(t, ok)

	list, err = svc.List(ctx, brother, "", true)
	require.NoError(t, err)
	require.Empty(t, list)

	require.Len(t, auditFor(t, st, domain.AuditEventCreated), 1)
	require.Len(t, auditFor(t, st, domain.AuditEventDeleted), 1)
}
