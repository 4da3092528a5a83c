package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/aussiebroadwan/treasury/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestRollover(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedSemester(t, st)
	svc := &SemesterService{Store: st}
	events := &EventService{Store: st}

	_, err := events.Create(ctx, treasurer, EventParams{Title: "Fall Formal"})
	require.NoError(t, err)
	before := auditCount(t, st)

	spring := NewSemester{Season: domain.SeasonSpring, Year: 2025}

	t.Run("wrong confirmation changes nothing", func(t *testing.T) {
		ok, err := svc.Rollover(ctx, vp, spring, "WRONG")
		require.False(t, ok)
		require.ErrorIs(t, err, ErrConfirmationMismatch)
		require.ErrorIs(t, err, ErrValidation)

		cur, err := svc.Current(ctx)
		require.NoError(t, err)
		require.Equal(t, "fall_2024", cur.ID)
		require.Equal(t, before, auditCount(t, st))
	})

	t.Run("only vp or president", func(t *testing.T) {
		for _, actor := range []rbac.AuthContext{treasurer, brother} {
			ok, err := svc.Rollover(ctx, actor, spring, RolloverConfirmation)
			require.False(t, ok)
			require.ErrorIs(t, err, ErrForbidden)
		}
	})

	t.Run("confirmed rollover", func(t *testing.T) {
		ok, err := svc.Rollover(ctx, vp, spring, RolloverConfirmation)
		require.NoError(t, err)
		require.True(t, ok)

		cur, err := svc.Current(ctx)
		require.NoError(t, err)
		require.Equal(t, "spring_2025", cur.ID)
		require.Equal(t, "Spring 2025", cur.Name)
		require.True(t, cur.IsCurrent)

		old, err := svc.Get(ctx, "fall_2024")
		require.NoError(t, err)
		require.False(t, old.IsCurrent)
		require.True(t, old.Archived)

		archived, err := st.Events().ListEvents(ctx, "fall_2024", true)
		require.NoError(t, err)
		require.Len(t, archived, 1)
		require.True(t, archived[0].IsArchived)

		entries := auditFor(t, st, domain.AuditSemesterRollover)
		require.Len(t, entries, 2)
		require.Equal(t, "fall_2024", entries[0].Details["from"])
		require.Equal(t, "spring_2025", entries[0].Details["to"])
		require.EqualValues(t, 1, entries[0].Details["events_archived"])
	})

	t.Run("duplicate semester", func(t *testing.T) {
		ok, err := svc.Rollover(ctx, president, spring, RolloverConfirmation)
		require.False(t, ok)
		require.ErrorIs(t, err, ErrSemesterExists)

		cur, err := svc.Current(ctx)
		require.NoError(t, err)
		require.Equal(t, "spring_2025", cur.ID)
	})

	t.Run("bad season", func(t *testing.T) {
		_, err := svc.Rollover(ctx, president, NewSemester{Season: "monsoon", Year: 2025}, RolloverConfirmation)
		require.ErrorIs(t, err, ErrValidation)
	})

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestCurrentWithoutSemester(t *testing.T) {
	svc := &SemesterService{Store: newStore(t)}
	_, err := svc.Current(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRolloverLogsOnlyAfterCommit(t *testing.T) {
	var buf bytes.Buffer
	ctx := slogx.WithContext(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))
	st := newStore(t)
	seedSemester(t, st)
	svc := &SemesterService{Store: st}

	_, err := svc.Rollover(ctx, president, NewSemester{Season: domain.SeasonFall, Year: 2024}, RolloverConfirmation)
	require.ErrorIs(t, err, ErrSemesterExists)
	require.NotContains(t, buf.String(), "semester rolled over")

	ok, err := svc.Rollover(ctx, president, NewSemester{Season: domain.SeasonSpring, Year: 2025}, RolloverConfirmation)
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, buf.String(), "semester rolled over")
	require.Contains(t, buf.String(), "from=fall_2024")
}
