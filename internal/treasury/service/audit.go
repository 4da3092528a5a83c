package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/metrics"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/aussiebroadwan/treasury/internal/treasury/store"
	"github.com/aussiebroadwan/treasury/pkg/idx"
	"github.com/aussiebroadwan/treasury/pkg/slogx"
)

// errNoChange aborts a mutation whose precondition already holds. The
// transaction is rolled back and the caller reports false without error.
var errNoChange = errors.New("no change")

var now = func() time.Time { return time.Now().UTC() }

// auditor pairs every privileged change with exactly one audit entry inside
// the same transaction.
type auditor struct {
	store   store.Store
	metrics *metrics.Metrics
}

// mutate runs fn in a transaction and appends the entry fn returns. When fn
// returns errNoChange the transaction is rolled back and mutate reports
// false, nil.
func (a auditor) mutate(
	ctx context.Context,
	actor rbac.AuthContext,
	fn func(tx store.Tx) (domain.AuditEntry, error),
) (bool, error) {
	var entry domain.AuditEntry
	err := a.store.WithTx(ctx, func(tx store.Tx) error {
		e, err := fn(tx)
		if err != nil {
			return err
		}
		entry, err = record(ctx, tx, actor, e)
		return err
	})
	if errors.Is(err, errNoChange) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	a.committed(ctx, entry)
	return true, nil
}

// committed counts and logs entries whose transaction has committed.
func (a auditor) committed(ctx context.Context, entries ...domain.AuditEntry) {
	l := slogx.FromContext(ctx)
	for _, e := range entries {
		a.metrics.Audited(string(e.Action))
		l.Info("audit entry recorded",
			slog.String("action", string(e.Action)),
			slog.String("actor_id", e.ActorID),
			slog.String("target_type", e.TargetType),
			slog.String("target_id", e.TargetID),
		)
	}
}

// journal collects the entries appended during a multi-entry transaction so
// they can be passed to committed afterwards.
type journal []domain.AuditEntry

func (j *journal) record(ctx context.Context, tx store.Store, actor rbac.AuthContext, e domain.AuditEntry) error {
	e, err := record(ctx, tx, actor, e)
	if err != nil {
		return err
	}
	*j = append(*j, e)
	return nil
}

// record appends an audit entry on tx, filling in id, actor and time.
func record(ctx context.Context, tx store.Store, actor rbac.AuthContext, e domain.AuditEntry) (domain.AuditEntry, error) {
	e.ID = idx.New().String()
	e.ActorID = actor.UserID
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now()
	}
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	if err := tx.Audit().Append(ctx, e); err != nil {
		return e, fmt.Errorf("append audit entry: %w", err)
	}
	return e, nil
}

// deny logs and counts an authorization failure and returns ErrForbidden.
func (a auditor) deny(ctx context.Context, actor rbac.AuthContext, operation string) error {
	a.metrics.Denied(operation)
	slogx.FromContext(ctx).Debug("authorization denied",
		slog.String("actor_id", actor.UserID),
		slog.String("operation", operation),
	)
	return fmt.Errorf("%w: %s", ErrForbidden, operation)
}

// currentSemester resolves an empty semester id to the current semester.
func currentSemester(ctx context.Context, st store.Store, semesterID string) (domain.Semester, error) {
	if semesterID != "" {
		sem, err := st.Semesters().GetSemester(ctx, semesterID)
		return sem, notFound("semester", err)
	}
	sem, err := st.Semesters().GetCurrent(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Semester{}, ErrNoCurrentSemester
	}
	return sem, err
}

type AuditService struct {
	Store   store.Store
	Metrics *metrics.Metrics
}

// List returns audit entries newest first. Limit defaults to 50 and is
// capped at 200.
func (s *AuditService) List(ctx context.Context, actor rbac.AuthContext, f domain.AuditFilter) ([]domain.AuditEntry, error) {
	a := auditor{store: s.Store, metrics: s.Metrics}
	if !actor.HasPermission(rbac.PermManageRoles) {
		return nil, a.deny(ctx, actor, "list_audit")
	}
	if f.Limit < 0 || f.Offset < 0 {
		return nil, invalid("limit and offset must not be negative")
	}
	return s.Store.Audit().List(ctx, f)
}
