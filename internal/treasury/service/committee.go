package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/metrics"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/aussiebroadwan/treasury/internal/treasury/store"
	"github.com/aussiebroadwan/treasury/pkg/idx"
)

type CommitteeService struct {
	Store   store.Store
	Metrics *metrics.Metrics
}

type TransactionParams struct {
	CommitteeID string
	SemesterID  string // defaults to the current semester
	AmountCents int64  // sign is ignored; Direction decides it
	Direction   domain.Direction
	Vendor      string
	Category    string
	Memo        string
	EventID     string
}

func (s *CommitteeService) auditor() auditor {
	return auditor{store: s.Store, metrics: s.Metrics}
}

// SetAllocation records a new budget allocation for a committee. The most
// recent allocation is the one that counts.
func (s *CommitteeService) SetAllocation(ctx context.Context, actor rbac.AuthContext, semesterID, committeeID string, cents int64, notes string) (string, error) {
	a := s.auditor()
	if !actor.HasPermission(rbac.PermManageCommitteeAllocations) {
		return "", a.deny(ctx, actor, "set_allocation")
	}
	if cents < 0 {
		return "", ErrInvalidAmount
	}
	if _, err := s.Store.Committees().GetCommittee(ctx, committeeID); err != nil {
		return "", notFound("committee", err)
	}
	sem, err := currentSemester(ctx, s.Store, semesterID)
	if err != nil {
		return "", err
	}

	id := idx.New().String()
	_, err = a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		err := tx.Committees().CreateAllocation(ctx, domain.CommitteeBudgetAllocation{
			ID:             id,
			SemesterID:     sem.ID,
			CommitteeID:    committeeID,
			AllocatedCents: cents,
			AllocatedBy:    actor.UserID,
			AllocatedAt:    now(),
			Notes:          notes,
		})
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("create allocation: %w", err)
		}
		return domain.AuditEntry{
			Action:     domain.AuditAllocationCreated,
			TargetType: "committee",
			TargetID:   committeeID,
			Details: map[string]any{
				"allocation_id":   id,
				"semester_id":     sem.ID,
				"allocated_cents": cents,
			},
		}, nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// CreateTransaction records committee spending or income. The stored amount
// is negative for spend and positive for credit.
func (s *CommitteeService) CreateTransaction(ctx context.Context, actor rbac.AuthContext, p TransactionParams) (string, error) {
	a := s.auditor()
	if !actor.CanManageCommittee(p.CommitteeID) {
		return "", a.deny(ctx, actor, "create_transaction")
	}
	amount := p.AmountCents
	if amount < 0 {
		amount = -amount
	}
	if amount == 0 {
		return "", ErrInvalidAmount
	}
	switch p.Direction {
	case "", domain.DirectionSpend:
		amount = -amount
	case domain.DirectionCredit:
	default:
		return "", invalid("unknown direction %q", p.Direction)
	}
	if _, err := s.Store.Committees().GetCommittee(ctx, p.CommitteeID); err != nil {
		return "", notFound("committee", err)
	}
	sem, err := currentSemester(ctx, s.Store, p.SemesterID)
	if err != nil {
		return "", err
	}
	if p.EventID != "" {
		if _, err := s.Store.Events().GetEvent(ctx, p.EventID); err != nil {
			return "", notFound("event", err)
		}
	}

	id := idx.New().String()
	_, err = a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		err := tx.Committees().CreateTransaction(ctx, domain.CommitteeTransaction{
			ID:          id,
			SemesterID:  sem.ID,
			CommitteeID: p.CommitteeID,
			AmountCents: amount,
			Vendor:      strings.TrimSpace(p.Vendor),
			Category:    strings.TrimSpace(p.Category),
			Memo:        p.Memo,
			EventID:     p.EventID,
			CreatedBy:   actor.UserID,
			CreatedAt:   now(),
		})
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("create transaction: %w", err)
		}
		return domain.AuditEntry{
			Action:     domain.AuditTxCreated,
			TargetType: "committee_transaction",
			TargetID:   id,
			Details: map[string]any{
				"committee_id": p.CommitteeID,
				"semester_id":  sem.ID,
				"amount_cents": amount,
			},
		}, nil
	})
	if err != nil {
		return "", err
	}
	if amount < 0 {
		s.Metrics.Recorded("spend", -amount)
	} else {
		s.Metrics.Recorded("credit", amount)
	}
	return id, nil
}

// DeleteTransaction soft-deletes a committee transaction. Chairs may only
// delete their own entries; executives may delete any.
func (s *CommitteeService) DeleteTransaction(ctx context.Context, actor rbac.AuthContext, id string) (bool, error) {
	a := s.auditor()
	t, err := s.Store.Committees().GetTransaction(ctx, id)
	if err != nil {
		return false, notFound("transaction", err)
	}
	if !actor.CanManageCommittee(t.CommitteeID) || !(actor.IsExecutive() || t.CreatedBy == actor.UserID) {
		return false, a.deny(ctx, actor, "delete_transaction")
	}

	return a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		ok, err := tx.Committees().SoftDeleteTransaction(ctx, id, actor.UserID, now())
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("delete transaction: %w", err)
		}
		if !ok {
			return domain.AuditEntry{}, errNoChange
		}
		return domain.AuditEntry{
			Action:     domain.AuditTxDeleted,
			TargetType: "committee_transaction",
			TargetID:   id,
			Details: map[string]any{
				"committee_id": t.CommitteeID,
				"semester_id":  t.SemesterID,
				"amount_cents": t.AmountCents,
			},
		}, nil
	})
}

// Remaining computes a committee's budget position: the latest allocation
// plus every live signed transaction.
func (s *CommitteeService) Remaining(ctx context.Context, semesterID, committeeID string) (domain.CommitteeBudget, error) {
	b := domain.CommitteeBudget{SemesterID: semesterID, CommitteeID: committeeID}

	alloc, err := s.Store.Committees().LatestAllocation(ctx, semesterID, committeeID)
	switch {
	case err == nil:
		b.AllocatedCents = alloc.AllocatedCents
	case !errors.Is(err, store.ErrNotFound):
		return b, err
	}

	b.SpentCents, b.CreditCents, err = s.Store.Committees().TransactionTotals(ctx, semesterID, committeeID)
	if err != nil {
		return b, err
	}
	b.RemainingCents = b.AllocatedCents - b.SpentCents + b.CreditCents
	if b.AllocatedCents > 0 {
		b.PercentUsed = float64(b.SpentCents) * 100 / float64(b.AllocatedCents)
	}
	return b, nil
}

// Budget is Remaining behind an access check. Committee managers and anyone
// who allocates budgets may read it.
func (s *CommitteeService) Budget(ctx context.Context, actor rbac.AuthContext, semesterID, committeeID string) (domain.CommitteeBudget, error) {
	if !s.canView(actor, committeeID) {
		return domain.CommitteeBudget{}, s.auditor().deny(ctx, actor, "committee_budget")
	}
	if _, err := s.Store.Committees().GetCommittee(ctx, committeeID); err != nil {
		return domain.CommitteeBudget{}, notFound("committee", err)
	}
	sem, err := currentSemester(ctx, s.Store, semesterID)
	if err != nil {
		return domain.CommitteeBudget{}, err
	}
	return s.Remaining(ctx, sem.ID, committeeID)
}

func (s *CommitteeService) ListTransactions(ctx context.Context, actor rbac.AuthContext, semesterID, committeeID string) ([]domain.CommitteeTransaction, error) {
	if !s.canView(actor, committeeID) {
		return nil, s.auditor().deny(ctx, actor, "list_transactions")
	}
	sem, err := currentSemester(ctx, s.Store, semesterID)
	if err != nil {
		return nil, err
	}
	return s.Store.Committees().ListTransactions(ctx, sem.ID, committeeID)
}

func (s *CommitteeService) ListCommittees(ctx context.Context) ([]domain.Committee, error) {
	return s.Store.Committees().ListCommittees(ctx)
}

// BudgetSummary reports every active committee's budget for a semester.
func (s *CommitteeService) BudgetSummary(ctx context.Context, actor rbac.AuthContext, semesterID string) ([]domain.CommitteeBudget, error) {
	if !actor.HasPermission(rbac.PermManageCommitteeAllocations) {
		return nil, s.auditor().deny(ctx, actor, "budget_summary")
	}
	sem, err := currentSemester(ctx, s.Store, semesterID)
	if err != nil {
		return nil, err
	}
	committees, err := s.Store.Committees().ListCommittees(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CommitteeBudget, 0, len(committees))
	for _, c := range committees {
		if !c.IsActive {
			continue
		}
		b, err := s.Remaining(ctx, sem.ID, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *CommitteeService) canView(actor rbac.AuthContext, committeeID string) bool {
	return actor.CanManageCommittee(committeeID) || actor.HasPermission(rbac.PermManageCommitteeAllocations)
}
