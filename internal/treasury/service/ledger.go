package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/metrics"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/aussiebroadwan/treasury/internal/treasury/store"
	"github.com/aussiebroadwan/treasury/pkg/idx"
)

const maxLedgerPage = 200

// LedgerService manages the chapter-wide master ledger. Entries are signed
// and not tied to a semester.
type LedgerService struct {
	Store   store.Store
	Metrics *metrics.Metrics
}

type LedgerParams struct {
	AmountCents int64
	Category    string
	Memo        string
}

func (s *LedgerService) auditor() auditor {
	return auditor{store: s.Store, metrics: s.Metrics}
}

func (s *LedgerService) AddEntry(ctx context.Context, actor rbac.AuthContext, p LedgerParams) (string, error) {
	a := s.auditor()
	if !actor.HasPermission(rbac.PermManageMasterBudget) {
		return "", a.deny(ctx, actor, "add_ledger_entry")
	}
	if p.AmountCents == 0 {
		return "", ErrInvalidAmount
	}

	id := idx.New().String()
	_, err := a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		err := tx.Ledger().CreateEntry(ctx, domain.LedgerEntry{
			ID:          id,
			AmountCents: p.AmountCents,
			Category:    strings.TrimSpace(p.Category),
			Memo:        p.Memo,
			CreatedBy:   actor.UserID,
			CreatedAt:   now(),
		})
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("create ledger entry: %w", err)
		}
		return domain.AuditEntry{
			Action:     domain.AuditLedgerEntryCreated,
			TargetType: "ledger_entry",
			TargetID:   id,
			Details: map[string]any{
				"amount_cents": p.AmountCents,
				"category":     p.Category,
			},
		}, nil
	})
	if err != nil {
		return "", err
	}
	s.Metrics.Recorded("ledger", max(p.AmountCents, -p.AmountCents))
	return id, nil
}

func (s *LedgerService) DeleteEntry(ctx context.Context, actor rbac.AuthContext, id string) (bool, error) {
	a := s.auditor()
	if !actor.HasPermission(rbac.PermManageMasterBudget) {
		return false, a.deny(ctx, actor, "delete_ledger_entry")
	}
	entry, err := s.Store.Ledger().GetEntry(ctx, id)
	if err != nil {
		return false, notFound("ledger entry", err)
	}

	return a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		ok, err := tx.Ledger().SoftDeleteEntry(ctx, id, actor.UserID, now())
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("delete ledger entry: %w", err)
		}
		if !ok {
			return domain.AuditEntry{}, errNoChange
		}
		return domain.AuditEntry{
			Action:     domain.AuditLedgerEntryDeleted,
			TargetType: "ledger_entry",
			TargetID:   id,
			Details:    map[string]any{"amount_cents": entry.AmountCents},
		}, nil
	})
}

// List returns live entries newest first.
func (s *LedgerService) List(ctx context.Context, actor rbac.AuthContext, limit, offset int) ([]domain.LedgerEntry, error) {
	if !actor.HasPermission(rbac.PermManageMasterBudget) {
		return nil, s.auditor().deny(ctx, actor, "list_ledger")
	}
	if limit <= 0 || limit > maxLedgerPage {
		limit = maxLedgerPage
	}
	return s.Store.Ledger().ListEntries(ctx, limit, max(offset, 0))
}

func (s *LedgerService) Balance(ctx context.Context, actor rbac.AuthContext) (int64, error) {
	if !actor.HasPermission(rbac.PermManageMasterBudget) {
		return 0, s.auditor().deny(ctx, actor, "ledger_balance")
	}
	return s.Store.Ledger().Balance(ctx)
}
