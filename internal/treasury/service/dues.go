package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/metrics"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/aussiebroadwan/treasury/internal/treasury/store"
	"github.com/aussiebroadwan/treasury/pkg/idx"
	"github.com/aussiebroadwan/treasury/pkg/slogx"
)

const defaultChargeReason = "Semester dues"

type DuesService struct {
	Store   store.Store
	Metrics *metrics.Metrics
}

type ChargeBatchParams struct {
	SemesterID  string // defaults to the current semester
	AmountCents int64
	Reason      string
	DueDate     *time.Time
	Notes       string
}

type PaymentParams struct {
	UserID      string
	AmountCents int64
	Method      domain.PaymentMethod
	ExternalRef string
	Notes       string
	PaidAt      *time.Time
}

func (s *DuesService) auditor() auditor {
	return auditor{store: s.Store, metrics: s.Metrics}
}

// CreateChargeBatch issues one charge to every active user and records a
// single audit entry for the batch. It returns the number of charges created.
func (s *DuesService) CreateChargeBatch(ctx context.Context, actor rbac.AuthContext, p ChargeBatchParams) (int, error) {
	a := s.auditor()
	if !actor.HasPermission(rbac.PermManageDues) {
		return 0, a.deny(ctx, actor, "create_charge_batch")
	}
	if p.AmountCents <= 0 {
		return 0, ErrInvalidAmount
	}
	reason := strings.TrimSpace(p.Reason)
	if reason == "" {
		reason = defaultChargeReason
	}
	sem, err := currentSemester(ctx, s.Store, p.SemesterID)
	if err != nil {
		return 0, err
	}

	var count int
	_, err = a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		userIDs, err := tx.Users().ListActiveUserIDs(ctx)
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("list active users: %w", err)
		}
		issuedAt := now()
		for _, userID := range userIDs {
			err := tx.Dues().CreateCharge(ctx, domain.DuesCharge{
				ID:          idx.New().String(),
				SemesterID:  sem.ID,
				UserID:      userID,
				ChargeCents: p.AmountCents,
				Reason:      reason,
				IssuedAt:    issuedAt,
				IssuedBy:    actor.UserID,
				DueDate:     p.DueDate,
				Notes:       p.Notes,
			})
			if err != nil {
				return domain.AuditEntry{}, fmt.Errorf("create charge for %s: %w", userID, err)
			}
		}
		count = len(userIDs)
		return domain.AuditEntry{
			Action:     domain.AuditDuesChargeBatchCreated,
			TargetType: "semester",
			TargetID:   sem.ID,
			Details: map[string]any{
				"count":        count,
				"semester_id":  sem.ID,
				"charge_cents": p.AmountCents,
				"reason":       reason,
			},
		}, nil
	})
	if err != nil {
		return 0, err
	}
	s.Metrics.Recorded("charge", p.AmountCents*int64(count))
	return count, nil
}

// RecordPayment stores a payment without allocating it. Allocation is a
// separate step and an unallocated payment is a valid resting state.
func (s *DuesService) RecordPayment(ctx context.Context, actor rbac.AuthContext, p PaymentParams) (string, error) {
	a := s.auditor()
	if !actor.HasPermission(rbac.PermManageDues) {
		return "", a.deny(ctx, actor, "record_payment")
	}
	if p.AmountCents <= 0 {
		return "", ErrInvalidAmount
	}
	method := p.Method
	if method == "" {
		method = domain.MethodOther
	}
	if !method.Valid() {
		return "", invalid("unknown payment method %q", method)
	}
	if _, err := s.Store.Users().GetUserByID(ctx, p.UserID); err != nil {
		return "", notFound("user", err)
	}
	paidAt := now()
	if p.PaidAt != nil {
		paidAt = p.PaidAt.UTC()
	}

	id := idx.New().String()
	_, err := a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		err := tx.Dues().CreatePayment(ctx, domain.DuesPayment{
			ID:          id,
			UserID:      p.UserID,
			AmountCents: p.AmountCents,
			PaidAt:      paidAt,
			Method:      method,
			ExternalRef: p.ExternalRef,
			RecordedBy:  actor.UserID,
			Notes:       p.Notes,
		})
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("create payment: %w", err)
		}
		return domain.AuditEntry{
			Action:     domain.AuditDuesPaymentRecorded,
			TargetType: "user",
			TargetID:   p.UserID,
			Details: map[string]any{
				"payment_id":   id,
				"amount_cents": p.AmountCents,
				"method":       string(method),
			},
		}, nil
	})
	if err != nil {
		return "", err
	}
	s.Metrics.Recorded("payment", p.AmountCents)
	return id, nil
}

// AllocatePayment applies cents of a payment to a charge of the same user.
func (s *DuesService) AllocatePayment(ctx context.Context, actor rbac.AuthContext, paymentID, chargeID string, cents int64) (string, error) {
	a := s.auditor()
	if !actor.HasPermission(rbac.PermManageDues) {
		return "", a.deny(ctx, actor, "allocate_payment")
	}
	if cents <= 0 {
		return "", ErrInvalidAmount
	}

	id := idx.New().String()
	_, err := a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		payment, err := livePayment(ctx, tx, paymentID)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		charge, err := tx.Dues().GetCharge(ctx, chargeID)
		if err != nil || charge.IsDeleted {
			return domain.AuditEntry{}, notFound("charge", errOr(err, store.ErrNotFound))
		}
		if payment.UserID != charge.UserID {
			return domain.AuditEntry{}, ErrUserMismatch
		}

		fromPayment, err := tx.Dues().AllocatedFromPayment(ctx, paymentID)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		if fromPayment+cents > payment.AmountCents {
			return domain.AuditEntry{}, ErrAllocationExceedsPayment
		}
		toCharge, err := tx.Dues().AllocatedToCharge(ctx, chargeID)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		if toCharge+cents > charge.ChargeCents {
			return domain.AuditEntry{}, ErrAllocationExceedsCharge
		}

		err = tx.Dues().CreateAllocation(ctx, domain.DuesPaymentAllocation{
			ID:             id,
			PaymentID:      paymentID,
			ChargeID:       chargeID,
			AllocatedCents: cents,
			AllocatedBy:    actor.UserID,
			AllocatedAt:    now(),
		})
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("create allocation: %w", err)
		}
		return domain.AuditEntry{
			Action:     domain.AuditDuesPaymentAllocated,
			TargetType: "dues_payment",
			TargetID:   paymentID,
			Details: map[string]any{
				"allocation_id":   id,
				"charge_id":       chargeID,
				"allocated_cents": cents,
			},
		}, nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// AutoAllocate spreads a payment's unallocated remainder over the user's
// open charges, oldest first. It returns the cents allocated; zero means
// there was nothing to do and no audit entry was written.
func (s *DuesService) AutoAllocate(ctx context.Context, actor rbac.AuthContext, paymentID string) (int64, error) {
	a := s.auditor()
	if !actor.HasPermission(rbac.PermManageDues) {
		return 0, a.deny(ctx, actor, "auto_allocate")
	}

	var total int64
	_, err := a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		payment, err := livePayment(ctx, tx, paymentID)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		used, err := tx.Dues().AllocatedFromPayment(ctx, paymentID)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		left := payment.AmountCents - used
		if left <= 0 {
			return domain.AuditEntry{}, errNoChange
		}

		open, err := tx.Dues().OpenCharges(ctx, payment.UserID)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		var charges []string
		at := now()
		for _, c := range open {
			if left == 0 {
				break
			}
			cents := min(left, c.RemainingCents)
			if cents <= 0 {
				continue
			}
			err := tx.Dues().CreateAllocation(ctx, domain.DuesPaymentAllocation{
				ID:             idx.New().String(),
				PaymentID:      paymentID,
				ChargeID:       c.ID,
				AllocatedCents: cents,
				AllocatedBy:    actor.UserID,
				AllocatedAt:    at,
			})
			if err != nil {
				return domain.AuditEntry{}, fmt.Errorf("create allocation: %w", err)
			}
			left -= cents
			total += cents
			charges = append(charges, c.ID)
		}
		if total == 0 {
			return domain.AuditEntry{}, errNoChange
		}
		return domain.AuditEntry{
			Action:     domain.AuditDuesPaymentAutoAllocate,
			TargetType: "dues_payment",
			TargetID:   paymentID,
			Details: map[string]any{
				"allocated_cents": total,
				"charge_ids":      charges,
			},
		}, nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// DeleteCharge soft-deletes a charge. It reports false when the charge was
// already deleted.
func (s *DuesService) DeleteCharge(ctx context.Context, actor rbac.AuthContext, chargeID string) (bool, error) {
	a := s.auditor()
	if !actor.HasPermission(rbac.PermManageDues) {
		return false, a.deny(ctx, actor, "delete_charge")
	}
	charge, err := s.Store.Dues().GetCharge(ctx, chargeID)
	if err != nil {
		return false, notFound("charge", err)
	}

	return a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		ok, err := tx.Dues().SoftDeleteCharge(ctx, chargeID, actor.UserID, now())
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("delete charge: %w", err)
		}
		if !ok {
			return domain.AuditEntry{}, errNoChange
		}
		return domain.AuditEntry{
			Action:     domain.AuditDuesChargeDeleted,
			TargetType: "dues_charge",
			TargetID:   chargeID,
			Details: map[string]any{
				"user_id":      charge.UserID,
				"semester_id":  charge.SemesterID,
				"charge_cents": charge.ChargeCents,
			},
		}, nil
	})
}

// DeletePayment soft-deletes a payment. Its allocations stop counting
// against charges.
func (s *DuesService) DeletePayment(ctx context.Context, actor rbac.AuthContext, paymentID string) (bool, error) {
	a := s.auditor()
	if !actor.HasPermission(rbac.PermManageDues) {
		return false, a.deny(ctx, actor, "delete_payment")
	}
	payment, err := s.Store.Dues().GetPayment(ctx, paymentID)
	if err != nil {
		return false, notFound("payment", err)
	}

	return a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		ok, err := tx.Dues().SoftDeletePayment(ctx, paymentID, actor.UserID, now())
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("delete payment: %w", err)
		}
		if !ok {
			return domain.AuditEntry{}, errNoChange
		}
		return domain.AuditEntry{
			Action:     domain.AuditDuesPaymentDeleted,
			TargetType: "dues_payment",
			TargetID:   paymentID,
			Details: map[string]any{
				"user_id":      payment.UserID,
				"amount_cents": payment.AmountCents,
			},
		}, nil
	})
}

// Balance reports what userID owes. Members may read their own balance;
// anyone else needs manage_dues.
func (s *DuesService) Balance(ctx context.Context, actor rbac.AuthContext, userID string) (domain.DuesBalance, error) {
	if actor.UserID != userID && !actor.HasPermission(rbac.PermManageDues) {
		return domain.DuesBalance{}, s.auditor().deny(ctx, actor, "dues_balance")
	}
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		return domain.DuesBalance{}, notFound("user", err)
	}

	dues := s.Store.Dues()
	charged, err := dues.SumCharges(ctx, userID)
	if err != nil {
		return domain.DuesBalance{}, err
	}
	paid, err := dues.SumPayments(ctx, userID)
	if err != nil {
		return domain.DuesBalance{}, err
	}
	unallocated, err := dues.UnallocatedForUser(ctx, userID)
	if err != nil {
		return domain.DuesBalance{}, err
	}
	open, err := dues.OpenCharges(ctx, userID)
	if err != nil {
		return domain.DuesBalance{}, err
	}

	var currentID string
	switch cur, err := s.Store.Semesters().GetCurrent(ctx); {
	case err == nil:
		currentID = cur.ID
	case !errors.Is(err, store.ErrNotFound):
		return domain.DuesBalance{}, err
	}

	b := domain.DuesBalance{
		UserID:           userID,
		ChargedCents:     charged,
		PaidCents:        paid,
		TotalCents:       charged - paid,
		UnallocatedCents: unallocated,
	}
	for _, c := range open {
		if c.SemesterID == currentID {
			b.CurrentCents += c.RemainingCents
		} else {
			b.PriorCents += c.RemainingCents
		}
	}
	slogx.FromContext(ctx).Debug("dues balance computed",
		slog.String("user_id", userID),
		slog.Int64("total_cents", b.TotalCents),
	)
	return b, nil
}

// SemesterSummary reports collection progress for a semester's charges.
func (s *DuesService) SemesterSummary(ctx context.Context, actor rbac.AuthContext, semesterID string) (domain.DuesSemesterSummary, error) {
	if !actor.HasPermission(rbac.PermManageDues) {
		return domain.DuesSemesterSummary{}, s.auditor().deny(ctx, actor, "dues_summary")
	}
	sem, err := currentSemester(ctx, s.Store, semesterID)
	if err != nil {
		return domain.DuesSemesterSummary{}, err
	}
	return s.Store.Dues().SemesterSummary(ctx, sem.ID)
}

// Payments lists a user's live payments, oldest first.
func (s *DuesService) Payments(ctx context.Context, actor rbac.AuthContext, userID string) ([]domain.DuesPayment, error) {
	if actor.UserID != userID && !actor.HasPermission(rbac.PermManageDues) {
		return nil, s.auditor().deny(ctx, actor, "list_payments")
	}
	return s.Store.Dues().ListPayments(ctx, userID)
}

func livePayment(ctx context.Context, tx store.Store, paymentID string) (domain.DuesPayment, error) {
	p, err := tx.Dues().GetPayment(ctx, paymentID)
	if err != nil {
		return p, notFound("payment", err)
	}
	if p.IsDeleted {
		return p, notFound("payment", store.ErrNotFound)
	}
	return p, nil
}

func errOr(err, fallback error) error {
	if err != nil {
		return err
	}
	return fallback
}
