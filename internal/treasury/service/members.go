package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/aussiebroadwan/treasury/internal/treasury/metrics"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/aussiebroadwan/treasury/internal/treasury/store"
	"github.com/aussiebroadwan/treasury/pkg/idx"
)

// MemberService keeps the per-semester dues roster and its payment plans.
type MemberService struct {
	Store   store.Store
	Metrics *metrics.Metrics
}

type MemberParams struct {
	UserID       string
	Name         string
	Contact      string
	ContactType  domain.ContactType
	DuesCents    int64
	SemesterID   string // defaults to the current semester
	Plan         domain.PlanKind
	Installments []domain.Installment // custom plans only
}

type MemberPaymentParams struct {
	AmountCents int64
	Method      domain.PaymentMethod
	PaidAt      *time.Time
	Notes       string
}

func (s *MemberService) auditor() auditor {
	return auditor{store: s.Store, metrics: s.Metrics}
}

func (s *MemberService) AddMember(ctx context.Context, actor rbac.AuthContext, p MemberParams) (string, error) {
	a := s.auditor()
	if !actor.HasPermission(rbac.PermManageDues) {
		return "", a.deny(ctx, actor, "add_member")
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return "", invalid("name is required")
	}
	contactType := p.ContactType
	if contactType == "" {
		contactType = domain.ContactPhone
	}
	if contactType != domain.ContactPhone && contactType != domain.ContactEmail {
		return "", invalid("unknown contact type %q", p.ContactType)
	}
	if p.DuesCents < 0 {
		return "", ErrInvalidAmount
	}
	schedule, err := domain.NewSchedule(p.Plan, p.Installments)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := validateInstallments(p.Installments, p.DuesCents, schedule); err != nil {
		return "", err
	}
	if p.UserID != "" {
		if _, err := s.Store.Users().GetUserByID(ctx, p.UserID); err != nil {
			return "", notFound("user", err)
		}
	}
	sem, err := currentSemester(ctx, s.Store, p.SemesterID)
	if err != nil {
		return "", err
	}

	id := idx.New().String()
	_, err = a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		err := tx.Members().CreateMember(ctx, domain.Member{
			ID:          id,
			UserID:      p.UserID,
			Name:        name,
			Contact:     strings.TrimSpace(p.Contact),
			ContactType: contactType,
			DuesCents:   p.DuesCents,
			SemesterID:  sem.ID,
			Schedule:    schedule,
			CreatedAt:   now(),
		})
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("create member: %w", err)
		}
		return domain.AuditEntry{
			Action:     domain.AuditMemberAdded,
			TargetType: "member",
			TargetID:   id,
			Details: map[string]any{
				"semester_id":  sem.ID,
				"dues_cents":   p.DuesCents,
				"payment_plan": string(schedule.Kind()),
			},
		}, nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// validateInstallments checks an explicit custom plan adds up to the dues.
func validateInstallments(items []domain.Installment, dues int64, schedule domain.PaymentSchedule) error {
	if schedule.Kind() != domain.PlanCustom || len(items) == 0 {
		return nil
	}
	var sum int64
	for _, it := range items {
		if it.AmountCents <= 0 {
			return ErrInvalidAmount
		}
		if it.DueDate.IsZero() {
			return invalid("installment due date is required")
		}
		sum += it.AmountCents
	}
	if sum != dues {
		return invalid("installments total %d cents, dues are %d", sum, dues)
	}
	return nil
}

func (s *MemberService) RecordPayment(ctx context.Context, actor rbac.AuthContext, memberID string, p MemberPaymentParams) (string, error) {
	a := s.auditor()
	if !actor.HasPermission(rbac.PermManageDues) {
		return "", a.deny(ctx, actor, "record_member_payment")
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
	if _, err := s.Store.Members().GetMember(ctx, memberID); err != nil {
		return "", notFound("member", err)
	}
	paidAt := now()
	if p.PaidAt != nil {
		paidAt = p.PaidAt.UTC()
	}

	id := idx.New().String()
	_, err := a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		err := tx.Members().CreatePayment(ctx, domain.MemberPayment{
			ID:          id,
			MemberID:    memberID,
			AmountCents: p.AmountCents,
			Method:      method,
			PaidAt:      paidAt,
			Notes:       p.Notes,
			CreatedAt:   now(),
		})
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("create member payment: %w", err)
		}
		return domain.AuditEntry{
			Action:     domain.AuditMemberPaymentRecorded,
			TargetType: "member",
			TargetID:   memberID,
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
	s.Metrics.Recorded("member_payment", p.AmountCents)
	return id, nil
}

// Get returns a member's statement: payments, balance and installment
// status. A member linked to the caller's account may read it.
func (s *MemberService) Get(ctx context.Context, actor rbac.AuthContext, memberID string) (domain.MemberStatement, error) {
	m, err := s.Store.Members().GetMember(ctx, memberID)
	if err != nil {
		return domain.MemberStatement{}, notFound("member", err)
	}
	if !actor.HasPermission(rbac.PermManageDues) && (m.UserID == "" || m.UserID != actor.UserID) {
		return domain.MemberStatement{}, s.auditor().deny(ctx, actor, "get_member")
	}
	payments, err := s.Store.Members().ListPayments(ctx, memberID)
	if err != nil {
		return domain.MemberStatement{}, err
	}
	start, err := s.scheduleStart(ctx, m)
	if err != nil {
		return domain.MemberStatement{}, err
	}

	var paid int64
	for _, p := range payments {
		paid += p.AmountCents
	}
	return statement(m, payments, paid, start), nil
}

func (s *MemberService) List(ctx context.Context, actor rbac.AuthContext, semesterID string) ([]domain.Member, error) {
	if !actor.HasPermission(rbac.PermManageDues) {
		return nil, s.auditor().deny(ctx, actor, "list_members")
	}
	sem, err := currentSemester(ctx, s.Store, semesterID)
	if err != nil {
		return nil, err
	}
	return s.Store.Members().ListMembers(ctx, sem.ID)
}

// DuesSummary totals projected and collected roster dues for a semester.
func (s *MemberService) DuesSummary(ctx context.Context, actor rbac.AuthContext, semesterID string) (domain.MemberDuesSummary, error) {
	if !actor.HasPermission(rbac.PermManageDues) {
		return domain.MemberDuesSummary{}, s.auditor().deny(ctx, actor, "member_dues_summary")
	}
	sem, err := currentSemester(ctx, s.Store, semesterID)
	if err != nil {
		return domain.MemberDuesSummary{}, err
	}
	members, err := s.Store.Members().ListMembers(ctx, sem.ID)
	if err != nil {
		return domain.MemberDuesSummary{}, err
	}
	paid, err := s.Store.Members().PaidBySemester(ctx, sem.ID)
	if err != nil {
		return domain.MemberDuesSummary{}, err
	}

	sum := domain.MemberDuesSummary{SemesterID: sem.ID, MemberCount: len(members)}
	for _, m := range members {
		p := paid[m.ID]
		sum.ProjectedCents += m.DuesCents
		sum.CollectedCents += p
		if owed := m.DuesCents - p; owed > 0 {
			sum.OutstandingCents += owed
		} else {
			sum.PaidUpCount++
		}
	}
	if sum.ProjectedCents > 0 {
		sum.CollectionRate = float64(sum.CollectedCents) / float64(sum.ProjectedCents)
	}
	return sum, nil
}

// scheduleStart anchors fixed plans on the semester start, falling back to
// the member's creation date.
func (s *MemberService) scheduleStart(ctx context.Context, m domain.Member) (time.Time, error) {
	sem, err := s.Store.Semesters().GetSemester(ctx, m.SemesterID)
	if errors.Is(err, store.ErrNotFound) {
		return m.CreatedAt, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	if sem.StartsOn != nil {
		return *sem.StartsOn, nil
	}
	return m.CreatedAt, nil
}

func statement(m domain.Member, payments []domain.MemberPayment, paid int64, start time.Time) domain.MemberStatement {
	schedule := m.Schedule
	if schedule == nil {
		schedule = domain.FixedSchedule{Plan: domain.PlanSemester}
	}
	items := schedule.Installments(m.DuesCents, start)
	sort.SliceStable(items, func(i, j int) bool { return items[i].DueDate.Before(items[j].DueDate) })

	return domain.MemberStatement{
		Member:       m,
		Payments:     payments,
		PaidCents:    paid,
		BalanceCents: m.DuesCents - paid,
		Schedule:     domain.ApplyPayments(items, paid),
	}
}
