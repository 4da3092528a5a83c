package domain

import (
	"errors"
	"fmt"
	"time"
)

type ContactType string

const (
	ContactPhone ContactType = "phone"
	ContactEmail ContactType = "email"
)

// Member is a dues-paying roster entry for one semester. It may exist before
// the person has a login, so UserID is optional.
type Member struct {
	ID          string
	UserID      string
	Name        string
	Contact     string
	ContactType ContactType
	DuesCents   int64
	SemesterID  string
	Schedule    PaymentSchedule
	CreatedAt   time.Time
}

type MemberPayment struct {
	ID          string
	MemberID    string
	AmountCents int64
	Method      PaymentMethod
	PaidAt      time.Time
	Notes       string
	CreatedAt   time.Time
}

type PlanKind string

const (
	PlanSemester  PlanKind = "semester"
	PlanBimonthly PlanKind = "bimonthly"
	PlanMonthly   PlanKind = "monthly"
	PlanCustom    PlanKind = "custom"
)

var ErrUnknownPlan = errors.New("domain: unknown payment plan")

// Installment is one due amount on a payment schedule.
type Installment struct {
	DueDate     time.Time `json:"due_date"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description,omitempty"`
}

// PaymentSchedule describes how a member's dues are split into installments.
// It is implemented by FixedSchedule and CustomSchedule only.
type PaymentSchedule interface {
	Kind() PlanKind
	// Installments lays the schedule out for the given dues starting at start.
	Installments(duesCents int64, start time.Time) []Installment
	isPaymentSchedule()
}

// FixedSchedule splits dues evenly over a plan-defined number of installments.
type FixedSchedule struct {
	Plan PlanKind
}

// CustomSchedule is an explicit list of installments agreed with the member.
type CustomSchedule struct {
	Items []Installment
}

func (FixedSchedule) isPaymentSchedule()  {}
func (CustomSchedule) isPaymentSchedule() {}

func (f FixedSchedule) Kind() PlanKind { return f.Plan }
func (CustomSchedule) Kind() PlanKind  { return PlanCustom }

// NewSchedule builds the schedule for a plan kind. Custom plans take their
// installments from items; other kinds ignore them.
func NewSchedule(kind PlanKind, items []Installment) (PaymentSchedule, error) {
	switch kind {
	case "", PlanSemester:
		return FixedSchedule{Plan: PlanSemester}, nil
	case PlanBimonthly, PlanMonthly:
		return FixedSchedule{Plan: kind}, nil
	case PlanCustom:
		return CustomSchedule{Items: items}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlan, kind)
}

func (f FixedSchedule) count() (n, stepMonths int) {
	switch f.Plan {
	case PlanMonthly:
		return 4, 1
	case PlanBimonthly:
		return 2, 2
	default:
		return 1, 0
	}
}

func (f FixedSchedule) Installments(duesCents int64, start time.Time) []Installment {
	n, step := f.count()
	amounts := SplitCents(duesCents, n)
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())

	out := make([]Installment, n)
	for i := range n {
		due := start
		desc := "Full semester payment"
		if n > 1 {
			due = first.AddDate(0, i*step, 0)
			desc = fmt.Sprintf("%s payment %d/%d", f.label(), i+1, n)
		}
		out[i] = Installment{DueDate: due, AmountCents: amounts[i], Description: desc}
	}
	return out
}

func (f FixedSchedule) label() string {
	if f.Plan == PlanBimonthly {
		return "Bi-monthly"
	}
	return "Monthly"
}

// Installments returns the custom list unchanged. An empty list falls back to
// a single installment for the full dues.
func (c CustomSchedule) Installments(duesCents int64, start time.Time) []Installment {
	if len(c.Items) == 0 {
		return []Installment{{DueDate: start, AmountCents: duesCents, Description: "Full semester payment"}}
	}
	out := make([]Installment, len(c.Items))
	copy(out, c.Items)
	return out
}

// SplitCents divides total into n parts that sum to total exactly. The
// remainder goes one cent at a time to the earliest parts.
func SplitCents(total int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	base := total / int64(n)
	rem := total % int64(n)
	out := make([]int64, n)
	for i := range out {
		out[i] = base
		if int64(i) < rem {
			out[i]++
		}
	}
	return out
}

type InstallmentStatus string

const (
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentPartial InstallmentStatus = "partial"
	InstallmentPending InstallmentStatus = "pending"
)

type ScheduledInstallment struct {
	Installment
	PaidCents int64
	DueCents  int64
	Status    InstallmentStatus
}

// ApplyPayments walks the installments in order and fills each from the
// member's cumulative paid total before moving on to the next.
func ApplyPayments(items []Installment, paidCents int64) []ScheduledInstallment {
	left := max(paidCents, 0)
	out := make([]ScheduledInstallment, len(items))
	for i, it := range items {
		applied := min(left, max(it.AmountCents, 0))
		left -= applied

		status := InstallmentPending
		switch {
		case applied >= it.AmountCents:
			status = InstallmentPaid
		case applied > 0:
			status = InstallmentPartial
		}
		out[i] = ScheduledInstallment{
			Installment: it,
			PaidCents:   applied,
			DueCents:    it.AmountCents - applied,
			Status:      status,
		}
	}
	return out
}

// MemberStatement is a member together with their payments and schedule.
type MemberStatement struct {
	Member       Member
	Payments     []MemberPayment
	PaidCents    int64
	BalanceCents int64
	Schedule     []ScheduledInstallment
}

func (s MemberStatement) PaidUp() bool { return s.BalanceCents <= 0 }

type MemberDuesSummary struct {
	SemesterID       string
	MemberCount      int
	PaidUpCount      int
	ProjectedCents   int64
	CollectedCents   int64
	OutstandingCents int64
	CollectionRate   float64
}
