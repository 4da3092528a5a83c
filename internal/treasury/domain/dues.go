package domain

import "time"

type PaymentMethod string

const (
	MethodCash  PaymentMethod = "cash"
	MethodCheck PaymentMethod = "check"
	MethodVenmo PaymentMethod = "venmo"
	MethodZelle PaymentMethod = "zelle"
	MethodCard  PaymentMethod = "card"
	MethodOther PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCheck, MethodVenmo, MethodZelle, MethodCard, MethodOther:
		return true
	}
	return false
}

// SoftDelete marks a financial row as removed without losing it.
type SoftDelete struct {
	IsDeleted bool
	DeletedBy string
	DeletedAt *time.Time
}

type DuesCharge struct {
	ID          string
	SemesterID  string
	UserID      string
	ChargeCents int64
	Reason      string
	IssuedAt    time.Time
	IssuedBy    string
	DueDate     *time.Time
	Notes       string
	SoftDelete
}

type DuesPayment struct {
	ID          string
	UserID      string
	AmountCents int64
	PaidAt      time.Time
	Method      PaymentMethod
	ExternalRef string
	RecordedBy  string
	Notes       string
	SoftDelete
}

type DuesPaymentAllocation struct {
	ID             string
	PaymentID      string
	ChargeID       string
	AllocatedCents int64
	AllocatedBy    string
	AllocatedAt    time.Time
}

// OpenCharge is a non-deleted charge together with the part of it that live
// payments have not yet covered.
type OpenCharge struct {
	DuesCharge
	RemainingCents int64
}

// DuesBalance is a user's dues position. TotalCents is charges minus payments
// and may be negative when the user has prepaid.
type DuesBalance struct {
	UserID           string
	ChargedCents     int64
	PaidCents        int64
	TotalCents       int64
	CurrentCents     int64 // unpaid remainder on current-semester charges
	PriorCents       int64 // unpaid remainder on every other semester
	UnallocatedCents int64
}

type DuesSemesterSummary struct {
	SemesterID       string
	ChargeCount      int
	ChargedCents     int64
	AllocatedCents   int64
	OutstandingCents int64
	CollectionRate   float64
}
