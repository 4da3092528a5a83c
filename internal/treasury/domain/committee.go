package domain

import "time"

type Committee struct {
	ID       string // slug: brotherhood, social, recruitment
	Name     string
	IsActive bool
}

type CommitteeBudgetAllocation struct {
	ID             string
	SemesterID     string
	CommitteeID    string
	AllocatedCents int64
	AllocatedBy    string
	AllocatedAt    time.Time
	Notes          string
}

// CommitteeTransaction amounts are signed: spend is negative, credit positive.
type CommitteeTransaction struct {
	ID          string
	SemesterID  string
	CommitteeID string
	AmountCents int64
	Vendor      string
	Category    string
	Memo        string
	EventID     string
	CreatedBy   string
	CreatedAt   time.Time
	SoftDelete
}

type Direction string

const (
	DirectionSpend  Direction = "spend"
	DirectionCredit Direction = "credit"
)

// CommitteeBudget is the remaining budget for one committee in one semester.
type CommitteeBudget struct {
	SemesterID     string
	CommitteeID    string
	AllocatedCents int64
	SpentCents     int64 // sum of negative amounts, reported positive
	CreditCents    int64
	RemainingCents int64
	PercentUsed    float64
}
