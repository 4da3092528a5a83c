package domain

import "time"

// LedgerEntry is a chapter-wide movement of money. Unlike committee
// transactions it is not scoped to a semester.
type LedgerEntry struct {
	ID          string
	AmountCents int64
	Category    string
	Memo        string
	CreatedBy   string
	CreatedAt   time.Time
	SoftDelete
}
