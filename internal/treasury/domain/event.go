package domain

import "time"

type EventStatus string

const (
	EventPlanned   EventStatus = "planned"
	EventApproved  EventStatus = "approved"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventPlanned, EventApproved, EventCancelled, EventCompleted:
		return true
	}
	return false
}

type Event struct {
	ID                 string
	Title              string
	Description        string
	Location           string
	StartsAt           *time.Time
	EndsAt             *time.Time
	CommitteeID        string // empty for chapter-wide events
	SemesterID         string
	CreatedBy          string
	Status             EventStatus
	EstimatedCostCents int64
	IsArchived         bool
	IsDeleted          bool
	CreatedAt          time.Time
	UpdatedBy          string
	UpdatedAt          *time.Time
}

type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSynced  SyncStatus = "synced"
	SyncFailed  SyncStatus = "failed"
)

// CalendarLink ties an event to an entry in an external calendar.
type CalendarLink struct {
	EventID         string
	CalendarID      string
	ExternalEventID string
	SyncStatus      SyncStatus
	LastSyncedAt    *time.Time
	LastError       string
}
