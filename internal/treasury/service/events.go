package service

import (
	"context"
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

type EventService struct {
	Store   store.Store
	Metrics *metrics.Metrics
}

type EventParams struct {
	Title              string
	Description        string
	Location           string
	StartsAt           *time.Time
	EndsAt             *time.Time
	CommitteeID        string // empty for a chapter-wide event
	Status             domain.EventStatus
	EstimatedCostCents int64
}

func (s *EventService) auditor() auditor {
	return auditor{store: s.Store, metrics: s.Metrics}
}

// Create adds an event to the current semester. Committee events need the
// right to manage that committee; chapter events need create_events.
func (s *EventService) Create(ctx context.Context, actor rbac.AuthContext, p EventParams) (string, error) {
	a := s.auditor()
	allowed := actor.HasPermission(rbac.PermCreateEvents)
	if p.CommitteeID != "" {
		allowed = actor.CanManageCommittee(p.CommitteeID)
	}
	if !allowed {
		return "", a.deny(ctx, actor, "create_event")
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		return "", invalid("title is required")
	}
	status := p.Status
	if status == "" {
		status = domain.EventPlanned
	}
	if !status.Valid() {
		return "", invalid("unknown event status %q", p.Status)
	}
	if p.EstimatedCostCents < 0 {
		return "", ErrInvalidAmount
	}
	if p.StartsAt != nil && p.EndsAt != nil && p.EndsAt.Before(*p.StartsAt) {
		return "", invalid("event ends before it starts")
	}
	if p.CommitteeID != "" {
		if _, err := s.Store.Committees().GetCommittee(ctx, p.CommitteeID); err != nil {
			return "", notFound("committee", err)
		}
	}
	sem, err := currentSemester(ctx, s.Store, "")
	if err != nil {
		return "", err
	}

	id := idx.New().String()
	_, err = a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		err := tx.Events().CreateEvent(ctx, domain.Event{
			ID:                 id,
			Title:              title,
			Description:        p.Description,
			Location:           p.Location,
			StartsAt:           p.StartsAt,
			EndsAt:             p.EndsAt,
			CommitteeID:        p.CommitteeID,
			SemesterID:         sem.ID,
			CreatedBy:          actor.UserID,
			Status:             status,
			EstimatedCostCents: p.EstimatedCostCents,
			CreatedAt:          now(),
		})
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("create event: %w", err)
		}
		return domain.AuditEntry{
			Action:     domain.AuditEventCreated,
			TargetType: "event",
			TargetID:   id,
			Details: map[string]any{
				"title":        title,
				"committee_id": p.CommitteeID,
				"semester_id":  sem.ID,
			},
		}, nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *EventService) Delete(ctx context.Context, actor rbac.AuthContext, id string) (bool, error) {
	a := s.auditor()
	ev, err := s.Store.Events().GetEvent(ctx, id)
	if err != nil {
		return false, notFound("event", err)
	}
	if !actor.CanEditEvent(ev.CreatedBy, ev.CommitteeID) {
		return false, a.deny(ctx, actor, "delete_event")
	}

	return a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		ok, err := tx.Events().SoftDeleteEvent(ctx, id, actor.UserID, now())
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("delete event: %w", err)
		}
		if !ok {
			return domain.AuditEntry{}, errNoChange
		}
		return domain.AuditEntry{
			Action:     domain.AuditEventDeleted,
			TargetType: "event",
			TargetID:   id,
			Details:    map[string]any{"title": ev.Title},
		}, nil
	})
}

// List returns a semester's live events. An empty semester id means the
// current semester.
func (s *EventService) List(ctx context.Context, actor rbac.AuthContext, semesterID string, includeArchived bool) ([]domain.Event, error) {
	if !actor.HasPermission(rbac.PermViewCalendar) {
		return nil, s.auditor().deny(ctx, actor, "list_events")
	}
	sem, err := currentSemester(ctx, s.Store, semesterID)
	if err != nil {
		return nil, err
	}
	return s.Store.Events().ListEvents(ctx, sem.ID, includeArchived)
}

// LinkCalendar attaches an external calendar event and queues it for sync.
func (s *EventService) LinkCalendar(ctx context.Context, actor rbac.AuthContext, eventID, calendarID, externalEventID string) error {
	ev, err := s.Store.Events().GetEvent(ctx, eventID)
	if err != nil {
		return notFound("event", err)
	}
	if !actor.CanEditEvent(ev.CreatedBy, ev.CommitteeID) {
		return s.auditor().deny(ctx, actor, "link_calendar")
	}
	if strings.TrimSpace(calendarID) == "" || strings.TrimSpace(externalEventID) == "" {
		return invalid("calendar id and external event id are required")
	}
	return s.Store.Events().UpsertCalendarLink(ctx, domain.CalendarLink{
		EventID:         eventID,
		CalendarID:      calendarID,
		ExternalEventID: externalEventID,
		SyncStatus:      domain.SyncPending,
	})
}

func (s *EventService) MarkSynced(ctx context.Context, eventID string) error {
	return notFound("calendar link", s.Store.Events().SetSyncResult(ctx, eventID, domain.SyncSynced, "", now()))
}

func (s *EventService) MarkSyncFailed(ctx context.Context, eventID string, syncErr error) error {
	msg := "unknown error"
	if syncErr != nil {
		msg = syncErr.Error()
	}
	slogx.FromContext(ctx).Warn("calendar sync failed",
		slog.String("event_id", eventID),
		slog.String("error", msg),
	)
	return notFound("calendar link", s.Store.Events().SetSyncResult(ctx, eventID, domain.SyncFailed, msg, now()))
}

// PendingLinks lists calendar links waiting to be pushed.
func (s *EventService) PendingLinks(ctx context.Context) ([]domain.CalendarLink, error) {
	return s.Store.Events().ListLinksByStatus(ctx, domain.SyncPending)
}
