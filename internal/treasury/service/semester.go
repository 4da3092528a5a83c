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
	"github.com/aussiebroadwan/treasury/pkg/slogx"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RolloverConfirmation must be typed verbatim to roll the semester over.
const RolloverConfirmation = "ROLL_OVER"

type SemesterService struct {
	Store   store.Store
	Metrics *metrics.Metrics
}

type NewSemester struct {
	Name     string // defaults to "<Season> <Year>"
	Season   domain.Season
	Year     int
	StartsOn *time.Time
	EndsOn   *time.Time
}

var titleCaser = cases.Title(language.English)

// Rollover archives the current semester with its events and makes a new
// semester current, all in one transaction.
func (s *SemesterService) Rollover(ctx context.Context, actor rbac.AuthContext, next NewSemester, confirmation string) (bool, error) {
	a := auditor{store: s.Store, metrics: s.Metrics}
	if !actor.HasAnyRole(rbac.RolloverRoles...) {
		return false, a.deny(ctx, actor, "rollover")
	}
	if confirmation != RolloverConfirmation {
		return false, ErrConfirmationMismatch
	}

	season := domain.Season(strings.ToLower(string(next.Season)))
	if !season.Valid() {
		return false, invalid("unknown season %q", next.Season)
	}
	if next.Year < 1900 || next.Year > 9999 {
		return false, invalid("year %d out of range", next.Year)
	}
	if next.StartsOn != nil && next.EndsOn != nil && next.EndsOn.Before(*next.StartsOn) {
		return false, invalid("semester ends before it starts")
	}
	name := strings.TrimSpace(next.Name)
	if name == "" {
		name = fmt.Sprintf("%s %d", titleCaser.String(string(season)), next.Year)
	}
	id := domain.SemesterID(season, next.Year)

	var from string
	ok, err := a.mutate(ctx, actor, func(tx store.Tx) (domain.AuditEntry, error) {
		if _, err := tx.Semesters().GetSemester(ctx, id); err == nil {
			return domain.AuditEntry{}, ErrSemesterExists
		} else if !errors.Is(err, store.ErrNotFound) {
			return domain.AuditEntry{}, err
		}

		details := map[string]any{"to": id}
		prev, err := tx.Semesters().GetCurrent(ctx)
		switch {
		case err == nil:
			if err := tx.Semesters().ArchiveCurrent(ctx, prev.ID); err != nil {
				return domain.AuditEntry{}, fmt.Errorf("archive semester: %w", err)
			}
			archived, err := tx.Events().ArchiveSemesterEvents(ctx, prev.ID)
			if err != nil {
				return domain.AuditEntry{}, fmt.Errorf("archive events: %w", err)
			}
			details["from"] = prev.ID
			details["events_archived"] = archived
		case !errors.Is(err, store.ErrNotFound):
			return domain.AuditEntry{}, err
		}

		err = tx.Semesters().CreateSemester(ctx, domain.Semester{
			ID:        id,
			Name:      name,
			Year:      next.Year,
			Season:    season,
			StartsOn:  next.StartsOn,
			EndsOn:    next.EndsOn,
			IsCurrent: true,
			CreatedAt: now(),
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.AuditEntry{}, ErrSemesterExists
		}
		if err != nil {
			return domain.AuditEntry{}, fmt.Errorf("create semester: %w", err)
		}

		from = prev.ID
		return domain.AuditEntry{
			Action:     domain.AuditSemesterRollover,
			TargetType: "semester",
			TargetID:   id,
			Details:    details,
		}, nil
	})
	if err != nil || !ok {
		return ok, err
	}
	slogx.FromContext(ctx).Info("semester rolled over",
		slog.String("from", from),
		slog.String("to", id),
	)
	return true, nil
}

func (s *SemesterService) Current(ctx context.Context) (domain.Semester, error) {
	sem, err := s.Store.Semesters().GetCurrent(ctx)
	return sem, notFound("current semester", err)
}

func (s *SemesterService) Get(ctx context.Context, id string) (domain.Semester, error) {
	sem, err := s.Store.Semesters().GetSemester(ctx, id)
	return sem, notFound("semester", err)
}

// List returns every semester, newest first.
func (s *SemesterService) List(ctx context.Context) ([]domain.Semester, error) {
	return s.Store.Semesters().ListSemesters(ctx)
}
