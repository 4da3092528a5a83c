package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/jmoiron/sqlx"
)

type eventRow struct {
	ID                 string         `db:"id"`
	Title              string         `db:"title"`
	Description        sql.NullString `db:"description"`
	Location           sql.NullString `db:"location"`
	StartsAt           sql.NullTime   `db:"starts_at"`
	EndsAt             sql.NullTime   `db:"ends_at"`
	CommitteeID        sql.NullString `db:"committee_id"`
	SemesterID         string         `db:"semester_id"`
	CreatedBy          string         `db:"created_by"`
	Status             string         `db:"status"`
	EstimatedCostCents int64          `db:"estimated_cost_cents"`
	IsArchived         bool           `db:"is_archived"`
	IsDeleted          bool           `db:"is_deleted"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedBy          sql.NullString `db:"updated_by"`
	UpdatedAt          sql.NullTime   `db:"updated_at"`
}

const eventColumns = `id, title, description, location, starts_at, ends_at, committee_id, semester_id,
	created_by, status, estimated_cost_cents, is_archived, is_deleted, created_at, updated_by, updated_at`

func mapEvent(row eventRow) domain.Event {
	return domain.Event{
		ID:                 row.ID,
		Title:              row.Title,
		Description:        mapNullString(row.Description),
		Location:           mapNullString(row.Location),
		StartsAt:           mapNullTimePtr(row.StartsAt),
		EndsAt:             mapNullTimePtr(row.EndsAt),
		CommitteeID:        mapNullString(row.CommitteeID),
		SemesterID:         row.SemesterID,
		CreatedBy:          row.CreatedBy,
		Status:             domain.EventStatus(row.Status),
		EstimatedCostCents: row.EstimatedCostCents,
		IsArchived:         row.IsArchived,
		IsDeleted:          row.IsDeleted,
		CreatedAt:          row.CreatedAt.UTC(),
		UpdatedBy:          mapNullString(row.UpdatedBy),
		UpdatedAt:          mapNullTimePtr(row.UpdatedAt),
	}
}

type linkRow struct {
	EventID         string         `db:"event_id"`
	CalendarID      string         `db:"calendar_id"`
	ExternalEventID string         `db:"external_event_id"`
	SyncStatus      string         `db:"sync_status"`
	LastSyncedAt    sql.NullTime   `db:"last_synced_at"`
	LastError       sql.NullString `db:"last_error"`
}

func mapLink(row linkRow) domain.CalendarLink {
	return domain.CalendarLink{
		EventID:         row.EventID,
		CalendarID:      row.CalendarID,
		ExternalEventID: row.ExternalEventID,
		SyncStatus:      domain.SyncStatus(row.SyncStatus),
		LastSyncedAt:    mapNullTimePtr(row.LastSyncedAt),
		LastError:       mapNullString(row.LastError),
	}
}

type eventsRepo struct {
	q sqlx.ExtContext
}

func (r *eventsRepo) CreateEvent(ctx context.Context, e domain.Event) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO events (id, title, description, location, starts_at, ends_at, committee_id, semester_id,
			created_by, status, estimated_cost_cents, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		e.ID, e.Title, mapStringNull(e.Description), mapStringNull(e.Location),
		mapOptionalTime(e.StartsAt), mapOptionalTime(e.EndsAt), mapStringNull(e.CommitteeID), e.SemesterID,
		e.CreatedBy, string(e.Status), e.EstimatedCostCents, e.CreatedAt.UTC(),
	)
	return mapWriteErr(err)
}

func (r *eventsRepo) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	var row eventRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`SELECT `+eventColumns+` FROM events WHERE id = ?`), id)
	if err != nil {
		return domain.Event{}, mapNotFound(err)
	}
	return mapEvent(row), nil
}

func (r *eventsRepo) ListEvents(ctx context.Context, semesterID string, includeArchived bool) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE semester_id = ? AND is_deleted = FALSE`
	if !includeArchived {
		query += ` AND is_archived = FALSE`
	}
	query += ` ORDER BY starts_at, created_at, id`

	var rows []eventRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), semesterID); err != nil {
		return nil, err
	}
	out := make([]domain.Event, len(rows))
	for i, row := range rows {
		out[i] = mapEvent(row)
	}
	return out, nil
}

func (r *eventsRepo) SoftDeleteEvent(ctx context.Context, id, actorID string, at time.Time) (bool, error) {
	return affected(r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE events SET is_deleted = TRUE, updated_by = ?, updated_at = ?
		WHERE id = ? AND is_deleted = FALSE`), actorID, at.UTC(), id))
}

func (r *eventsRepo) ArchiveSemesterEvents(ctx context.Context, semesterID string) (int, error) {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE events SET is_archived = TRUE WHERE semester_id = ? AND is_archived = FALSE`), semesterID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (r *eventsRepo) UpsertCalendarLink(ctx context.Context, l domain.CalendarLink) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO calendar_links (event_id, calendar_id, external_event_id, sync_status)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (event_id) DO UPDATE SET
			calendar_id = excluded.calendar_id,
			external_event_id = excluded.external_event_id,
			sync_status = excluded.sync_status,
			last_error = NULL`),
		l.EventID, l.CalendarID, l.ExternalEventID, string(l.SyncStatus),
	)
	return mapWriteErr(err)
}

func (r *eventsRepo) GetCalendarLink(ctx context.Context, eventID string) (domain.CalendarLink, error) {
	var row linkRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`
		SELECT event_id, calendar_id, external_event_id, sync_status, last_synced_at, last_error
		FROM calendar_links WHERE event_id = ?`), eventID)
	if err != nil {
		return domain.CalendarLink{}, mapNotFound(err)
	}
	return mapLink(row), nil
}

// SetSyncResult records the outcome of a sync attempt. last_synced_at only
// moves on success.
func (r *eventsRepo) SetSyncResult(ctx context.Context, eventID string, status domain.SyncStatus, lastError string, at time.Time) error {
	var synced sql.NullTime
	if status == domain.SyncSynced {
		synced = sql.NullTime{Time: at.UTC(), Valid: true}
	}
	ok, err := affected(r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE calendar_links
		SET sync_status = ?, last_error = ?, last_synced_at = COALESCE(?, last_synced_at)
		WHERE event_id = ?`),
		string(status), mapStringNull(lastError), synced, eventID,
	))
	if err != nil {
		return err
	}
	if !ok {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *eventsRepo) ListLinksByStatus(ctx context.Context, status domain.SyncStatus) ([]domain.CalendarLink, error) {
	var rows []linkRow
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(`
		SELECT event_id, calendar_id, external_event_id, sync_status, last_synced_at, last_error
		FROM calendar_links WHERE sync_status = ? ORDER BY event_id`), string(status))
	if err != nil {
		return nil, err
	}
	out := make([]domain.CalendarLink, len(rows))
	for i, row := range rows {
		out[i] = mapLink(row)
	}
	return out, nil
}
