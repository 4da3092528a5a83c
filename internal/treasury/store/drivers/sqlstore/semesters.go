package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/jmoiron/sqlx"
)

type semesterRow struct {
	ID        string       `db:"id"`
	Name      string       `db:"name"`
	Year      int          `db:"year"`
	Season    string       `db:"season"`
	StartsOn  sql.NullTime `db:"starts_on"`
	EndsOn    sql.NullTime `db:"ends_on"`
	IsCurrent bool         `db:"is_current"`
	Archived  bool         `db:"archived"`
	CreatedAt time.Time    `db:"created_at"`
}

const semesterColumns = `id, name, year, season, starts_on, ends_on, is_current, archived, created_at`

func mapSemester(row semesterRow) domain.Semester {
	return domain.Semester{
		ID:        row.ID,
		Name:      row.Name,
		Year:      row.Year,
		Season:    domain.Season(row.Season),
		StartsOn:  mapNullTimePtr(row.StartsOn),
		EndsOn:    mapNullTimePtr(row.EndsOn),
		IsCurrent: row.IsCurrent,
		Archived:  row.Archived,
		CreatedAt: row.CreatedAt.UTC(),
	}
}

type semestersRepo struct {
	q sqlx.ExtContext
}

func (r *semestersRepo) CreateSemester(ctx context.Context, s domain.Semester) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO semesters (id, name, year, season, starts_on, ends_on, is_current, archived, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		s.ID, s.Name, s.Year, string(s.Season), mapOptionalTime(s.StartsOn), mapOptionalTime(s.EndsOn),
		s.IsCurrent, s.Archived, s.CreatedAt.UTC(),
	)
	return mapWriteErr(err)
}

func (r *semestersRepo) GetSemester(ctx context.Context, id string) (domain.Semester, error) {
	var row semesterRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`SELECT `+semesterColumns+` FROM semesters WHERE id = ?`), id)
	if err != nil {
		return domain.Semester{}, mapNotFound(err)
	}
	return mapSemester(row), nil
}

func (r *semestersRepo) GetCurrent(ctx context.Context) (domain.Semester, error) {
	var row semesterRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+semesterColumns+` FROM semesters WHERE is_current = TRUE`)
	if err != nil {
		return domain.Semester{}, mapNotFound(err)
	}
	return mapSemester(row), nil
}

func (r *semestersRepo) ListSemesters(ctx context.Context) ([]domain.Semester, error) {
	var rows []semesterRow
	err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT `+semesterColumns+` FROM semesters ORDER BY year DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Semester, len(rows))
	for i, row := range rows {
		out[i] = mapSemester(row)
	}
	return out, nil
}

func (r *semestersRepo) ArchiveCurrent(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE semesters SET is_current = FALSE, archived = TRUE WHERE id = ?`), id)
	return err
}
