package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/jmoiron/sqlx"
)

type committeeRow struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}

type allocationRow struct {
	ID             string         `db:"id"`
	SemesterID     string         `db:"semester_id"`
	CommitteeID    string         `db:"committee_id"`
	AllocatedCents int64          `db:"allocated_cents"`
	AllocatedBy    string         `db:"allocated_by"`
	AllocatedAt    time.Time      `db:"allocated_at"`
	Notes          sql.NullString `db:"notes"`
}

type transactionRow struct {
	ID          string         `db:"id"`
	SemesterID  string         `db:"semester_id"`
	CommitteeID string         `db:"committee_id"`
	AmountCents int64          `db:"amount_cents"`
	Vendor      sql.NullString `db:"vendor"`
	Category    sql.NullString `db:"category"`
	Memo        sql.NullString `db:"memo"`
	EventID     sql.NullString `db:"event_id"`
	CreatedBy   string         `db:"created_by"`
	CreatedAt   time.Time      `db:"created_at"`
	softDeleteRow
}

const transactionColumns = `id, semester_id, committee_id, amount_cents, vendor, category, memo, event_id,
	created_by, created_at, is_deleted, deleted_by, deleted_at`

func mapTransaction(row transactionRow) domain.CommitteeTransaction {
	return domain.CommitteeTransaction{
		ID:          row.ID,
		SemesterID:  row.SemesterID,
		CommitteeID: row.CommitteeID,
		AmountCents: row.AmountCents,
		Vendor:      mapNullString(row.Vendor),
		Category:    mapNullString(row.Category),
		Memo:        mapNullString(row.Memo),
		EventID:     mapNullString(row.EventID),
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt.UTC(),
		SoftDelete:  mapSoftDelete(row.softDeleteRow),
	}
}

type committeesRepo struct {
	q sqlx.ExtContext
}

func (r *committeesRepo) EnsureCommittee(ctx context.Context, c domain.Committee) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO committees (id, name, is_active) VALUES (?, ?, ?)
		ON CONFLICT (id) DO NOTHING`), c.ID, c.Name, c.IsActive)
	return mapWriteErr(err)
}

func (r *committeesRepo) GetCommittee(ctx context.Context, id string) (domain.Committee, error) {
	var row committeeRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`SELECT id, name, is_active FROM committees WHERE id = ?`), id)
	if err != nil {
		return domain.Committee{}, mapNotFound(err)
	}
	return domain.Committee(row), nil
}

func (r *committeesRepo) ListCommittees(ctx context.Context) ([]domain.Committee, error) {
	var rows []committeeRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, `SELECT id, name, is_active FROM committees ORDER BY name`); err != nil {
		return nil, err
	}
	out := make([]domain.Committee, len(rows))
	for i, row := range rows {
		out[i] = domain.Committee(row)
	}
	return out, nil
}

func (r *committeesRepo) CreateAllocation(ctx context.Context, a domain.CommitteeBudgetAllocation) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO committee_budget_allocations (id, semester_id, committee_id, allocated_cents, allocated_by, allocated_at, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		a.ID, a.SemesterID, a.CommitteeID, a.AllocatedCents, a.AllocatedBy, a.AllocatedAt.UTC(), mapStringNull(a.Notes),
	)
	return mapWriteErr(err)
}

func (r *committeesRepo) LatestAllocation(ctx context.Context, semesterID, committeeID string) (domain.CommitteeBudgetAllocation, error) {
	var row allocationRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`
		SELECT id, semester_id, committee_id, allocated_cents, allocated_by, allocated_at, notes
		FROM committee_budget_allocations
		WHERE semester_id = ? AND committee_id = ?
		ORDER BY allocated_at DESC, id DESC
		LIMIT 1`), semesterID, committeeID)
	if err != nil {
		return domain.CommitteeBudgetAllocation{}, mapNotFound(err)
	}
	return domain.CommitteeBudgetAllocation{
		ID:             row.ID,
		SemesterID:     row.SemesterID,
		CommitteeID:    row.CommitteeID,
		AllocatedCents: row.AllocatedCents,
		AllocatedBy:    row.AllocatedBy,
		AllocatedAt:    row.AllocatedAt.UTC(),
		Notes:          mapNullString(row.Notes),
	}, nil
}

func (r *committeesRepo) CreateTransaction(ctx context.Context, t domain.CommitteeTransaction) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO committee_transactions (id, semester_id, committee_id, amount_cents, vendor, category, memo,
			event_id, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		t.ID, t.SemesterID, t.CommitteeID, t.AmountCents, mapStringNull(t.Vendor), mapStringNull(t.Category),
		mapStringNull(t.Memo), mapStringNull(t.EventID), t.CreatedBy, t.CreatedAt.UTC(),
	)
	return mapWriteErr(err)
}

func (r *committeesRepo) GetTransaction(ctx context.Context, id string) (domain.CommitteeTransaction, error) {
	var row transactionRow
	err := sqlx.GetContext(ctx, r.q, &row,
		r.q.Rebind(`SELECT `+transactionColumns+` FROM committee_transactions WHERE id = ?`), id)
	if err != nil {
		return domain.CommitteeTransaction{}, mapNotFound(err)
	}
	return mapTransaction(row), nil
}

func (r *committeesRepo) SoftDeleteTransaction(ctx context.Context, id, actorID string, at time.Time) (bool, error) {
	return affected(r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE committee_transactions SET is_deleted = TRUE, deleted_by = ?, deleted_at = ?
		WHERE id = ? AND is_deleted = FALSE`), actorID, at.UTC(), id))
}

func (r *committeesRepo) ListTransactions(ctx context.Context, semesterID, committeeID string) ([]domain.CommitteeTransaction, error) {
	var rows []transactionRow
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(`
		SELECT `+transactionColumns+` FROM committee_transactions
		WHERE semester_id = ? AND committee_id = ? AND is_deleted = FALSE
		ORDER BY created_at DESC, id DESC`), semesterID, committeeID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CommitteeTransaction, len(rows))
	for i, row := range rows {
		out[i] = mapTransaction(row)
	}
	return out, nil
}

func (r *committeesRepo) TransactionTotals(ctx context.Context, semesterID, committeeID string) (int64, int64, error) {
	var row struct {
		Spent   int64 `db:"spent"`
		Credits int64 `db:"credits"`
	}
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`
		SELECT
			COALESCE(SUM(CASE WHEN amount_cents < 0 THEN -amount_cents ELSE 0 END), 0) AS spent,
			COALESCE(SUM(CASE WHEN amount_cents > 0 THEN amount_cents ELSE 0 END), 0) AS credits
		FROM committee_transactions
		WHERE semester_id = ? AND committee_id = ? AND is_deleted = FALSE`), semesterID, committeeID)
	return row.Spent, row.Credits, err
}
