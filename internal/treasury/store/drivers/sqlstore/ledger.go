package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/jmoiron/sqlx"
)

type ledgerRow struct {
	ID          string         `db:"id"`
	AmountCents int64          `db:"amount_cents"`
	Category    sql.NullString `db:"category"`
	Memo        sql.NullString `db:"memo"`
	CreatedBy   string         `db:"created_by"`
	CreatedAt   time.Time      `db:"created_at"`
	softDeleteRow
}

const ledgerColumns = `id, amount_cents, category, memo, created_by, created_at, is_deleted, deleted_by, deleted_at`

func mapLedgerEntry(row ledgerRow) domain.LedgerEntry {
	return domain.LedgerEntry{
		ID:          row.ID,
		AmountCents: row.AmountCents,
		Category:    mapNullString(row.Category),
		Memo:        mapNullString(row.Memo),
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt.UTC(),
		SoftDelete:  mapSoftDelete(row.softDeleteRow),
	}
}

type ledgerRepo struct {
	q sqlx.ExtContext
}

func (r *ledgerRepo) CreateEntry(ctx context.Context, e domain.LedgerEntry) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO master_ledger (id, amount_cents, category, memo, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`),
		e.ID, e.AmountCents, mapStringNull(e.Category), mapStringNull(e.Memo), e.CreatedBy, e.CreatedAt.UTC(),
	)
	return mapWriteErr(err)
}

func (r *ledgerRepo) GetEntry(ctx context.Context, id string) (domain.LedgerEntry, error) {
	var row ledgerRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`SELECT `+ledgerColumns+` FROM master_ledger WHERE id = ?`), id)
	if err != nil {
		return domain.LedgerEntry{}, mapNotFound(err)
	}
	return mapLedgerEntry(row), nil
}

func (r *ledgerRepo) SoftDeleteEntry(ctx context.Context, id, actorID string, at time.Time) (bool, error) {
	return affected(r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE master_ledger SET is_deleted = TRUE, deleted_by = ?, deleted_at = ?
		WHERE id = ? AND is_deleted = FALSE`), actorID, at.UTC(), id))
}

func (r *ledgerRepo) ListEntries(ctx context.Context, limit, offset int) ([]domain.LedgerEntry, error) {
	var rows []ledgerRow
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(`
		SELECT `+ledgerColumns+` FROM master_ledger
		WHERE is_deleted = FALSE
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`), limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]domain.LedgerEntry, len(rows))
	for i, row := range rows {
		out[i] = mapLedgerEntry(row)
	}
	return out, nil
}

func (r *ledgerRepo) Balance(ctx context.Context) (int64, error) {
	var n int64
	err := sqlx.GetContext(ctx, r.q, &n, `SELECT COALESCE(SUM(amount_cents), 0) FROM master_ledger WHERE is_deleted = FALSE`)
	return n, err
}
