package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/jmoiron/sqlx"
)

type softDeleteRow struct {
	IsDeleted bool           `db:"is_deleted"`
	DeletedBy sql.NullString `db:"deleted_by"`
	DeletedAt sql.NullTime   `db:"deleted_at"`
}

func mapSoftDelete(row softDeleteRow) domain.SoftDelete {
	return domain.SoftDelete{
		IsDeleted: row.IsDeleted,
		DeletedBy: mapNullString(row.DeletedBy),
		DeletedAt: mapNullTimePtr(row.DeletedAt),
	}
}

type chargeRow struct {
	ID          string         `db:"id"`
	SemesterID  string         `db:"semester_id"`
	UserID      string         `db:"user_id"`
	ChargeCents int64          `db:"charge_cents"`
	Reason      string         `db:"reason"`
	IssuedAt    time.Time      `db:"issued_at"`
	IssuedBy    string         `db:"issued_by"`
	DueDate     sql.NullTime   `db:"due_date"`
	Notes       sql.NullString `db:"notes"`
	softDeleteRow
}

const chargeColumns = `c.id, c.semester_id, c.user_id, c.charge_cents, c.reason, c.issued_at, c.issued_by,
	c.due_date, c.notes, c.is_deleted, c.deleted_by, c.deleted_at`

func mapCharge(row chargeRow) domain.DuesCharge {
	return domain.DuesCharge{
		ID:          row.ID,
		SemesterID:  row.SemesterID,
		UserID:      row.UserID,
		ChargeCents: row.ChargeCents,
		Reason:      row.Reason,
		IssuedAt:    row.IssuedAt.UTC(),
		IssuedBy:    row.IssuedBy,
		DueDate:     mapNullTimePtr(row.DueDate),
		Notes:       mapNullString(row.Notes),
		SoftDelete:  mapSoftDelete(row.softDeleteRow),
	}
}

type paymentRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	AmountCents int64          `db:"amount_cents"`
	PaidAt      time.Time      `db:"paid_at"`
	Method      string         `db:"method"`
	ExternalRef sql.NullString `db:"external_ref"`
	RecordedBy  string         `db:"recorded_by"`
	Notes       sql.NullString `db:"notes"`
	softDeleteRow
}

const paymentColumns = `id, user_id, amount_cents, paid_at, method, external_ref, recorded_by, notes,
	is_deleted, deleted_by, deleted_at`

func mapPayment(row paymentRow) domain.DuesPayment {
	return domain.DuesPayment{
		ID:          row.ID,
		UserID:      row.UserID,
		AmountCents: row.AmountCents,
		PaidAt:      row.PaidAt.UTC(),
		Method:      domain.PaymentMethod(row.Method),
		ExternalRef: mapNullString(row.ExternalRef),
		RecordedBy:  row.RecordedBy,
		Notes:       mapNullString(row.Notes),
		SoftDelete:  mapSoftDelete(row.softDeleteRow),
	}
}

// liveAllocations sums allocations per charge, ignoring deleted payments.
const liveAllocations = `
	SELECT a.charge_id, SUM(a.allocated_cents) AS allocated
	FROM dues_payment_allocations a
	JOIN dues_payments p ON p.id = a.payment_id
	WHERE p.is_deleted = FALSE
	GROUP BY a.charge_id`

type duesRepo struct {
	q sqlx.ExtContext
}

func (r *duesRepo) CreateCharge(ctx context.Context, c domain.DuesCharge) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO dues_charges (id, semester_id, user_id, charge_cents, reason, issued_at, issued_by, due_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		c.ID, c.SemesterID, c.UserID, c.ChargeCents, c.Reason, c.IssuedAt.UTC(), c.IssuedBy,
		mapOptionalTime(c.DueDate), mapStringNull(c.Notes),
	)
	return mapWriteErr(err)
}

func (r *duesRepo) GetCharge(ctx context.Context, id string) (domain.DuesCharge, error) {
	var row chargeRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`SELECT `+chargeColumns+` FROM dues_charges c WHERE c.id = ?`), id)
	if err != nil {
		return domain.DuesCharge{}, mapNotFound(err)
	}
	return mapCharge(row), nil
}

func (r *duesRepo) SoftDeleteCharge(ctx context.Context, id, actorID string, at time.Time) (bool, error) {
	return affected(r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE dues_charges SET is_deleted = TRUE, deleted_by = ?, deleted_at = ?
		WHERE id = ? AND is_deleted = FALSE`), actorID, at.UTC(), id))
}

func (r *duesRepo) CreatePayment(ctx context.Context, p domain.DuesPayment) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO dues_payments (id, user_id, amount_cents, paid_at, method, external_ref, recorded_by, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.UserID, p.AmountCents, p.PaidAt.UTC(), string(p.Method), mapStringNull(p.ExternalRef),
		p.RecordedBy, mapStringNull(p.Notes),
	)
	return mapWriteErr(err)
}

func (r *duesRepo) GetPayment(ctx context.Context, id string) (domain.DuesPayment, error) {
	var row paymentRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`SELECT `+paymentColumns+` FROM dues_payments WHERE id = ?`), id)
	if err != nil {
		return domain.DuesPayment{}, mapNotFound(err)
	}
	return mapPayment(row), nil
}

func (r *duesRepo) SoftDeletePayment(ctx context.Context, id, actorID string, at time.Time) (bool, error) {
	return affected(r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE dues_payments SET is_deleted = TRUE, deleted_by = ?, deleted_at = ?
		WHERE id = ? AND is_deleted = FALSE`), actorID, at.UTC(), id))
}

func (r *duesRepo) ListPayments(ctx context.Context, userID string) ([]domain.DuesPayment, error) {
	var rows []paymentRow
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(`
		SELECT `+paymentColumns+` FROM dues_payments
		WHERE user_id = ? AND is_deleted = FALSE ORDER BY paid_at, id`), userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.DuesPayment, len(rows))
	for i, row := range rows {
		out[i] = mapPayment(row)
	}
	return out, nil
}

func (r *duesRepo) CreateAllocation(ctx context.Context, a domain.DuesPaymentAllocation) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO dues_payment_allocations (id, payment_id, charge_id, allocated_cents, allocated_by, allocated_at)
		VALUES (?, ?, ?, ?, ?, ?)`),
		a.ID, a.PaymentID, a.ChargeID, a.AllocatedCents, a.AllocatedBy, a.AllocatedAt.UTC(),
	)
	return mapWriteErr(err)
}

func (r *duesRepo) AllocatedFromPayment(ctx context.Context, paymentID string) (int64, error) {
	return r.sum(ctx, `
		SELECT COALESCE(SUM(allocated_cents), 0) FROM dues_payment_allocations WHERE payment_id = ?`, paymentID)
}

func (r *duesRepo) AllocatedToCharge(ctx context.Context, chargeID string) (int64, error) {
	return r.sum(ctx, `
		SELECT COALESCE(SUM(a.allocated_cents), 0)
		FROM dues_payment_allocations a
		JOIN dues_payments p ON p.id = a.payment_id
		WHERE a.charge_id = ? AND p.is_deleted = FALSE`, chargeID)
}

func (r *duesRepo) SumCharges(ctx context.Context, userID string) (int64, error) {
	return r.sum(ctx, `
		SELECT COALESCE(SUM(charge_cents), 0) FROM dues_charges WHERE user_id = ? AND is_deleted = FALSE`, userID)
}

func (r *duesRepo) SumPayments(ctx context.Context, userID string) (int64, error) {
	return r.sum(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0) FROM dues_payments WHERE user_id = ? AND is_deleted = FALSE`, userID)
}

func (r *duesRepo) UnallocatedForUser(ctx context.Context, userID string) (int64, error) {
	return r.sum(ctx, `
		SELECT COALESCE(SUM(p.amount_cents - COALESCE(x.allocated, 0)), 0)
		FROM dues_payments p
		LEFT JOIN (
			SELECT payment_id, SUM(allocated_cents) AS allocated
			FROM dues_payment_allocations GROUP BY payment_id
		) x ON x.payment_id = p.id
		WHERE p.user_id = ? AND p.is_deleted = FALSE`, userID)
}

func (r *duesRepo) OpenCharges(ctx context.Context, userID string) ([]domain.OpenCharge, error) {
	var rows []struct {
		chargeRow
		Remaining int64 `db:"remaining_cents"`
	}
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(`
		SELECT `+chargeColumns+`, c.charge_cents - COALESCE(x.allocated, 0) AS remaining_cents
		FROM dues_charges c
		LEFT JOIN (`+liveAllocations+`) x ON x.charge_id = c.id
		WHERE c.user_id = ? AND c.is_deleted = FALSE
		ORDER BY c.issued_at, c.id`), userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.OpenCharge, len(rows))
	for i, row := range rows {
		out[i] = domain.OpenCharge{DuesCharge: mapCharge(row.chargeRow), RemainingCents: row.Remaining}
	}
	return out, nil
}

func (r *duesRepo) SemesterSummary(ctx context.Context, semesterID string) (domain.DuesSemesterSummary, error) {
	var row struct {
		Count     int   `db:"charge_count"`
		Charged   int64 `db:"charged"`
		Allocated int64 `db:"allocated"`
	}
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`
		SELECT COUNT(c.id) AS charge_count,
			COALESCE(SUM(c.charge_cents), 0) AS charged,
			COALESCE(SUM(COALESCE(x.allocated, 0)), 0) AS allocated
		FROM dues_charges c
		LEFT JOIN (`+liveAllocations+`) x ON x.charge_id = c.id
		WHERE c.semester_id = ? AND c.is_deleted = FALSE`), semesterID)
	if err != nil {
		return domain.DuesSemesterSummary{}, err
	}

	s := domain.DuesSemesterSummary{
		SemesterID:       semesterID,
		ChargeCount:      row.Count,
		ChargedCents:     row.Charged,
		AllocatedCents:   row.Allocated,
		OutstandingCents: row.Charged - row.Allocated,
	}
	if row.Charged > 0 {
		s.CollectionRate = float64(row.Allocated) / float64(row.Charged)
	}
	return s, nil
}

func (r *duesRepo) sum(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := sqlx.GetContext(ctx, r.q, &n, r.q.Rebind(query), args...)
	return n, err
}
