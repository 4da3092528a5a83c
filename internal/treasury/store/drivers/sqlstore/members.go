package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/jmoiron/sqlx"
)

type memberRow struct {
	ID             string         `db:"id"`
	UserID         sql.NullString `db:"user_id"`
	Name           string         `db:"name"`
	Contact        string         `db:"contact"`
	ContactType    string         `db:"contact_type"`
	DuesCents      int64          `db:"dues_cents"`
	SemesterID     string         `db:"semester_id"`
	PaymentPlan    string         `db:"payment_plan"`
	CustomSchedule sql.NullString `db:"custom_schedule"`
	CreatedAt      time.Time      `db:"created_at"`
}

const memberColumns = `id, user_id, name, contact, contact_type, dues_cents, semester_id,
	payment_plan, custom_schedule, created_at`

type memberPaymentRow struct {
	ID          string         `db:"id"`
	MemberID    string         `db:"member_id"`
	AmountCents int64          `db:"amount_cents"`
	Method      string         `db:"method"`
	PaidAt      time.Time      `db:"paid_at"`
	Notes       sql.NullString `db:"notes"`
	CreatedAt   time.Time      `db:"created_at"`
}

func mapMember(row memberRow) (domain.Member, error) {
	var items []domain.Installment
	if row.CustomSchedule.Valid && row.CustomSchedule.String != "" {
		if err := json.Unmarshal([]byte(row.CustomSchedule.String), &items); err != nil {
			return domain.Member{}, fmt.Errorf("sqlstore: member %s schedule: %w", row.ID, err)
		}
	}
	schedule, err := domain.NewSchedule(domain.PlanKind(row.PaymentPlan), items)
	if err != nil {
		return domain.Member{}, err
	}

	return domain.Member{
		ID:          row.ID,
		UserID:      mapNullString(row.UserID),
		Name:        row.Name,
		Contact:     row.Contact,
		ContactType: domain.ContactType(row.ContactType),
		DuesCents:   row.DuesCents,
		SemesterID:  row.SemesterID,
		Schedule:    schedule,
		CreatedAt:   row.CreatedAt.UTC(),
	}, nil
}

// encodeSchedule splits a schedule into its storage columns. Only custom
// schedules carry an installment list.
func encodeSchedule(s domain.PaymentSchedule) (string, sql.NullString, error) {
	switch v := s.(type) {
	case nil:
		return string(domain.PlanSemester), sql.NullString{}, nil
	case domain.FixedSchedule:
		return string(v.Plan), sql.NullString{}, nil
	case domain.CustomSchedule:
		raw, err := json.Marshal(v.Items)
		if err != nil {
			return "", sql.NullString{}, err
		}
		return string(domain.PlanCustom), sql.NullString{String: string(raw), Valid: true}, nil
	}
	return "", sql.NullString{}, fmt.Errorf("sqlstore: unsupported schedule %T", s)
}

type membersRepo struct {
	q sqlx.ExtContext
}

func (r *membersRepo) CreateMember(ctx context.Context, m domain.Member) error {
	plan, custom, err := encodeSchedule(m.Schedule)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO members (id, user_id, name, contact, contact_type, dues_cents, semester_id,
			payment_plan, custom_schedule, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		m.ID, mapStringNull(m.UserID), m.Name, m.Contact, string(m.ContactType), m.DuesCents,
		m.SemesterID, plan, custom, m.CreatedAt.UTC(),
	)
	return mapWriteErr(err)
}

func (r *membersRepo) GetMember(ctx context.Context, id string) (domain.Member, error) {
	var row memberRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`SELECT `+memberColumns+` FROM members WHERE id = ?`), id)
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return mapMember(row)
}

func (r *membersRepo) ListMembers(ctx context.Context, semesterID string) ([]domain.Member, error) {
	var rows []memberRow
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(`
		SELECT `+memberColumns+` FROM members WHERE semester_id = ? ORDER BY name, id`), semesterID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		m, err := mapMember(row)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *membersRepo) CreatePayment(ctx context.Context, p domain.MemberPayment) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO member_payments (id, member_id, amount_cents, method, paid_at, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.MemberID, p.AmountCents, string(p.Method), p.PaidAt.UTC(), mapStringNull(p.Notes), p.CreatedAt.UTC(),
	)
	return mapWriteErr(err)
}

func (r *membersRepo) ListPayments(ctx context.Context, memberID string) ([]domain.MemberPayment, error) {
	var rows []memberPaymentRow
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(`
		SELECT id, member_id, amount_cents, method, paid_at, notes, created_at
		FROM member_payments WHERE member_id = ? ORDER BY paid_at, id`), memberID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MemberPayment, len(rows))
	for i, row := range rows {
		out[i] = domain.MemberPayment{
			ID:          row.ID,
			MemberID:    row.MemberID,
			AmountCents: row.AmountCents,
			Method:      domain.PaymentMethod(row.Method),
			PaidAt:      row.PaidAt.UTC(),
			Notes:       mapNullString(row.Notes),
			CreatedAt:   row.CreatedAt.UTC(),
		}
	}
	return out, nil
}

func (r *membersRepo) PaidBySemester(ctx context.Context, semesterID string) (map[string]int64, error) {
	var rows []struct {
		MemberID string `db:"member_id"`
		Paid     int64  `db:"paid"`
	}
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(`
		SELECT m.id AS member_id, COALESCE(SUM(p.amount_cents), 0) AS paid
		FROM members m
		LEFT JOIN member_payments p ON p.member_id = m.id
		WHERE m.semester_id = ?
		GROUP BY m.id`), semesterID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.MemberID] = row.Paid
	}
	return out, nil
}
