package sqlstore

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/jmoiron/sqlx"
)

type userRow struct {
	ID           string         `db:"id"`
	Email        string         `db:"email"`
	Phone        sql.NullString `db:"phone"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	PasswordHash string         `db:"password_hash"`
	Status       string         `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
	LastLoginAt  sql.NullTime   `db:"last_login_at"`
	ApprovedBy   sql.NullString `db:"approved_by"`
	ApprovedAt   sql.NullTime   `db:"approved_at"`
}

const userColumns = `id, email, phone, first_name, last_name, password_hash, status,
	created_at, last_login_at, approved_by, approved_at`

func mapUser(row userRow) domain.User {
	return domain.User{
		ID:           row.ID,
		Email:        row.Email,
		Phone:        mapNullString(row.Phone),
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		PasswordHash: row.PasswordHash,
		Status:       domain.UserStatus(row.Status),
		CreatedAt:    row.CreatedAt.UTC(),
		LastLoginAt:  mapNullTimePtr(row.LastLoginAt),
		ApprovedBy:   mapNullString(row.ApprovedBy),
		ApprovedAt:   mapNullTimePtr(row.ApprovedAt),
	}
}

type usersRepo struct {
	q sqlx.ExtContext
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO users (id, email, phone, first_name, last_name, password_hash, status,
			created_at, approved_by, approved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		u.ID, strings.ToLower(u.Email), mapStringNull(u.Phone), u.FirstName, u.LastName,
		u.PasswordHash, string(u.Status), u.CreatedAt.UTC(),
		mapStringNull(u.ApprovedBy), mapOptionalTime(u.ApprovedAt),
	)
	return mapWriteErr(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.q, &row,
		r.q.Rebind(`SELECT `+userColumns+` FROM users WHERE email = ?`), strings.ToLower(email))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

// ListUsers returns users ordered by name. An empty status lists everyone.
func (r *usersRepo) ListUsers(ctx context.Context, status domain.UserStatus) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY last_name, first_name, id`

	var rows []userRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), args...); err != nil {
		return nil, err
	}
	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = mapUser(row)
	}
	return users, nil
}

func (r *usersRepo) ListActiveUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := sqlx.SelectContext(ctx, r.q, &ids,
		r.q.Rebind(`SELECT id FROM users WHERE status = ? ORDER BY created_at, id`), string(domain.UserActive))
	return ids, err
}

// SetStatus changes the account status. Activation records who approved it.
func (r *usersRepo) SetStatus(ctx context.Context, userID string, status domain.UserStatus, actorID string, at time.Time) error {
	var err error
	if status == domain.UserActive {
		_, err = r.q.ExecContext(ctx, r.q.Rebind(`
			UPDATE users SET status = ?, approved_by = ?, approved_at = ? WHERE id = ?`),
			string(status), actorID, at.UTC(), userID)
	} else {
		_, err = r.q.ExecContext(ctx, r.q.Rebind(`UPDATE users SET status = ? WHERE id = ?`),
			string(status), userID)
	}
	return err
}

func (r *usersRepo) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE users SET last_login_at = ? WHERE id = ?`), at.UTC(), userID)
	return err
}

func (r *usersRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM users`)
	return n, err
}
