package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/jmoiron/sqlx"
)

type roleRow struct {
	Name        string `db:"name"`
	Description string `db:"description"`
}

type assignmentRow struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	RoleName  string         `db:"role_name"`
	GrantedBy string         `db:"granted_by"`
	GrantedAt time.Time      `db:"granted_at"`
	RevokedAt sql.NullTime   `db:"revoked_at"`
	RevokedBy sql.NullString `db:"revoked_by"`
}

func mapAssignment(row assignmentRow) domain.RoleAssignment {
	return domain.RoleAssignment{
		ID:        row.ID,
		UserID:    row.UserID,
		RoleName:  row.RoleName,
		GrantedBy: row.GrantedBy,
		GrantedAt: row.GrantedAt.UTC(),
		RevokedAt: mapNullTimePtr(row.RevokedAt),
		RevokedBy: mapNullString(row.RevokedBy),
	}
}

type rolesRepo struct {
	q sqlx.ExtContext
}

func (r *rolesRepo) EnsureRole(ctx context.Context, role domain.Role) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO roles (name, description) VALUES (?, ?)
		ON CONFLICT (name) DO NOTHING`), role.Name, role.Description)
	return err
}

func (r *rolesRepo) GetRole(ctx context.Context, name string) (domain.Role, error) {
	var row roleRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`SELECT name, description FROM roles WHERE name = ?`), name)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return domain.Role{Name: row.Name, Description: row.Description}, nil
}

func (r *rolesRepo) ListRoles(ctx context.Context) ([]domain.Role, error) {
	var rows []roleRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, `SELECT name, description FROM roles ORDER BY name`); err != nil {
		return nil, err
	}
	roles := make([]domain.Role, len(rows))
	for i, row := range rows {
		roles[i] = domain.Role{Name: row.Name, Description: row.Description}
	}
	return roles, nil
}

// CreateAssignment skips the insert instead of failing on a duplicate active
// assignment. A unique violation would abort an enclosing PostgreSQL
// transaction.
func (r *rolesRepo) CreateAssignment(ctx context.Context, a domain.RoleAssignment) (bool, error) {
	ok, err := affected(r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO user_roles (id, user_id, role_name, granted_by, granted_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, role_name) WHERE revoked_at IS NULL DO NOTHING`),
		a.ID, a.UserID, a.RoleName, a.GrantedBy, a.GrantedAt.UTC(),
	))
	return ok, mapWriteErr(err)
}

func (r *rolesRepo) RevokeAssignment(ctx context.Context, userID, roleName, actorID string, at time.Time) (bool, error) {
	return affected(r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE user_roles SET revoked_at = ?, revoked_by = ?
		WHERE user_id = ? AND role_name = ? AND revoked_at IS NULL`),
		at.UTC(), actorID, userID, roleName,
	))
}

func (r *rolesRepo) ActiveRoleNames(ctx context.Context, userID string) ([]string, error) {
	var names []string
	err := sqlx.SelectContext(ctx, r.q, &names, r.q.Rebind(`
		SELECT role_name FROM user_roles
		WHERE user_id = ? AND revoked_at IS NULL
		ORDER BY granted_at, id`), userID)
	return names, err
}

func (r *rolesRepo) ListAssignments(ctx context.Context, userID string) ([]domain.RoleAssignment, error) {
	var rows []assignmentRow
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(`
		SELECT id, user_id, role_name, granted_by, granted_at, revoked_at, revoked_by
		FROM user_roles WHERE user_id = ? ORDER BY granted_at, id`), userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.RoleAssignment, len(rows))
	for i, row := range rows {
		out[i] = mapAssignment(row)
	}
	return out, nil
}

func (r *rolesRepo) CountActiveAssignments(ctx context.Context) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM user_roles WHERE revoked_at IS NULL`)
	return n, err
}
