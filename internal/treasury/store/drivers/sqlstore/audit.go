package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/domain"
	"github.com/jmoiron/sqlx"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type auditRow struct {
	ID         string         `db:"id"`
	ActorID    string         `db:"actor_id"`
	Action     string         `db:"action"`
	TargetType string         `db:"target_type"`
	TargetID   sql.NullString `db:"target_id"`
	Details    string         `db:"details"`
	CreatedAt  time.Time      `db:"created_at"`
}

type auditRepo struct {
	q sqlx.ExtContext
}

func (r *auditRepo) Append(ctx context.Context, e domain.AuditEntry) error {
	details := e.Details
	if details == nil {
		details = map[string]any{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("sqlstore: encode audit details: %w", err)
	}

	_, err = r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO audit_log (id, actor_id, action, target_type, target_id, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		e.ID, e.ActorID, string(e.Action), e.TargetType, mapStringNull(e.TargetID), string(raw), e.CreatedAt.UTC(),
	)
	return mapWriteErr(err)
}

// List returns entries newest first. Limit defaults to 50 and is capped at 200.
func (r *auditRepo) List(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, error) {
	var (
		where []string
		args  []any
	)
	if f.ActorID != "" {
		where = append(where, "actor_id = ?")
		args = append(args, f.ActorID)
	}
	if f.Action != "" {
		where = append(where, "action = ?")
		args = append(args, string(f.Action))
	}
	if f.TargetType != "" {
		where = append(where, "target_type = ?")
		args = append(args, f.TargetType)
	}
	if f.TargetID != "" {
		where = append(where, "target_id = ?")
		args = append(args, f.TargetID)
	}
	if f.Since != nil {
		where = append(where, "created_at >= ?")
		args = append(args, f.Since.UTC())
	}
	if f.Until != nil {
		where = append(where, "created_at < ?")
		args = append(args, f.Until.UTC())
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	limit = min(limit, maxAuditLimit)
	offset := max(f.Offset, 0)

	query := `SELECT id, actor_id, action, target_type, target_id, details, created_at FROM audit_log`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var rows []auditRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), args...); err != nil {
		return nil, err
	}

	out := make([]domain.AuditEntry, len(rows))
	for i, row := range rows {
		details := map[string]any{}
		if row.Details != "" {
			if err := json.Unmarshal([]byte(row.Details), &details); err != nil {
				return nil, fmt.Errorf("sqlstore: decode audit %s: %w", row.ID, err)
			}
		}
		out[i] = domain.AuditEntry{
			ID:         row.ID,
			ActorID:    row.ActorID,
			Action:     domain.AuditAction(row.Action),
			TargetType: row.TargetType,
			TargetID:   mapNullString(row.TargetID),
			Details:    details,
			CreatedAt:  row.CreatedAt.UTC(),
		}
	}
	return out, nil
}
