// Package sqlstore implements store.Store over database/sql via sqlx. The
// same queries run on SQLite (modernc) and PostgreSQL (lib/pq); they are
// written with ? placeholders and rebound for the active driver.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aussiebroadwan/treasury/internal/treasury/store"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

type Store struct {
	db      *sqlx.DB
	dialect Dialect
}

// Open connects using the named dialect. For sqlite dsn is a file path, for
// postgres a connection URL.
func Open(dialect Dialect, dsn string) (*Store, error) {
	switch dialect {
	case DialectSQLite, "":
		return NewSQLite(dsn)
	case DialectPostgres:
		return NewPostgres(dsn)
	}
	return nil, fmt.Errorf("sqlstore: unsupported driver %q", dialect)
}

// NewSQLite opens (creating if needed) the database file at path. Foreign
// keys are enforced and write transactions take the lock up front so that
// concurrent writers queue on busy_timeout instead of failing.
func NewSQLite(path string) (*Store, error) {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Set("_txlock", "immediate")
	dsn := "file:" + path + "?" + q.Encode()

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	// modernc registers as "sqlite"; sqlx picks ? bindvars from "sqlite3".
	return &Store{db: sqlx.NewDb(db, "sqlite3"), dialect: DialectSQLite}, nil
}

// NewPostgres opens a PostgreSQL connection pool.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, dialect: DialectPostgres}, nil
}

func (s *Store) Dialect() Dialect { return s.dialect }

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users           { return &usersRepo{q: s.db} }
func (s *Store) Roles() store.Roles           { return &rolesRepo{q: s.db} }
func (s *Store) Semesters() store.Semesters   { return &semestersRepo{q: s.db} }
func (s *Store) Members() store.Members       { return &membersRepo{q: s.db} }
func (s *Store) Dues() store.Dues             { return &duesRepo{q: s.db} }
func (s *Store) Committees() store.Committees { return &committeesRepo{q: s.db} }
func (s *Store) Ledger() store.Ledger         { return &ledgerRepo{q: s.db} }
func (s *Store) Events() store.Events         { return &eventsRepo{q: s.db} }
func (s *Store) Audit() store.Audit           { return &auditRepo{q: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapWriteErr turns unique-constraint violations from either driver into
// store.ErrAlreadyExists.
func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		}
	}

	var pe *pq.Error
	if errors.As(err, &pe) && pe.Code == "23505" {
		return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
	}
	return err
}

// affected reports whether an UPDATE touched at least one row.
func affected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
