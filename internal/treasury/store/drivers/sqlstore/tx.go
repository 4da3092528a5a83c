package sqlstore

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/treasury/internal/treasury/store"
	"github.com/jmoiron/sqlx"
)

type txStore struct {
	tx *sqlx.Tx
}

func newTx(tx *sqlx.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open

// Ping is a no-op for transactions; the connection is already held.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users           { return &usersRepo{q: t.tx} }
func (t *txStore) Roles() store.Roles           { return &rolesRepo{q: t.tx} }
func (t *txStore) Semesters() store.Semesters   { return &semestersRepo{q: t.tx} }
func (t *txStore) Members() store.Members       { return &membersRepo{q: t.tx} }
func (t *txStore) Dues() store.Dues             { return &duesRepo{q: t.tx} }
func (t *txStore) Committees() store.Committees { return &committeesRepo{q: t.tx} }
func (t *txStore) Ledger() store.Ledger         { return &ledgerRepo{q: t.tx} }
func (t *txStore) Events() store.Events         { return &eventsRepo{q: t.tx} }
func (t *txStore) Audit() store.Audit           { return &auditRepo{q: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
