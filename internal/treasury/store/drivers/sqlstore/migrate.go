package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/treasury/internal/treasury/store/drivers/sqlstore/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ApplyMigrations applies any pending migrations for the store's dialect from
// the schema embedded in the binary.
func (s *Store) ApplyMigrations() error {
	instance, err := s.migrator()
	if err != nil {
		return err
	}

	err = instance.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// MigrationVersion reports the applied schema version and whether the last
// migration left the database dirty.
func (s *Store) MigrationVersion() (uint, bool, error) {
	instance, err := s.migrator()
	if err != nil {
		return 0, false, err
	}
	v, dirty, err := instance.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func (s *Store) migrator() (*migrate.Migrate, error) {
	driver, err := migrationDriver(s.dialect, s.db.DB)
	if err != nil {
		return nil, err
	}

	source, err := iofs.New(migrations.Migrations, string(s.dialect))
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance("iofs", source, string(s.dialect), driver)
}

func migrationDriver(d Dialect, db *sql.DB) (database.Driver, error) {
	switch d {
	case DialectSQLite:
		return sqlite.WithInstance(db, &sqlite.Config{})
	case DialectPostgres:
		return postgres.WithInstance(db, &postgres.Config{})
	}
	return nil, fmt.Errorf("sqlstore: no migration driver for %q", d)
}
