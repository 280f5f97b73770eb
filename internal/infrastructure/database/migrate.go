package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/cardboard/core/internal/infrastructure/config"
	"github.com/cardboard/core/migrations"
)

// Migrator applies the embedded schema migrations to a DB.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator prepares a migrator bound to db.
func NewMigrator(db *DB) (*Migrator, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	var instance migratedb.Driver
	switch db.driver {
	case config.DriverPostgres:
		instance, err = postgres.WithInstance(db.DB.DB, &postgres.Config{})
	case config.DriverSQLite:
		instance, err = sqlite.WithInstance(db.DB.DB, &sqlite.Config{})
	default:
		err = fmt.Errorf("unsupported driver %q", db.driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, db.driver, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}

	return &Migrator{m: m}, nil
}

// Up applies all pending migrations. It reports false when the schema was
// already current.
func (mg *Migrator) Up() (bool, error) {
	return mg.changed(mg.m.Up())
}

// Down reverts all migrations.
func (mg *Migrator) Down() (bool, error) {
	return mg.changed(mg.m.Down())
}

// Version returns the current schema version and dirty flag.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Close releases the migration source and the database handle the
// migrator was built on.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (mg *Migrator) changed(err error) (bool, error) {
	if errors.Is(err, migrate.ErrNoChange) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("migration failed: %w", err)
	}
	return true, nil
}

// Migrate brings the schema up to date through a dedicated connection,
// leaving no connection of the serving pool held by the migration driver.
func Migrate(cfg config.DatabaseConfig) error {
	db, err := New(cfg)
	if err != nil {
		return err
	}

	mg, err := NewMigrator(db)
	if err != nil {
		db.Close()
		return err
	}
	defer mg.Close()

	_, err = mg.Up()
	return err
}
