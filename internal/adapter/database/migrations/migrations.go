// Package migrations embeds the schema for every supported dialect.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Run applies pending migrations for dialect ("postgres" or "sqlite3").
func Run(db *sql.DB, dialect string) error {
	var (
		driver database.Driver
		dir    string
		err    error
	)

	switch dialect {
	case "postgres":
		driver, err = postgres.WithInstance(db, &postgres.Config{})
		dir = "postgres"
	case "sqlite3":
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
		dir = "sqlite"
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	source, err := iofs.New(files, dir)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dialect, driver)
	if err != nil {
		return fmt.Errorf("migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	return nil
}
