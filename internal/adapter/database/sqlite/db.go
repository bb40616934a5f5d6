package sqlite

import (
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"

	"joiner/internal/adapter/database"
	"joiner/internal/adapter/database/migrations"
)

const InMemory = ":memory:"

// NewDB opens the sqlite file at path (or an in-memory database) and
// applies the embedded migrations.
func NewDB(path string, opts database.Options) (*database.DB, error) {
	if path == "" {
		path = "joiner.db"
	}

	dsn := "file::memory:?_foreign_keys=on"
	if path != InMemory {
		dsn = fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	}

	sqlDB, err := otelsql.Open("sqlite3", dsn,
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName(opts.Name),
	)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if path == InMemory {
		// Every new connection would get its own empty database.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := migrations.Run(sqlDB, string(database.SQLite)); err != nil {
		sqlDB.Close()
		return nil, err
	}

	if path == InMemory {
		return database.New(sqlDB, database.SQLite), nil
	}

	return database.New(database.WithStatementLog(dsn, sqlDB, opts), database.SQLite), nil
}
