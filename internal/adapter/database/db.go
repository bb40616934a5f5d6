// Package database holds the dialect-neutral handle shared by the
// postgres and sqlite adapters and their repositories.
package database

import (
	"context"
	"database/sql"
	"os"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"

	"joiner/internal/core/telemetry"
	"joiner/pkg/tracing"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
	Dialect      Dialect
	Metrics      *telemetry.AppMetrics

	onClose []func()
}

type Options struct {
	Name   string
	SQLLog bool
}

func New(sqlDB *sql.DB, dialect Dialect) *DB {
	placeholder := squirrel.PlaceholderFormat(squirrel.Question)
	if dialect == Postgres {
		placeholder = squirrel.Dollar
	}

	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(placeholder)

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
		Dialect:      dialect,
	}
}

// OnClose registers fn to run after the sql handle is closed.
func (db *DB) OnClose(fn func()) {
	db.onClose = append(db.onClose, fn)
}

func (db *DB) Close() error {
	err := db.DB.Close()
	for _, fn := range db.onClose {
		fn()
	}
	return err
}

// Traced runs fn inside a database span and counts the operation when
// metrics are attached.
func (db *DB) Traced(ctx context.Context, table, operation string, fn func(context.Context) error) error {
	if db.Metrics != nil {
		db.Metrics.RecordDatabaseOperation(ctx, operation, table)
	}

	return tracing.DatabaseSpan(ctx, string(db.Dialect), table, operation, fn)
}

// WithStatementLog wraps sqlDB so every statement is logged through zerolog.
func WithStatementLog(dsn string, sqlDB *sql.DB, opts Options) *sql.DB {
	if !opts.SQLLog {
		return sqlDB
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("db", opts.Name).Logger()

	return sqldblogger.OpenDriver(dsn, sqlDB.Driver(), zerologadapter.New(logger),
		sqldblogger.WithSQLQueryAsMessage(true),
		sqldblogger.WithMinimumLevel(sqldblogger.LevelDebug),
	)
}
