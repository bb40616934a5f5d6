package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"

	"joiner/internal/adapter/database"
	"joiner/internal/adapter/database/migrations"
)

// NewDB opens a pgx pool behind database/sql, pings it and applies the
// embedded migrations.
func NewDB(ctx context.Context, url string, opts database.Options) (*database.DB, error) {
	if url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	config.MaxConns = 20
	config.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	sqlDB := otelsql.OpenDB(stdlib.GetPoolConnector(pool),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(opts.Name),
	)

	if err := migrations.Run(sqlDB, string(database.Postgres)); err != nil {
		sqlDB.Close()
		pool.Close()
		return nil, err
	}

	db := database.New(database.WithStatementLog(url, sqlDB, opts), database.Postgres)
	db.OnClose(pool.Close)

	return db, nil
}
