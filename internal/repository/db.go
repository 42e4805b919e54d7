// Package repository holds the SQL-backed persistence for the product
// catalog. Postgres connects through a pgx pool; everything else goes
// through the sqlite driver, which keeps local development file-based.
package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// DB wraps the opened connection. SQL is always usable; Pool is non-nil
// only for Postgres DSNs.
type DB struct {
	SQL  *sql.DB
	Pool *pgxpool.Pool
}

// Open connects using the driver implied by the DSN.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 10 * time.Second
	}

	if isPostgresDSN(cfg.DSN) {
		logger.Info("db.open.postgres")
		pc, err := pgxpool.ParseConfig(cfg.DSN)
		if err != nil {
			logger.Error("db.open.parse_failed", "error", err)
			return nil, err
		}
		if cfg.MaxConns > 0 {
			pc.MaxConns = cfg.MaxConns
		}
		if cfg.MinConns > 0 {
			pc.MinConns = cfg.MinConns
		}
		if cfg.MaxConnLifetime > 0 {
			pc.MaxConnLifetime = cfg.MaxConnLifetime
		}
		if cfg.MaxConnIdleTime > 0 {
			pc.MaxConnIdleTime = cfg.MaxConnIdleTime
		}
		pc.ConnConfig.RuntimeParams["application_name"] = "receipt-scan"

		ctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
		pool, err := pgxpool.NewWithConfig(ctx, pc)
		if err != nil {
			logger.Error("db.open.connect_failed", "error", err)
			return nil, err
		}
		return &DB{SQL: stdlib.OpenDBFromPool(pool), Pool: pool}, nil
	}

	logger.Info("db.open.sqlite", "dsn", cfg.DSN)
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		logger.Error("db.open.connect_failed", "error", err)
		return nil, err
	}
	return &DB{SQL: db}, nil
}

// Close closes the connections gracefully.
func (d *DB) Close(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if d.SQL != nil {
		if err := d.SQL.Close(); err != nil {
			logger.Error("db.close.failed", "error", err)
		}
	}
	if d.Pool != nil {
		d.Pool.Close()
	}
	logger.Info("db.close.ok")
}

// HealthCheck pings the database to catch DSN issues early.
func (d *DB) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if d.Pool != nil {
		return d.Pool.Ping(ctx)
	}
	return d.SQL.PingContext(ctx)
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}
