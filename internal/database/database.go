// Package database centralises sqlx connection helpers for the ledger
// backend.  The driver is go-sql-driver/mysql, which also serves MariaDB.
//
// Public entry points:
//
//	Open(ctx, dsn)              – pool with the default limits.
//	OpenWithPool(ctx, dsn, p)   – caller-tuned limits.
//
// Both Ping before returning so bootstrap fails fast on a bad DSN.  Callers
// Close() the returned *sqlx.DB on shutdown.
package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Pool bounds one connection pool.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// DefaultPool suits a single ledger table: short reads and one upsert per
// submission.
var DefaultPool = Pool{MaxOpen: 10, MaxIdle: 3, MaxLifetime: 30 * time.Minute}

// Open dials dsn with DefaultPool.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	return OpenWithPool(ctx, dsn, DefaultPool)
}

// OpenWithPool dials dsn with the given limits.  Zero fields keep the
// defaults.
func OpenWithPool(ctx context.Context, dsn string, p Pool) (*sqlx.DB, error) {
	if p.MaxOpen <= 0 {
		p.MaxOpen = DefaultPool.MaxOpen
	}
	if p.MaxIdle <= 0 {
		p.MaxIdle = DefaultPool.MaxIdle
	}
	if p.MaxLifetime <= 0 {
		p.MaxLifetime = DefaultPool.MaxLifetime
	}

	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(p.MaxOpen)
	db.SetMaxIdleConns(p.MaxIdle)
	db.SetConnMaxLifetime(p.MaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}
