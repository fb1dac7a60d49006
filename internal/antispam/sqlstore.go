// internal/antispam/sqlstore.go
//
// MySQL-backed ledger store.
//
// Context
//   Multi-node hosts share one ledger table so a visitor's window follows
//   them across instances.  Schema:
//
//	CREATE TABLE rate_ledger (
//	    ledger_key VARCHAR(191) NOT NULL PRIMARY KEY,
//	    entries    TEXT         NOT NULL,
//	    updated_at DATETIME     NOT NULL
//	);
//
//   The row holds the same JSON array the other stores keep.  Upserts are
//   last-writer-wins, matching the no-locking contract of Store.
//
//------------------------------------------------------------------------------

package antispam

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jmoiron/sqlx"
)

// DefaultLedgerTable is used when SQLStore gets an empty table name.
const DefaultLedgerTable = "rate_ledger"

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// SQLStore implements Store on a sqlx handle.
type SQLStore struct {
	db      *sqlx.DB
	createQ string
	loadQ   string
	upsertQ string
	deleteQ string
}

// NewSQLStore returns a store over table.  The name is interpolated into SQL,
// so it must be a plain identifier.
func NewSQLStore(db *sqlx.DB, table string) (*SQLStore, error) {
	if table == "" {
		table = DefaultLedgerTable
	}
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("ledger table %q is not a plain identifier", table)
	}
	return &SQLStore{
		db: db,
		createQ: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (`+
			`ledger_key VARCHAR(191) NOT NULL PRIMARY KEY, `+
			`entries TEXT NOT NULL, `+
			`updated_at DATETIME NOT NULL)`, table),
		loadQ: fmt.Sprintf(`SELECT entries FROM %s WHERE ledger_key = ?`, table),
		upsertQ: fmt.Sprintf(`INSERT INTO %s (ledger_key, entries, updated_at) VALUES (?, ?, ?) `+
			`ON DUPLICATE KEY UPDATE entries = VALUES(entries), updated_at = VALUES(updated_at)`, table),
		deleteQ: fmt.Sprintf(`DELETE FROM %s WHERE ledger_key = ?`, table),
	}, nil
}

// EnsureTable creates the ledger table when it is missing.
func (s *SQLStore) EnsureTable(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.createQ); err != nil {
		return fmt.Errorf("create ledger table: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLStore) Load(ctx context.Context, key string) ([]byte, error) {
	var entries string
	err := s.db.GetContext(ctx, &entries, s.loadQ, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load ledger %s: %w", key, err)
	}
	return []byte(entries), nil
}

// Save implements Store.
func (s *SQLStore) Save(ctx context.Context, key string, data []byte) error {
	if _, err := s.db.ExecContext(ctx, s.upsertQ, key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("save ledger %s: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.deleteQ, key); err != nil {
		return fmt.Errorf("delete ledger %s: %w", key, err)
	}
	return nil
}
