package database

import (
	"context"
	"testing"
)

func TestOpen_RejectsMalformedDSN(t *testing.T) {
	db, err := OpenWithPool(context.Background(), "not a dsn", Pool{})
	if err == nil {
		db.Close()
		t.Fatal("expected an error for a DSN without a database separator")
	}
}
