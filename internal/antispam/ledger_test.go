package antispam

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
)

func TestLedger_PrunesAndPersists(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_600_000)

	old := now.Add(-11 * time.Minute).UnixMilli()
	fresh := now.Add(-time.Minute).UnixMilli()
	_ = store.Save(ctx, DefaultLedgerKey, []byte(`[`+itoa(old)+`,`+itoa(fresh)+`]`))

	l := NewLedger(store, DefaultLedgerKey, 10*time.Minute, zaptest.NewLogger(t).Sugar())
	got := l.Recent(ctx, now)
	if diff := cmp.Diff([]int64{fresh}, got); diff != "" {
		t.Fatalf("Recent mismatch (-want +got):\n%s", diff)
	}

	raw, _ := store.Load(ctx, DefaultLedgerKey)
	if string(raw) != `[`+itoa(fresh)+`]` {
		t.Fatalf("pruned ledger not written back: %s", raw)
	}
}

// countingStore records writes so tests can assert when none happen.
type countingStore struct {
	*MemoryStore
	saves, deletes int
}

func (c *countingStore) Save(ctx context.Context, key string, data []byte) error {
	c.saves++
	return c.MemoryStore.Save(ctx, key, data)
}

func (c *countingStore) Delete(ctx context.Context, key string) error {
	c.deletes++
	return c.MemoryStore.Delete(ctx, key)
}

func TestLedger_ExpiredLedgerIsDeleted(t *testing.T) {
	store := &countingStore{MemoryStore: NewMemoryStore()}
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_600_000)
	old := now.Add(-11 * time.Minute).UnixMilli()
	_ = store.MemoryStore.Save(ctx, DefaultLedgerKey, []byte(`[`+itoa(old)+`]`))

	l := NewLedger(store, DefaultLedgerKey, 10*time.Minute, zaptest.NewLogger(t).Sugar())
	if got := l.Recent(ctx, now); len(got) != 0 {
		t.Fatalf("Recent = %v, want empty", got)
	}
	if raw, _ := store.Load(ctx, DefaultLedgerKey); raw != nil {
		t.Fatalf("expired ledger kept: %s", raw)
	}
	if store.saves != 0 || store.deletes != 1 {
		t.Fatalf("saves=%d deletes=%d, want 0 and 1", store.saves, store.deletes)
	}
}

func TestLedger_UnchangedLedgerIsNotRewritten(t *testing.T) {
	store := &countingStore{MemoryStore: NewMemoryStore()}
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_600_000)

	l := NewLedger(store, DefaultLedgerKey, 10*time.Minute, zaptest.NewLogger(t).Sugar())
	l.Recent(ctx, now) // missing key
	if store.saves != 0 || store.deletes != 0 || len(store.data) != 0 {
		t.Fatalf("missing ledger: saves=%d deletes=%d keys=%d", store.saves, store.deletes, len(store.data))
	}

	l.Append(ctx, now)
	l.Recent(ctx, now.Add(time.Minute))
	if store.saves != 1 || store.deletes != 0 {
		t.Fatalf("fresh ledger: saves=%d deletes=%d, want 1 and 0", store.saves, store.deletes)
	}
}

func TestLedger_CorruptOrMissingFailsOpen(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_000)
	log := zaptest.NewLogger(t).Sugar()

	for name, raw := range map[string]string{
		"missing": "",
		"garbage": "not json",
		"object":  `{"a":1}`,
	} {
		store := NewMemoryStore()
		if raw != "" {
			_ = store.Save(ctx, DefaultLedgerKey, []byte(raw))
		}
		l := NewLedger(store, DefaultLedgerKey, DefaultWindow, log)
		if got := l.Recent(ctx, now); len(got) != 0 {
			t.Errorf("%s: Recent = %v, want empty", name, got)
		}
		l.Append(ctx, now)
		if got := l.Recent(ctx, now); len(got) != 1 {
			t.Errorf("%s: after Append, Recent = %v, want one entry", name, got)
		}
	}
}

type failingStore struct{}

func (failingStore) Load(context.Context, string) ([]byte, error) { return nil, errors.New("boom") }
func (failingStore) Save(context.Context, string, []byte) error   { return errors.New("boom") }
func (failingStore) Delete(context.Context, string) error           { return errors.New("boom") }

func TestLedger_StoreErrorsFailOpen(t *testing.T) {
	l := NewLedger(failingStore{}, "", DefaultWindow, zaptest.NewLogger(t).Sugar())
	if got := l.Recent(context.Background(), time.Now()); len(got) != 0 {
		t.Fatalf("Recent = %v, want empty", got)
	}
	l.Append(context.Background(), time.Now())
}

func TestFileStore_RoundTripAndCorruption(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "ledger.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if raw, err := store.Load(ctx, "k"); err != nil || raw != nil {
		t.Fatalf("missing file: (%s, %v)", raw, err)
	}

	if err := store.Save(ctx, "k", []byte(`[1,2]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "other", []byte(`[3]`)); err != nil {
		t.Fatalf("Save other: %v", err)
	}
	raw, err := store.Load(ctx, "k")
	if err != nil || string(raw) != `[1,2]` {
		t.Fatalf("Load: (%s, %v)", raw, err)
	}

	if err := os.WriteFile(path, []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(ctx, "k"); !errors.Is(err, ErrCorruptLedger) {
		t.Fatalf("corrupt file: err = %v, want ErrCorruptLedger", err)
	}
	if err := store.Save(ctx, "k", []byte(`[9]`)); err != nil {
		t.Fatalf("Save over corrupt file: %v", err)
	}
	if raw, _ := store.Load(ctx, "k"); string(raw) != `[9]` {
		t.Fatalf("after rewrite: %s", raw)
	}
}

func TestFileStore_ExpiredVisitorKeysDisappear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	log := zaptest.NewLogger(t).Sugar()
	start := time.UnixMilli(1_700_000_000_000)

	const visitors = 50
	for i := 0; i < visitors; i++ {
		key := DefaultLedgerKey + ":visitor-" + strconv.Itoa(i)
		NewLedger(store, key, DefaultWindow, log).Append(ctx, start)
	}
	if doc, _ := store.read(); len(doc) != visitors {
		t.Fatalf("keys after appends = %d, want %d", len(doc), visitors)
	}

	later := start.Add(24 * time.Hour)
	for i := 0; i < visitors; i++ {
		key := DefaultLedgerKey + ":visitor-" + strconv.Itoa(i)
		if got := NewLedger(store, key, DefaultWindow, log).Recent(ctx, later); len(got) != 0 {
			t.Fatalf("%s: Recent = %v, want empty", key, got)
		}
	}
	doc, err := store.read()
	if err != nil || len(doc) != 0 {
		t.Fatalf("keys a day later = %d (err %v), want 0", len(doc), err)
	}

	if err := store.Delete(ctx, "never-written"); err != nil {
		t.Fatalf("Delete of missing key: %v", err)
	}
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
