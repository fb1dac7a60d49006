package antispam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultLedgerKey is the store key of the submission ledger.
const DefaultLedgerKey = "tf_submits"

// ErrCorruptLedger marks ledger data that is present but unreadable.
var ErrCorruptLedger = errors.New("corrupt rate-limit ledger")

// Ledger is the sliding window of accepted submission timestamps, persisted
// as a JSON array of epoch milliseconds.  Every failure fails open: a
// missing, unreadable, or unwritable ledger reads as empty.
type Ledger struct {
	store  Store
	key    string
	window time.Duration
	log    *zap.SugaredLogger
}

// NewLedger binds a ledger to one key of store.
func NewLedger(store Store, key string, window time.Duration, log *zap.SugaredLogger) *Ledger {
	if key == "" {
		key = DefaultLedgerKey
	}
	if log == nil {
		log = zap.S()
	}
	return &Ledger{store: store, key: key, window: window, log: log}
}

// Recent loads the ledger, drops entries older than the window, and returns
// the rest.  The store is only written when pruning changed something; a
// ledger pruned to nothing (or unreadable) is deleted instead of kept as [].
func (l *Ledger) Recent(ctx context.Context, now time.Time) []int64 {
	entries, present := l.load(ctx)

	cutoff := now.Add(-l.window).UnixMilli()
	kept := make([]int64, 0, len(entries))
	for _, ts := range entries {
		if ts > cutoff {
			kept = append(kept, ts)
		}
	}

	switch {
	case !present:
	case len(kept) == 0:
		l.remove(ctx)
	case len(kept) < len(entries):
		l.save(ctx, kept)
	}
	return kept
}

// Append records one submission at now.
func (l *Ledger) Append(ctx context.Context, now time.Time) {
	entries, _ := l.load(ctx)
	entries = append(entries, now.UnixMilli())
	l.save(ctx, entries)
}

// load reports whether the store held anything under the key, readable or
// not, alongside the decoded entries.
func (l *Ledger) load(ctx context.Context) ([]int64, bool) {
	raw, err := l.store.Load(ctx, l.key)
	if err != nil {
		l.log.Warnw("ledger load failed, treating as empty", "key", l.key, "err", err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	entries, err := decodeLedger(raw)
	if err != nil {
		l.log.Warnw("ledger decode failed, treating as empty", "key", l.key, "err", err)
		return nil, true
	}
	return entries, true
}

func (l *Ledger) remove(ctx context.Context) {
	if err := l.store.Delete(ctx, l.key); err != nil {
		l.log.Warnw("ledger delete failed", "key", l.key, "err", err)
	}
}

func (l *Ledger) save(ctx context.Context, entries []int64) {
	if entries == nil {
		entries = []int64{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		l.log.Warnw("ledger encode failed", "key", l.key, "err", err)
		return
	}
	if err := l.store.Save(ctx, l.key, raw); err != nil {
		l.log.Warnw("ledger save failed", "key", l.key, "err", err)
	}
}

// decodeLedger parses a JSON array of numbers.  Empty input is an empty
// ledger.
func decodeLedger(raw []byte) ([]int64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var nums []float64
	if err := json.Unmarshal(raw, &nums); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLedger, err)
	}
	out := make([]int64, 0, len(nums))
	for _, n := range nums {
		out = append(out, int64(n))
	}
	return out, nil
}
