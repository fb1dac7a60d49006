// internal/antispam/store.go
//
// Leadmodal – keyed byte stores backing the rate-limit ledger.
//
// Context
//   The ledger is the only state that outlives a modal, and in the browser it
//   lived in a key/value slot.  Store mirrors that shape: Load a key, Save a
//   key, Delete a key.  A missing key loads as (nil, nil) and deletes as a
//   no-op.  Three backends ship here:
//
//   •  MemoryStore – process-local, used by tests and single-node demos.
//   •  FileStore   – one JSON object on disk, key → raw ledger array.
//   •  SQLStore    – a MySQL table via sqlx (see sqlstore.go).
//
//   None of them lock across processes.  Two writers racing on a key may drop
//   an entry; the ledger is spam deterrence, not a security boundary.
//
//------------------------------------------------------------------------------

package antispam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store persists raw ledger bytes by key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// -----------------------------------------------------------------------------
// MemoryStore
// -----------------------------------------------------------------------------

// MemoryStore is a concurrency-safe in-process Store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), b...), nil
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	m.data[key] = append([]byte(nil), data...)
	m.mu.Unlock()
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// -----------------------------------------------------------------------------
// FileStore
// -----------------------------------------------------------------------------

// FileStore keeps every key in one JSON document.  Writes go to a temp file
// that is renamed over the original, so readers never see half a document.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore prepares the parent directory of path.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ledger dir %s: %w", filepath.Dir(path), err)
	}
	return &FileStore{path: path}, nil
}

// Load implements Store.  A missing file loads as empty.  An unreadable
// document is reported as ErrCorruptLedger so the ledger can fail open.
func (f *FileStore) Load(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	return doc[key], nil
}

// Save implements Store.  A corrupt document is replaced rather than kept.
func (f *FileStore) Save(_ context.Context, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		doc = make(map[string]json.RawMessage)
	}
	doc[key] = json.RawMessage(data)
	return f.write(doc)
}

// Delete implements Store.  Nothing is written when the key is absent.  A
// corrupt document is replaced by an empty one.
func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return f.write(make(map[string]json.RawMessage))
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return f.write(doc)
}

// write replaces the document through a temp file and a rename.
func (f *FileStore) write(doc map[string]json.RawMessage) error {
	out, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode ledger file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".ledger-*")
	if err != nil {
		return fmt.Errorf("ledger temp file: %w", err)
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write ledger temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close ledger temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace ledger file %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) read() (map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger file %s: %w", f.path, err)
	}
	if len(raw) == 0 {
		return make(map[string]json.RawMessage), nil
	}

	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptLedger, f.path, err)
	}
	return doc, nil
}
