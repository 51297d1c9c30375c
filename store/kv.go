package store

import "errors"

var (
	// ErrNotFound reports that the requested user has no entry in the
	// accounts document.
	ErrNotFound = errors.New("user not found in store")
	// ErrCorruptStore reports that stored data exists but cannot be
	// decoded. It is deliberately distinct from ErrNotFound: corrupted
	// data must never be mistaken for absent data and silently reset.
	ErrCorruptStore = errors.New("stored data is corrupt")
)

// KV is the synchronous string-keyed store the persistence layer runs on.
// Get reports ok=false when the key has never been written.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// MemKV is an in-memory KV for tests and ephemeral runs.
type MemKV struct {
	values map[string]string
}

// NewMemKV returns an empty in-memory store.
func NewMemKV() *MemKV {
	return &MemKV{values: map[string]string{}}
}

func (m *MemKV) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemKV) Set(key, value string) error {
	m.values[key] = value
	return nil
}
