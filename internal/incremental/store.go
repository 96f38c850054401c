package incremental

import (
	"context"
	"sync"
)

// StateStore is the persistence port for incremental state, keyed by
// repository identity. The engine defines only the shape; callers inject
// file-based, database, or in-memory storage.
//
// Load returns (nil, nil) for a missing, corrupt, or version-incompatible
// state — the engine degrades to a full re-analysis instead of failing.
// The store provides no locking; concurrent analyses of the same repository
// race last-writer-wins and callers must serialize per-repository runs.
type StateStore interface {
	Load(ctx context.Context, repoKey string) (*State, error)
	Save(ctx context.Context, repoKey string, state *State) error
}

// MemoryStore keeps states in process memory. Useful for tests and for
// callers that handle persistence themselves.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*State
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*State)}
}

// Load returns the stored state for a repository, or nil.
func (m *MemoryStore) Load(_ context.Context, repoKey string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.states[repoKey], nil
}

// Save stores the state for a repository.
func (m *MemoryStore) Save(_ context.Context, repoKey string, state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[repoKey] = state
	return nil
}
