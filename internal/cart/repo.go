package cart

import (
	"context"
	"sync"
)

// Repository persists cart state per session. Both implementations hold
// session state only; carts expire with the session rather than being
// durable records.
type Repository interface {
	Load(ctx context.Context, sessionID string) (State, error)
	Save(ctx context.Context, sessionID string, state State) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryRepository keeps carts in process memory. It is the default when
// no Redis URL is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]State
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: map[string]State{}}
}

func (r *MemoryRepository) Load(ctx context.Context, sessionID string) (State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.carts[sessionID]
	if !ok {
		return State{}, nil
	}
	// Copy the line slice so callers cannot alias stored state.
	return State{Items: state.Snapshot()}, nil
}

func (r *MemoryRepository) Save(ctx context.Context, sessionID string, state State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[sessionID] = State{Items: state.Snapshot()}
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}
