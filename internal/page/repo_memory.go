package page

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryRepo keeps sessions in process. A zero ttl never expires.
func NewMemoryRepo(ttl time.Duration) *MemoryRepo {
	return &MemoryRepo{data: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	entry, ok := r.data[id]
	r.mu.RUnlock()
	if !ok || r.expired(entry) {
		return nil, ErrNotFound
	}
	var st State
	if err := json.Unmarshal(entry.data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *MemoryRepo) Save(ctx context.Context, st *State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	entry := memoryEntry{data: data}
	if r.ttl > 0 {
		entry.expires = r.now().Add(r.ttl)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[st.ID] = entry
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, id)
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (r *MemoryRepo) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, entry := range r.data {
		if r.expired(entry) {
			delete(r.data, id)
			n++
		}
	}
	return n
}

func (r *MemoryRepo) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && !r.now().Before(e.expires)
}
