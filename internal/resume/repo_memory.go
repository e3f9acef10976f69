package resume

import (
	"context"
	"sync"
)

// MemoryRepo keeps resume content in process memory, keyed by user id.
type MemoryRepo struct {
	accounts Accounts

	mu       sync.RWMutex
	contents map[string]Content
}

func NewMemoryRepo(accounts Accounts) *MemoryRepo {
	return &MemoryRepo{accounts: accounts, contents: make(map[string]Content)}
}

func (r *MemoryRepo) Get(ctx context.Context, userID string) (Record, error) {
	identity, err := r.accounts.Identity(ctx, userID)
	if err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	content := r.contents[userID]
	r.mu.RUnlock()
	return Record{Identity: identity, Content: content.clone()}, nil
}

func (r *MemoryRepo) Put(ctx context.Context, userID string, content Content) error {
	if _, err := r.accounts.Identity(ctx, userID); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contents[userID] = content.clone()
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.accounts.Identity(ctx, userID); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contents, userID)
	return nil
}
