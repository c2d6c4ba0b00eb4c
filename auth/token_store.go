package auth

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-storefront/core"
)

// MemoryTokenStore keeps the credential in process memory. It is the default
// store; embedders that need the session to survive restarts use the sqlstore
// package instead.
type MemoryTokenStore struct {
	mu        sync.Mutex
	raw       string
	expiresAt time.Time
	now       func() time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Get returns the stored token, or an empty string once its deadline has
// passed. Expired entries are dropped on read.
func (s *MemoryTokenStore) Get(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raw == "" {
		return "", nil
	}
	if !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt) {
		s.raw = ""
		s.expiresAt = time.Time{}
		return "", nil
	}
	return s.raw, nil
}

func (s *MemoryTokenStore) Set(_ context.Context, raw string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
	s.expiresAt = expiresAt
	return nil
}

func (s *MemoryTokenStore) Delete(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = ""
	s.expiresAt = time.Time{}
	return nil
}

var _ core.TokenStore = (*MemoryTokenStore)(nil)
