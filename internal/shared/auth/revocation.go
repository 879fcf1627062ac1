package auth

import (
	"context"
	"sync"
	"time"
)

// RevocationStore tracks revoked token IDs (jti). Entries may expire
// once the underlying token would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryRevocationStore keeps revoked jtis in process memory. Suitable
// for single-instance deployments and tests.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocationStore constructs an empty in-memory store.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke marks the jti revoked until its ttl elapses. A non-positive
// ttl revokes without expiry.
func (s *MemoryRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ttl > 0 {
		s.expires[jti] = s.now().Add(ttl)
	} else {
		s.expires[jti] = time.Time{}
	}
	return nil
}

// IsRevoked reports whether the jti is currently revoked, dropping
// entries whose expiry has passed.
func (s *MemoryRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	exp, ok := s.expires[jti]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !exp.IsZero() && s.now().After(exp) {
		s.mu.Lock()
		delete(s.expires, jti)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}

var _ RevocationStore = (*MemoryRevocationStore)(nil)
