package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"authportal/internal/cache"
)

const sessionKeyPrefix = "session:"

// ErrSessionNotFound is returned when a session ID has no server-side record,
// either because it was logged out or because its TTL elapsed.
var ErrSessionNotFound = errors.New("session not found")

// SessionRecord is the server-side half of a session: the identity triple
// bound at login plus the permanence flag from the remember checkbox.
type SessionRecord struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Permanent bool   `json:"permanent"`
}

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	Store(ctx context.Context, sessionID string, rec SessionRecord, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*SessionRecord, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionStore keeps session records in Redis. Deleting the record is what
// makes logout immediate: a signed cookie alone can never resolve without it.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Store writes the session record with a TTL.
func (s *SessionStore) Store(ctx context.Context, sessionID string, rec SessionRecord, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+sessionID, payload, ttl)
}

// Get retrieves the session record, or ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*SessionRecord, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session record: %w", err)
	}
	if data == nil {
		return nil, ErrSessionNotFound
	}

	var rec SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session record: %w", err)
	}
	return &rec, nil
}

// Delete removes the session record.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+sessionID)
}
