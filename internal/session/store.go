package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Record is the server-side session state written by the identity-provider
// integration on login and deleted on logout. The access token lives only
// here; it never travels to the browser.
type Record struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	AccessToken string    `json:"accessToken"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Store keeps session records in redis, keyed by session id.
type Store struct {
	client     redis.UniversalClient
	prefix     string
	defaultTTL time.Duration
}

// NewStore creates a redis-backed session store.
func NewStore(client redis.UniversalClient, prefix string, defaultTTL time.Duration) *Store {
	if prefix == "" {
		prefix = "session:"
	}
	if defaultTTL <= 0 {
		defaultTTL = 24 * time.Hour
	}
	return &Store{
		client:     client,
		prefix:     prefix,
		defaultTTL: defaultTTL,
	}
}

// Put writes a session record, expiring it at record.ExpiresAt.
func (s *Store) Put(ctx context.Context, record *Record) error {
	if record.ID == "" {
		return fmt.Errorf("session id is required")
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if record.ExpiresAt.IsZero() {
		record.ExpiresAt = time.Now().Add(s.defaultTTL)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	key := s.prefix + record.ID
	if err := s.client.Set(ctx, key, data, time.Until(record.ExpiresAt)).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	return nil
}

// Get returns the record for the given session id, or nil if it is absent
// or expired.
func (s *Store) Get(ctx context.Context, sessionID string) (*Record, error) {
	data, err := s.client.Get(ctx, s.prefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	if !record.ExpiresAt.IsZero() && time.Now().After(record.ExpiresAt) {
		_ = s.Delete(ctx, sessionID)
		return nil, nil
	}

	return &record, nil
}

// Delete removes a session record.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.prefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
