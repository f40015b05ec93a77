// Package binding holds the server-side link between a browser session and
// the tenant it last selected. The browser only ever sees an opaque marker;
// the tenant id behind it lives in redis and is re-verified through the
// tenant provider on every use.
package binding

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultCookieName carries the opaque binding marker.
	DefaultCookieName = "bff_tenant"
	// DefaultCookiePath scopes the marker to the API surface.
	DefaultCookiePath = "/api"
	// DefaultRetention is how long a selection survives without re-selecting.
	DefaultRetention = 30 * 24 * time.Hour

	keyPrefix = "tenantbinding:"
)

// Store maps opaque cookie markers to tenant ids in redis. The binding is a
// hint, never an access grant: callers must re-verify through the tenant
// provider before trusting it.
type Store struct {
	client     redis.UniversalClient
	cookieName string
	cookiePath string
	retention  time.Duration
	secure     bool
}

// Option configures a Store.
type Option func(*Store)

// WithCookie overrides the marker cookie name and path.
func WithCookie(name, path string) Option {
	return func(s *Store) {
		if name != "" {
			s.cookieName = name
		}
		if path != "" {
			s.cookiePath = path
		}
	}
}

// WithRetention overrides the binding lifetime.
func WithRetention(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.retention = d
		}
	}
}

// WithSecureCookie marks the cookie Secure (HTTPS-only transport).
func WithSecureCookie(secure bool) Option {
	return func(s *Store) {
		s.secure = secure
	}
}

// NewStore creates a redis-backed tenant binding store.
func NewStore(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{
		client:     client,
		cookieName: DefaultCookieName,
		cookiePath: DefaultCookiePath,
		retention:  DefaultRetention,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get reads the caller's bound tenant id. An absent or expired binding
// returns "" with no error.
func (s *Store) Get(c *gin.Context) (string, error) {
	marker, ok := s.marker(c)
	if !ok {
		return "", nil
	}

	tenantID, err := s.client.Get(c.Request.Context(), keyPrefix+marker).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("read tenant binding: %w", err)
	}

	return tenantID, nil
}

// Set overwrites the caller's binding with the given tenant id. Callers must
// only invoke this after a successful tenant provider check. Re-selecting is
// idempotent: an existing marker is reused rather than re-minted.
func (s *Store) Set(c *gin.Context, tenantID string) error {
	marker, ok := s.marker(c)
	if !ok {
		marker = uuid.NewString()
	}

	key := keyPrefix + marker
	if err := s.client.Set(c.Request.Context(), key, tenantID, s.retention).Err(); err != nil {
		return fmt.Errorf("write tenant binding: %w", err)
	}

	s.setCookie(c, marker, int(s.retention.Seconds()))
	return nil
}

// Clear removes the caller's binding and expires the marker cookie.
func (s *Store) Clear(c *gin.Context) error {
	marker, ok := s.marker(c)
	if ok {
		if err := s.client.Del(c.Request.Context(), keyPrefix+marker).Err(); err != nil {
			return fmt.Errorf("delete tenant binding: %w", err)
		}
	}

	s.setCookie(c, "", -1)
	return nil
}

// marker reads the opaque binding marker from the request cookie.
func (s *Store) marker(c *gin.Context) (string, bool) {
	cookie, err := c.Request.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// setCookie writes the marker cookie: http-only and same-site so page
// scripts and cross-site requests cannot read or replay it.
func (s *Store) setCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.cookieName,
		Value:    value,
		Path:     s.cookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
