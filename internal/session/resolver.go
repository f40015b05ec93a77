package session

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultCookieName is the session cookie set by the identity-provider
// integration.
const DefaultCookieName = "bff_session"

// cookieClaims is the JWT carried by the session cookie. The subject is the
// session id; everything else about the caller is loaded server-side.
type cookieClaims struct {
	jwt.RegisteredClaims
}

// CookieResolver resolves sessions from an http-only session cookie. The
// cookie holds a signed JWT whose subject points at a redis session record;
// a bad signature, a missing cookie or a missing record all resolve to "no
// session" rather than an error.
type CookieResolver struct {
	cookieName string
	secret     []byte
	store      *Store
}

// NewCookieResolver creates a cookie-based session resolver. The secret is
// injected rather than read from process-global state so tests can
// substitute their own.
func NewCookieResolver(cookieName string, secret []byte, store *Store) *CookieResolver {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &CookieResolver{
		cookieName: cookieName,
		secret:     secret,
		store:      store,
	}
}

func (r *CookieResolver) Resolve(ctx context.Context, req *http.Request) (*Session, error) {
	cookie, err := req.Cookie(r.cookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return nil, nil
	}

	sessionID, ok := r.validate(cookie.Value)
	if !ok {
		return nil, nil
	}

	record, err := r.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session record: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	return &Session{
		UserID:      record.UserID,
		Email:       record.Email,
		Role:        record.Role,
		AccessToken: record.AccessToken,
	}, nil
}

// validate parses the cookie JWT and returns the session id it names.
func (r *CookieResolver) validate(raw string) (string, bool) {
	token, err := jwt.ParseWithClaims(raw, &cookieClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(*cookieClaims)
	if !ok || claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}

// MintCookieToken signs a session cookie JWT for the given session id. Used
// by the identity-provider callback when it establishes a session, and by
// tests.
func MintCookieToken(secret []byte, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &cookieClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}
