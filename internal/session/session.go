// Package session resolves the authenticated identity of the current
// request. Absence of a session is a normal outcome, not a fault.
package session

import (
	"context"
	"net/http"
)

// Session is the identity of the authenticated caller for one request. The
// access token is forwarded to the backend service and must never be logged
// or exposed to the browser.
type Session struct {
	UserID      string
	Email       string
	Role        string // coarse global role: "admin" or "user"
	AccessToken string
}

// Resolver obtains the caller's session for the current request. A nil
// session with a nil error means the caller is not authenticated; errors
// are reserved for infrastructure faults (session store unreachable).
type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) (*Session, error)
}
