package authz

import (
	"strings"

	"adminbff/internal/session"
	"adminbff/internal/tenant"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TenantBindings is the slice of the binding store the middleware needs: a
// read of the caller's bound tenant id. Writing stays with the selection
// endpoint.
type TenantBindings interface {
	Get(c *gin.Context) (string, error)
}

// Middleware wires the session resolver, tenant provider and binding store
// into composable gin request interceptors. All dependencies are injected;
// there is no process-global state.
type Middleware struct {
	sessions session.Resolver
	tenants  tenant.Provider
	bindings TenantBindings
	logger   *zap.Logger
}

// New creates the authorization middleware set.
func New(sessions session.Resolver, tenants tenant.Provider, bindings TenantBindings, logger *zap.Logger) *Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Middleware{
		sessions: sessions,
		tenants:  tenants,
		bindings: bindings,
		logger:   logger,
	}
}

// TenantSource is the strategy that names which tenant a request acts on.
// It returns a taxonomy error when no id can be produced.
type TenantSource func(c *gin.Context) (string, *Error)

// fromPath reads the tenant id the caller declared in the route path.
func fromPath(param string) TenantSource {
	return func(c *gin.Context) (string, *Error) {
		id := strings.TrimSpace(c.Param(param))
		if id == "" {
			return "", ErrValidation("missing tenant id", gin.H{"param": param})
		}
		return id, nil
	}
}

// fromBinding reads the tenant id from the server-held binding only. The
// request path, query and body are never consulted, so a client cannot
// steer a session-scoped route at another tenant.
func (m *Middleware) fromBinding() TenantSource {
	return func(c *gin.Context) (string, *Error) {
		id, err := m.bindings.Get(c)
		if err != nil {
			m.logger.Error("tenant binding read failed", zap.Error(err))
			return "", ErrBackendUnavailable()
		}
		if id == "" {
			return "", ErrTenantNotSelected()
		}
		return id, nil
	}
}

// RequireSession resolves the caller's session and rejects the request when
// none exists. The verified session is attached for downstream handlers.
func (m *Middleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := m.resolveSession(c)
		if !ok {
			return
		}
		setSession(c, sess)
		c.Next()
	}
}

// WithTenant scopes the request to the tenant named by the given route
// parameter. The declared id is still verified live against the tenant
// provider before the handler runs.
func (m *Middleware) WithTenant(param string) gin.HandlerFunc {
	return m.require(fromPath(param))
}

// WithTenantFromSession scopes the request to the caller's bound tenant.
// Used for tenant-agnostic routes where a client-supplied id must never be
// trusted.
func (m *Middleware) WithTenantFromSession() gin.HandlerFunc {
	return m.require(m.fromBinding())
}

// WithTenantPermission additionally requires a capability inside the
// already-verified tenant context. It must run after WithTenant or
// WithTenantFromSession; the capability check never precedes the
// membership check, and its failure is indistinguishable from a
// membership failure.
func (m *Middleware) WithTenantPermission(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tc, ok := TenantContextFrom(c)
		if !ok {
			m.logger.Warn("permission check before tenant verification",
				zap.String("path", c.FullPath()),
			)
			Abort(c, ErrUnauthenticated())
			return
		}

		if !tc.HasPermission(capability) {
			Abort(c, ErrForbidden())
			return
		}

		c.Next()
	}
}

// require is the single higher-order interceptor behind the variants:
// session, then tenant id per the source strategy, then a live provider
// lookup. The sequence is strictly ordered and short-circuits on first
// failure.
func (m *Middleware) require(source TenantSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := m.resolveSession(c)
		if !ok {
			return
		}

		tenantID, srcErr := source(c)
		if srcErr != nil {
			Abort(c, srcErr)
			return
		}

		tc, err := m.tenants.GetTenantContext(c.Request.Context(), sess.UserID, tenantID, sess.AccessToken)
		if err != nil {
			m.logger.Warn("tenant lookup failed",
				zap.String("user_id", sess.UserID),
				zap.String("tenant_id", tenantID),
				zap.Error(err),
			)
			Abort(c, err)
			return
		}
		if tc == nil {
			Abort(c, ErrForbidden())
			return
		}

		setSession(c, sess)
		setTenantContext(c, *tc)
		c.Request = c.Request.WithContext(tenant.WithContext(c.Request.Context(), *tc))
		c.Next()
	}
}

// resolveSession loads the caller's session, aborting the request when it
// is absent or the session store is down. The bool reports whether the
// chain may continue.
func (m *Middleware) resolveSession(c *gin.Context) (*session.Session, bool) {
	sess, err := m.sessions.Resolve(c.Request.Context(), c.Request)
	if err != nil {
		m.logger.Error("session resolution failed", zap.Error(err))
		Abort(c, err)
		return nil, false
	}
	if sess == nil {
		Abort(c, ErrUnauthenticated())
		return nil, false
	}
	return sess, true
}
