package authz

import (
	"adminbff/internal/session"
	"adminbff/internal/tenant"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey       = "authz_session"
	tenantContextKey = "authz_tenant_context"
)

func setSession(c *gin.Context, sess *session.Session) {
	c.Set(sessionKey, sess)
}

// SessionFrom returns the verified session attached by the middleware.
func SessionFrom(c *gin.Context) (*session.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*session.Session)
	return sess, ok
}

func setTenantContext(c *gin.Context, tc tenant.TenantContext) {
	c.Set(tenantContextKey, tc)
}

// TenantContextFrom returns the verified tenant context attached by
// WithTenant or WithTenantFromSession.
func TenantContextFrom(c *gin.Context) (tenant.TenantContext, bool) {
	value, exists := c.Get(tenantContextKey)
	if !exists {
		return tenant.TenantContext{}, false
	}
	tc, ok := value.(tenant.TenantContext)
	return tc, ok
}
