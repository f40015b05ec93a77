// Package knowledge proxies knowledge-base routes to the backend service.
// These routes are mounted under an explicit tenant path parameter; the
// declared tenant is verified live by the middleware before any handler
// here runs.
package knowledge

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"adminbff/api/handlers/common"
	"adminbff/internal/authz"
	"adminbff/internal/backend"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler forwards /api/tenants/:tenantId/knowledge requests.
type Handler struct {
	client *backend.Client
	logger *zap.Logger
}

// NewHandler creates the knowledge proxy handler.
func NewHandler(client *backend.Client, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{client: client, logger: logger}
}

// List forwards GET requests for a tenant's knowledge bases.
func (h *Handler) List(c *gin.Context) {
	sess, ok := authz.SessionFrom(c)
	tc, okTenant := authz.TenantContextFrom(c)
	if !ok || !okTenant {
		common.RespondError(c, authz.ErrUnauthenticated())
		return
	}

	var out json.RawMessage
	path := "/api/tenants/" + url.PathEscape(tc.Tenant.ID) + "/knowledge"
	if err := h.client.Get(c.Request.Context(), path, sess.AccessToken, &out); err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondRaw(c, http.StatusOK, out)
}

// Create forwards POST requests with the body untouched.
func (h *Handler) Create(c *gin.Context) {
	sess, ok := authz.SessionFrom(c)
	tc, okTenant := authz.TenantContextFrom(c)
	if !ok || !okTenant {
		common.RespondError(c, authz.ErrUnauthenticated())
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		common.RespondError(c, authz.ErrValidation("request body must be JSON", nil))
		return
	}

	var out json.RawMessage
	path := "/api/tenants/" + url.PathEscape(tc.Tenant.ID) + "/knowledge"
	if err := h.client.Post(c.Request.Context(), path, sess.AccessToken, json.RawMessage(body), &out); err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondRaw(c, http.StatusCreated, out)
}
