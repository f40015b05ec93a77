// Package agents proxies agent routes to the backend service. The tenant
// is always the caller's session-bound tenant; payloads are arbitrary JSON
// passed through unmodified.
package agents

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"adminbff/api/handlers/common"
	"adminbff/internal/authz"
	"adminbff/internal/backend"
	"adminbff/internal/session"
	"adminbff/internal/tenant"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler forwards /api/agents requests.
type Handler struct {
	client *backend.Client
	logger *zap.Logger
}

// NewHandler creates the agents proxy handler.
func NewHandler(client *backend.Client, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{client: client, logger: logger}
}

// List forwards GET /api/agents.
func (h *Handler) List(c *gin.Context) {
	sess, tc, ok := requireScope(c)
	if !ok {
		return
	}

	var out json.RawMessage
	path := "/api/tenants/" + url.PathEscape(tc.Tenant.ID) + "/agents"
	if err := h.client.Get(c.Request.Context(), path, sess.AccessToken, &out); err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondRaw(c, http.StatusOK, out)
}

// Create forwards POST /api/agents with the request body untouched.
func (h *Handler) Create(c *gin.Context) {
	sess, tc, ok := requireScope(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		common.RespondError(c, authz.ErrValidation("request body must be JSON", nil))
		return
	}

	var out json.RawMessage
	path := "/api/tenants/" + url.PathEscape(tc.Tenant.ID) + "/agents"
	if err := h.client.Post(c.Request.Context(), path, sess.AccessToken, json.RawMessage(body), &out); err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondRaw(c, http.StatusCreated, out)
}

// Delete forwards DELETE /api/agents/:id.
func (h *Handler) Delete(c *gin.Context) {
	sess, tc, ok := requireScope(c)
	if !ok {
		return
	}

	agentID := c.Param("id")
	if agentID == "" {
		common.RespondError(c, authz.ErrValidation("missing agent id", nil))
		return
	}

	path := "/api/tenants/" + url.PathEscape(tc.Tenant.ID) + "/agents/" + url.PathEscape(agentID)
	if err := h.client.Delete(c.Request.Context(), path, sess.AccessToken, nil); err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondNoContent(c)
}

// requireScope pulls the verified session and tenant context attached by
// the middleware. Absence indicates a wiring error, not a caller fault.
func requireScope(c *gin.Context) (*session.Session, tenant.TenantContext, bool) {
	sess, okSess := authz.SessionFrom(c)
	tc, okTenant := authz.TenantContextFrom(c)
	if !okSess || !okTenant {
		common.RespondError(c, authz.ErrUnauthenticated())
		return nil, tenant.TenantContext{}, false
	}
	return sess, tc, true
}
