// Package tenants implements tenant enumeration and the tenant-selection
// endpoint that writes the server-held binding.
package tenants

import (
	"net/http"
	"strings"

	"adminbff/api/handlers/common"
	"adminbff/internal/authz"
	tenantpkg "adminbff/internal/tenant"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BindingWriter is the slice of the binding store the selection endpoint
// needs. The binding is written only after a successful provider check.
type BindingWriter interface {
	Set(c *gin.Context, tenantID string) error
	Clear(c *gin.Context) error
}

// Handler serves /api/tenants and /api/tenant/select.
type Handler struct {
	tenants  tenantpkg.Provider
	bindings BindingWriter
	logger   *zap.Logger
}

// NewHandler creates the tenants handler.
func NewHandler(tenants tenantpkg.Provider, bindings BindingWriter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		tenants:  tenants,
		bindings: bindings,
		logger:   logger,
	}
}

// List enumerates the tenants the caller may switch into. An unreachable
// backend surfaces loudly so the UI can offer a retry instead of showing
// onboarding for a user who really does have tenants.
func (h *Handler) List(c *gin.Context) {
	sess, ok := authz.SessionFrom(c)
	if !ok {
		common.RespondError(c, authz.ErrUnauthenticated())
		return
	}

	tenants, err := h.tenants.GetUserTenants(c.Request.Context(), sess.UserID, sess.AccessToken, sess.Email)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, gin.H{"tenants": tenants})
}

type selectTenantRequest struct {
	TenantID string `json:"tenantId" binding:"required"`
}

// Select verifies membership in the requested tenant and, only on success,
// overwrites the caller's binding. The denial is a single generic 403: the
// response must not reveal whether the tenant id exists at all.
func (h *Handler) Select(c *gin.Context) {
	sess, ok := authz.SessionFrom(c)
	if !ok {
		common.RespondError(c, authz.ErrUnauthenticated())
		return
	}

	var req selectTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, authz.ErrValidation("tenantId is required", nil))
		return
	}
	req.TenantID = strings.TrimSpace(req.TenantID)
	if req.TenantID == "" {
		common.RespondError(c, authz.ErrValidation("tenantId is required", nil))
		return
	}

	tc, err := h.tenants.GetTenantContext(c.Request.Context(), sess.UserID, req.TenantID, sess.AccessToken)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	if tc == nil {
		common.RespondError(c, authz.ErrForbidden())
		return
	}

	if err := h.bindings.Set(c, tc.Tenant.ID); err != nil {
		h.logger.Error("tenant binding write failed",
			zap.String("user_id", sess.UserID),
			zap.Error(err),
		)
		common.RespondError(c, err)
		return
	}

	h.logger.Info("tenant selected",
		zap.String("user_id", sess.UserID),
		zap.String("tenant_id", tc.Tenant.ID),
	)

	c.JSON(http.StatusOK, gin.H{
		"tenant":      tc.Tenant,
		"userRole":    tc.UserRole,
		"permissions": tc.Permissions,
	})
}

// Deselect clears the caller's binding. Used by logout flows.
func (h *Handler) Deselect(c *gin.Context) {
	if err := h.bindings.Clear(c); err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondNoContent(c)
}
