// Package user serves the current-user endpoint.
package user

import (
	"adminbff/api/handlers/common"
	"adminbff/internal/authz"

	"github.com/gin-gonic/gin"
)

// BindingReader reads the caller's bound tenant id, if any.
type BindingReader interface {
	Get(c *gin.Context) (string, error)
}

// Handler serves /api/me.
type Handler struct {
	bindings BindingReader
}

// NewHandler creates the user handler.
func NewHandler(bindings BindingReader) *Handler {
	return &Handler{bindings: bindings}
}

// Me returns the caller's identity and the currently bound tenant id. The
// binding is reported as a hint only; it has not been re-verified here and
// the access token is never included.
func (h *Handler) Me(c *gin.Context) {
	sess, ok := authz.SessionFrom(c)
	if !ok {
		common.RespondError(c, authz.ErrUnauthenticated())
		return
	}

	tenantID, err := h.bindings.Get(c)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, gin.H{
		"userId":   sess.UserID,
		"email":    sess.Email,
		"role":     sess.Role,
		"tenantId": tenantID,
	})
}
