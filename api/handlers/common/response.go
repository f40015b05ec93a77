// Package common holds the response helpers shared by the API handlers.
package common

import (
	"net/http"

	"adminbff/internal/authz"

	"github.com/gin-gonic/gin"
)

// RespondJSON writes a 200 success with the given payload.
func RespondJSON(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// RespondRaw writes pre-encoded JSON through unmodified, preserving the
// backend's payload shape byte for byte.
func RespondRaw(c *gin.Context, status int, raw []byte) {
	if len(raw) == 0 {
		c.Status(status)
		return
	}
	c.Data(status, "application/json", raw)
}

// RespondNoContent writes a 204.
func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondError translates any failure through the authorization error
// taxonomy and writes the uniform failure body.
func RespondError(c *gin.Context, err error) {
	authz.Respond(c, err)
}
