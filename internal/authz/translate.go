package authz

import (
	"errors"
	"net/http"

	"adminbff/internal/backend"
	"adminbff/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Body is the uniform failure response shape. Error carries the stable
// taxonomy tag, Details optional structured context. Stack traces, internal
// exception text and credentials never appear here.
type Body struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Translate normalizes any failure into an HTTP status and response body.
func Translate(err error) (int, Body) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status, Body{
			Error:   string(ae.Kind),
			Message: ae.Message,
			Details: ae.Details,
		}
	}

	var be *backend.Error
	if errors.As(err, &be) {
		if be.Unreachable() {
			return http.StatusBadGateway, Body{
				Error:   string(KindBackendUnavailable),
				Message: "backend service unavailable",
			}
		}

		status := be.Status
		if status < http.StatusBadRequest {
			// A backend error with a success status makes no sense;
			// collapse it into a gateway failure.
			status = http.StatusBadGateway
		}
		return status, Body{
			Error:   string(KindBackendError),
			Message: be.Message,
			Details: gin.H{"status": be.Status},
		}
	}

	return http.StatusInternalServerError, Body{
		Error:   string(KindInternal),
		Message: "internal error",
	}
}

// Respond writes the translated failure to the response.
func Respond(c *gin.Context, err error) {
	status, body := Translate(err)
	c.JSON(status, body)
}

// Abort writes the translated failure and stops the handler chain. Wrapped
// handlers never observe an authorization failure.
func Abort(c *gin.Context, err error) {
	status, body := Translate(err)
	metrics.AuthzRejectionsTotal.WithLabelValues(body.Error).Inc()
	c.AbortWithStatusJSON(status, body)
}
