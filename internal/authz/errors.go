// Package authz is the tenant-scoped request authorization layer. It
// decides, for every inbound request, whether the caller is authenticated,
// which tenant the request may act on behalf of, whether the caller holds
// sufficient privilege within that tenant, and how failures translate into
// a uniform response.
package authz

import "net/http"

// Kind tags why a request was rejected. It is the stable `error` field of
// every failure response body.
type Kind string

const (
	// KindUnauthenticated means no valid session.
	KindUnauthenticated Kind = "unauthenticated"
	// KindTenantNotSelected means the session is valid but no tenant
	// binding exists; the caller must select a tenant first. Deliberately
	// distinct from KindForbidden.
	KindTenantNotSelected Kind = "tenant_not_selected"
	// KindForbidden means tenant membership or a capability check failed.
	// The message is identical for both so callers cannot enumerate
	// tenants or capabilities from response differences.
	KindForbidden Kind = "forbidden"
	// KindValidationFailed means the request was malformed or missing
	// required fields.
	KindValidationFailed Kind = "validation_failed"
	// KindBackendUnavailable means the downstream service was unreachable
	// or timed out.
	KindBackendUnavailable Kind = "backend_unavailable"
	// KindBackendError means the downstream service answered with a
	// structured error.
	KindBackendError Kind = "backend_error"
	// KindInternal covers faults with no better classification; it exists
	// so no failure ever leaves the translator unshaped.
	KindInternal Kind = "internal_error"
)

// Error is the tagged result describing a rejected request.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details any
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// ErrUnauthenticated rejects a request with no valid session.
func ErrUnauthenticated() *Error {
	return &Error{
		Kind:    KindUnauthenticated,
		Status:  http.StatusUnauthorized,
		Message: "authentication required",
	}
}

// ErrTenantNotSelected rejects a session-scoped request with no binding.
func ErrTenantNotSelected() *Error {
	return &Error{
		Kind:    KindTenantNotSelected,
		Status:  http.StatusConflict,
		Message: "no tenant selected",
	}
}

// ErrForbidden rejects a request that failed the membership or capability
// check. The message is fixed regardless of which sub-check failed.
func ErrForbidden() *Error {
	return &Error{
		Kind:    KindForbidden,
		Status:  http.StatusForbidden,
		Message: "access denied",
	}
}

// ErrValidation rejects a malformed request.
func ErrValidation(message string, details any) *Error {
	if message == "" {
		message = "invalid request"
	}
	return &Error{
		Kind:    KindValidationFailed,
		Status:  http.StatusBadRequest,
		Message: message,
		Details: details,
	}
}

// ErrBackendUnavailable reports an unreachable downstream service.
func ErrBackendUnavailable() *Error {
	return &Error{
		Kind:    KindBackendUnavailable,
		Status:  http.StatusBadGateway,
		Message: "backend service unavailable",
	}
}
