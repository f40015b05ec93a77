package authz

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"adminbff/internal/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateTaxonomy(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantTag    Kind
	}{
		{"unauthenticated", ErrUnauthenticated(), http.StatusUnauthorized, KindUnauthenticated},
		{"tenant not selected", ErrTenantNotSelected(), http.StatusConflict, KindTenantNotSelected},
		{"forbidden", ErrForbidden(), http.StatusForbidden, KindForbidden},
		{"validation", ErrValidation("bad field", nil), http.StatusBadRequest, KindValidationFailed},
		{"backend unavailable", ErrBackendUnavailable(), http.StatusBadGateway, KindBackendUnavailable},
		{"backend unreachable", &backend.Error{Status: 0, Message: "request failed"}, http.StatusBadGateway, KindBackendUnavailable},
		{"backend 422", &backend.Error{Status: 422, Message: "bad payload"}, 422, KindBackendError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, KindInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := Translate(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, string(tc.wantTag), body.Error)
		})
	}
}

func TestTranslateNeverLeaksInternals(t *testing.T) {
	// Arbitrary wrapped errors collapse to a fixed message; the original
	// text (which could contain anything) stays out of the response.
	status, body := Translate(errors.New("dial tcp: Authorization: Bearer secret-token"))
	assert.Equal(t, http.StatusInternalServerError, status)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "secret-token"))
}

func TestTranslateBackendErrorPropagatesStatus(t *testing.T) {
	status, body := Translate(&backend.Error{Status: http.StatusNotFound, Message: "agent not found"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, string(KindBackendError), body.Error)
	assert.Equal(t, "agent not found", body.Message)
}

func TestTranslateBackendSuccessStatusCollapses(t *testing.T) {
	// A backend "error" carrying a success status is nonsense; it must not
	// turn into a success response.
	status, _ := Translate(&backend.Error{Status: http.StatusOK, Message: "odd"})
	assert.Equal(t, http.StatusBadGateway, status)
}
