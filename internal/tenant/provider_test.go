package tenant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"adminbff/internal/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetTenantContextSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/users/user-1/tenants/acme/membership", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"tenant": {"id": "acme", "name": "Acme Inc", "slug": "acme"},
			"role": "admin",
			"permissions": ["read", "write"]
		}`))
	}))
	defer server.Close()

	provider := NewBackendProvider(backend.NewClient(server.URL), zap.NewNop())

	tc, err := provider.GetTenantContext(context.Background(), "user-1", "acme", "token-abc")
	require.NoError(t, err)
	require.NotNil(t, tc)
	assert.Equal(t, "acme", tc.Tenant.ID)
	assert.Equal(t, RoleAdmin, tc.UserRole)
	assert.True(t, tc.HasPermission("write"))
	assert.False(t, tc.HasPermission("manage_members"))
}

func TestGetTenantContextDenied(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":"no"}`))
		}))

		provider := NewBackendProvider(backend.NewClient(server.URL), zap.NewNop())

		tc, err := provider.GetTenantContext(context.Background(), "user-1", "acme", "tok")
		require.NoError(t, err, "an answered refusal is a deny, not a fault")
		assert.Nil(t, tc)

		server.Close()
	}
}

func TestGetTenantContextIncompletePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Tenant id present but no role: must not yield a partial context.
		w.Write([]byte(`{"tenant": {"id": "acme"}}`))
	}))
	defer server.Close()

	provider := NewBackendProvider(backend.NewClient(server.URL), zap.NewNop())

	tc, err := provider.GetTenantContext(context.Background(), "user-1", "acme", "tok")
	require.NoError(t, err)
	assert.Nil(t, tc)
}

func TestGetTenantContextUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider := NewBackendProvider(backend.NewClient(server.URL), zap.NewNop())

	tc, err := provider.GetTenantContext(context.Background(), "user-1", "acme", "tok")
	assert.Nil(t, tc)

	var be *backend.Error
	require.ErrorAs(t, err, &be, "unreachable surfaces loudly, distinct from a deny")
	assert.True(t, be.Unreachable())
}

func TestGetTenantContextEmptyIDs(t *testing.T) {
	provider := NewBackendProvider(backend.NewClient("http://unused"), zap.NewNop())

	tc, err := provider.GetTenantContext(context.Background(), "", "acme", "tok")
	require.NoError(t, err)
	assert.Nil(t, tc)

	tc, err = provider.GetTenantContext(context.Background(), "user-1", "", "tok")
	require.NoError(t, err)
	assert.Nil(t, tc)
}

func TestGetUserTenants(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/users/user-1/tenants", r.URL.Path)
		assert.Equal(t, "user@example.com", r.URL.Query().Get("email"))
		w.Write([]byte(`{"tenants": [
			{"id": "acme", "name": "Acme Inc", "slug": "acme"},
			{"id": "beta", "name": "Beta Corp", "slug": "beta"}
		]}`))
	}))
	defer server.Close()

	provider := NewBackendProvider(backend.NewClient(server.URL), zap.NewNop())

	tenants, err := provider.GetUserTenants(context.Background(), "user-1", "tok", "user@example.com")
	require.NoError(t, err)
	require.Len(t, tenants, 2)
	assert.Equal(t, "acme", tenants[0].ID)
	assert.Equal(t, "beta", tenants[1].ID)
}

func TestGetUserTenantsZeroIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tenants": []}`))
	}))
	defer server.Close()

	provider := NewBackendProvider(backend.NewClient(server.URL), zap.NewNop())

	tenants, err := provider.GetUserTenants(context.Background(), "user-1", "tok", "")
	require.NoError(t, err)
	assert.NotNil(t, tenants)
	assert.Empty(t, tenants)
}

func TestGetUserTenantsUnreachableFailsLoudly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider := NewBackendProvider(backend.NewClient(server.URL), zap.NewNop())

	tenants, err := provider.GetUserTenants(context.Background(), "user-1", "tok", "")
	assert.Nil(t, tenants, "unreachable must not look like zero tenants")
	require.Error(t, err)
}
