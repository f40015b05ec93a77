package tenant

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"adminbff/internal/backend"

	"go.uber.org/zap"
)

// Provider is the only trusted source of tenant membership, role and
// permission data. No other component may synthesize a TenantContext.
type Provider interface {
	// GetTenantContext verifies that the user may act on the given tenant.
	// A nil context with a nil error means access is denied. An error is
	// returned only when the backend could not answer at all, so callers
	// can distinguish "denied" from "unavailable".
	GetTenantContext(ctx context.Context, userID, tenantID, accessToken string) (*TenantContext, error)

	// GetUserTenants enumerates the tenants the user may switch into, in
	// backend order. An unreachable backend is an error, never an empty
	// slice: "zero tenants" and "backend down" are different states.
	GetUserTenants(ctx context.Context, userID, accessToken, email string) ([]Tenant, error)
}

// BackendProvider resolves tenant membership through live backend lookups.
type BackendProvider struct {
	client *backend.Client
	logger *zap.Logger
}

// NewBackendProvider creates a Provider backed by the backend client.
func NewBackendProvider(client *backend.Client, logger *zap.Logger) *BackendProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackendProvider{client: client, logger: logger}
}

// membershipPayload is the backend's answer for a single user/tenant pair.
type membershipPayload struct {
	Tenant      Tenant   `json:"tenant"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
}

func (p *BackendProvider) GetTenantContext(ctx context.Context, userID, tenantID, accessToken string) (*TenantContext, error) {
	if userID == "" || tenantID == "" {
		return nil, nil
	}

	path := fmt.Sprintf("/internal/users/%s/tenants/%s/membership",
		url.PathEscape(userID), url.PathEscape(tenantID))

	var payload membershipPayload
	if err := p.client.Get(ctx, path, accessToken, &payload); err != nil {
		var be *backend.Error
		if errors.As(err, &be) && !be.Unreachable() {
			// Any answered refusal (403, 404, malformed) fails closed as a
			// plain deny. The distinction stays out of the response so the
			// caller cannot probe which tenants exist.
			p.logger.Debug("tenant membership denied",
				zap.String("user_id", userID),
				zap.String("tenant_id", tenantID),
				zap.Int("status", be.Status),
			)
			return nil, nil
		}
		return nil, err
	}

	if payload.Tenant.ID == "" || payload.Role == "" {
		// Never hand out a partially populated context.
		p.logger.Warn("backend returned incomplete membership",
			zap.String("user_id", userID),
			zap.String("tenant_id", tenantID),
		)
		return nil, nil
	}

	return &TenantContext{
		Tenant:      payload.Tenant,
		UserRole:    payload.Role,
		Permissions: payload.Permissions,
	}, nil
}

func (p *BackendProvider) GetUserTenants(ctx context.Context, userID, accessToken, email string) ([]Tenant, error) {
	path := "/internal/users/" + url.PathEscape(userID) + "/tenants"
	if email != "" {
		path += "?email=" + url.QueryEscape(email)
	}

	var payload struct {
		Tenants []Tenant `json:"tenants"`
	}
	if err := p.client.Get(ctx, path, accessToken, &payload); err != nil {
		return nil, err
	}

	if payload.Tenants == nil {
		payload.Tenants = []Tenant{}
	}
	return payload.Tenants, nil
}
