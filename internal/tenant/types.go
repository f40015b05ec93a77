package tenant

// Tenant is an isolated organizational account owned by the backend
// service. It is fetched live per request and never cached in memory.
type Tenant struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Slug     string            `json:"slug"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Role is a tenant-scoped role, distinct from the session's global role.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// TenantContext is the verified pairing of a session and a tenant for one
// request. It is only ever constructed from a successful Provider lookup,
// never from client-supplied data, and is discarded when the request ends.
type TenantContext struct {
	Tenant      Tenant   `json:"tenant"`
	UserRole    Role     `json:"userRole"`
	Permissions []string `json:"permissions"`
}

// HasPermission reports whether the capability is in the permission set.
func (tc TenantContext) HasPermission(capability string) bool {
	for _, p := range tc.Permissions {
		if p == capability {
			return true
		}
	}
	return false
}
