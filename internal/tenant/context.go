package tenant

import "context"

type tenantContextKey struct{}

// WithContext attaches the given TenantContext to the provided context and
// returns a derived context. Callers should use this helper instead of
// storing TenantContext under arbitrary keys.
func WithContext(ctx context.Context, tc TenantContext) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tc)
}

// FromContext attempts to retrieve a TenantContext from the given context.
// The second return value indicates whether one was present.
func FromContext(ctx context.Context) (TenantContext, bool) {
	value := ctx.Value(tenantContextKey{})
	if value == nil {
		return TenantContext{}, false
	}

	tc, ok := value.(TenantContext)
	if !ok {
		return TenantContext{}, false
	}

	return tc, true
}

// MustFromContext retrieves the TenantContext and panics if it is missing.
// It is suitable for places where earlier middleware has guaranteed the
// tenant and its absence indicates a programming error.
func MustFromContext(ctx context.Context) TenantContext {
	tc, ok := FromContext(ctx)
	if !ok {
		panic("tenant: TenantContext missing from context")
	}

	return tc
}
