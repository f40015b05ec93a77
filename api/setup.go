package api

import (
	"adminbff/api/handlers/agents"
	"adminbff/api/handlers/knowledge"
	tenantHandlers "adminbff/api/handlers/tenants"
	userHandlers "adminbff/api/handlers/user"
	"adminbff/internal/authz"
	"adminbff/internal/backend"
	"adminbff/internal/binding"
	"adminbff/internal/config"
	"adminbff/internal/logger"
	"adminbff/internal/session"
	"adminbff/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers aggregates the route handlers.
type Handlers struct {
	Tenants   *tenantHandlers.Handler
	User      *userHandlers.Handler
	Agents    *agents.Handler
	Knowledge *knowledge.Handler
}

// Container holds the wired collaborators of the authorization layer. All
// dependencies are constructed here and injected; nothing is process-global
// except the logger.
type Container struct {
	Backend  *backend.Client
	Sessions session.Resolver
	Tenants  tenant.Provider
	Bindings *binding.Store
	Authz    *authz.Middleware
	Handlers *Handlers
}

// BuildContainer wires the application graph from configuration.
func BuildContainer(cfg *config.Config, rdb redis.UniversalClient) *Container {
	log := logger.Get()

	client := backend.NewClient(cfg.Backend.BaseURL,
		backend.WithTimeout(cfg.Backend.Timeout()),
	)

	sessionStore := session.NewStore(rdb, "session:", cfg.Session.TTL())
	sessions := session.NewCookieResolver(cfg.Session.CookieName, []byte(cfg.Session.Secret), sessionStore)

	tenants := tenant.NewBackendProvider(client, log.Named("tenant"))

	bindings := binding.NewStore(rdb,
		binding.WithCookie(cfg.Binding.CookieName, cfg.Binding.CookiePath),
		binding.WithRetention(cfg.Binding.Retention()),
		binding.WithSecureCookie(cfg.Binding.Secure),
	)

	authzMiddleware := authz.New(sessions, tenants, bindings, log.Named("authz"))

	handlers := &Handlers{
		Tenants:   tenantHandlers.NewHandler(tenants, bindings, log.Named("tenants")),
		User:      userHandlers.NewHandler(bindings),
		Agents:    agents.NewHandler(client, log.Named("agents")),
		Knowledge: knowledge.NewHandler(client, log.Named("knowledge")),
	}

	return &Container{
		Backend:  client,
		Sessions: sessions,
		Tenants:  tenants,
		Bindings: bindings,
		Authz:    authzMiddleware,
		Handlers: handlers,
	}
}

// SetupRouter builds the gin engine with global middleware and all routes.
func SetupRouter(cfg *config.Config, rdb redis.UniversalClient) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), CORS())

	container := BuildContainer(cfg, rdb)
	RegisterRoutes(router, container)

	return router
}
