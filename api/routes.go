package api

import (
	"net/http"

	"adminbff/internal/metrics"
	middlewarepkg "adminbff/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts all API routes. Each route group declares which
// middleware variant guards it and, for writes, which capability is
// required.
func RegisterRoutes(router *gin.Engine, c *Container) {
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "adminbff"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := c.Handlers

	api := router.Group("/api")
	api.Use(middlewarepkg.RequestIDMiddleware(), metrics.PrometheusMiddleware())

	// Session-only routes: authenticated, no tenant scope yet.
	api.GET("/me", c.Authz.RequireSession(), h.User.Me)
	api.GET("/tenants", c.Authz.RequireSession(), h.Tenants.List)
	api.POST("/tenant/select", c.Authz.RequireSession(), h.Tenants.Select)
	api.DELETE("/tenant/select", c.Authz.RequireSession(), h.Tenants.Deselect)

	// Session-bound tenant scope: the tenant comes from the server-held
	// binding, never from anything the client sends.
	agentsGroup := api.Group("/agents", c.Authz.WithTenantFromSession())
	{
		agentsGroup.GET("", h.Agents.List)
		agentsGroup.POST("", c.Authz.WithTenantPermission("write"), h.Agents.Create)
		agentsGroup.DELETE("/:id", c.Authz.WithTenantPermission("write"), h.Agents.Delete)
	}

	// Path-bound tenant scope: the caller declares the tenant explicitly
	// and the declaration is verified live before any handler runs.
	knowledgeGroup := api.Group("/tenants/:tenantId/knowledge", c.Authz.WithTenant("tenantId"))
	{
		knowledgeGroup.GET("", h.Knowledge.List)
		knowledgeGroup.POST("", c.Authz.WithTenantPermission("write"), h.Knowledge.Create)
	}
}
