package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/middleware"
)

const healthCheckTimeout = time.Second

// HealthCheck checks one dependency for the /health endpoint.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules []Module
	Checks  []HealthCheck
	// APIToken, when non-empty, guards every /api/v1 route.
	APIToken string
}

// RegisterRoutes registers all application routes on the given gin.Engine.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}

	r.GET("/health", healthHandler(deps.Checks))

	api := r.Group("/api/v1")
	api.Use(middleware.BearerAuth(deps.APIToken))

	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) { abortWithError(c, http.StatusNotFound) })
	r.NoMethod(func(c *gin.Context) { abortWithError(c, http.StatusMethodNotAllowed) })
	return nil
}

// healthHandler runs every check and reports per-component status. Any
// failing check turns the response into 503.
func healthHandler(checks []HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		components := make(gin.H, len(checks))

		for _, hc := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
			err := hc.Check(ctx)
			cancel()

			if err != nil {
				components[hc.Name] = "error"
				status = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			components[hc.Name] = "ok"
		}

		c.JSON(code, gin.H{
			"status":     status,
			"components": components,
		})
	}
}
