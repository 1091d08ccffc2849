package analytics

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for analytics.
type Module struct {
	handler *Handler
}

// NewModule creates a new Module with the given handler.
// Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("analytics.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers the analytics routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/analytics")
	g.GET("/dashboard", m.handler.Dashboard)
	g.GET("/sales", m.handler.Sales)
}
