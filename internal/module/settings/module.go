package settings

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for settings.
type Module struct {
	handler *Handler
}

// NewModule creates a new Module with the given handler.
// Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("settings.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers the settings routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/settings")
	g.GET("", m.handler.Get)
	g.PUT("", m.handler.Update)
	g.GET("/:key", m.handler.GetKey)
	g.PUT("/:key", m.handler.UpdateKey)
}
