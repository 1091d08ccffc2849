package order

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/catalog"
	"github.com/simp-lee/storeadmin/internal/module/crud"
)

// Module implements the app.Module interface for orders.
type Module struct {
	crud    *crud.Handler
	handler *Handler
}

// NewModule creates a new Module with the given handlers.
// Panics if either handler is nil.
func NewModule(ch *crud.Handler, h *Handler) *Module {
	if ch == nil {
		panic("order.NewModule: crud handler must not be nil")
	}
	if h == nil {
		panic("order.NewModule: handler must not be nil")
	}
	return &Module{crud: ch, handler: h}
}

// RegisterRoutes registers the order routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/" + catalog.Orders)
	g.GET("/stats", m.handler.Stats)
	g.PATCH("/:id/status", m.handler.UpdateStatus)
	m.crud.Register(g)
}
