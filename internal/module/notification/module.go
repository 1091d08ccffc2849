package notification

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/catalog"
	"github.com/simp-lee/storeadmin/internal/module/crud"
)

// Module implements the app.Module interface for notifications.
type Module struct {
	crud    *crud.Handler
	handler *Handler
}

// NewModule creates a new Module with the given handlers.
// Panics if either handler is nil.
func NewModule(ch *crud.Handler, h *Handler) *Module {
	if ch == nil {
		panic("notification.NewModule: crud handler must not be nil")
	}
	if h == nil {
		panic("notification.NewModule: handler must not be nil")
	}
	return &Module{crud: ch, handler: h}
}

// RegisterRoutes registers the notification routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/" + catalog.Notifications)
	g.GET("/latest", m.handler.Latest)
	g.GET("/unread-count", m.handler.Unread)
	g.PATCH("/mark-all-read", m.handler.MarkAllRead)
	g.PATCH("/:id/read", m.handler.MarkRead)
	m.crud.Register(g)
}
