package media

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/catalog"
	"github.com/simp-lee/storeadmin/internal/module/crud"
)

// Module implements the app.Module interface for media.
type Module struct {
	crud    *crud.Handler
	handler *Handler
}

// NewModule creates a new Module with the given handlers.
// Panics if either handler is nil.
func NewModule(ch *crud.Handler, h *Handler) *Module {
	if ch == nil {
		panic("media.NewModule: crud handler must not be nil")
	}
	if h == nil {
		panic("media.NewModule: handler must not be nil")
	}
	return &Module{crud: ch, handler: h}
}

// RegisterRoutes registers the media routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/" + catalog.Media)
	g.GET("/folders", m.handler.Folders)
	g.PATCH("/:id/rename", m.handler.Rename)
	m.crud.Register(g)
}
