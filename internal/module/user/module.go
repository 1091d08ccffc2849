package user

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/catalog"
	"github.com/simp-lee/storeadmin/internal/module/crud"
)

// UserModule implements the app.Module interface for the user domain.
type UserModule struct {
	crud    *crud.Handler
	handler *UserHandler
}

// NewModule creates a new UserModule with the given handlers.
// Panics if ch or h is nil.
func NewModule(ch *crud.Handler, h *UserHandler) *UserModule {
	if ch == nil {
		panic("user.NewModule: crud handler must not be nil")
	}
	if h == nil {
		panic("user.NewModule: handler must not be nil")
	}
	return &UserModule{crud: ch, handler: h}
}

// RegisterRoutes registers the user routes.
func (m *UserModule) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/" + catalog.Users)
	g.GET("/stats", m.handler.Stats)
	m.crud.Register(g)
}
