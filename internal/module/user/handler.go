package user

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/pkg"
)

// UserHandler handles the user-specific REST endpoints.
type UserHandler struct {
	svc *Service
}

// NewUserHandler creates a new UserHandler with the given service.
func NewUserHandler(svc *Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// Stats handles GET /api/v1/users/stats.
func (h *UserHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, st)
}
