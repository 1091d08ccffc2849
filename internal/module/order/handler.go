package order

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/pkg"
)

// Handler handles the order-specific REST endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler with the given service.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// UpdateStatus handles PATCH /api/v1/orders/:id/status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateStatusRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	rec, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status, req.TrackingNumber)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, rec)
}

// Stats handles GET /api/v1/orders/stats.
func (h *Handler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, st)
}
