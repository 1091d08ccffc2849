package analytics

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/pkg"
)

// Handler handles the analytics REST endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler with the given service.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Dashboard handles GET /api/v1/analytics/dashboard.
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, d)
}

// Sales handles GET /api/v1/analytics/sales?period=week|month|year.
func (h *Handler) Sales(c *gin.Context) {
	var req SalesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		pkg.ValidationError(c, err)
		return
	}

	sales, err := h.svc.Sales(c.Request.Context(), req.Period)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, sales)
}
