package notification

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/pkg"
)

// Handler handles the notification-specific REST endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler with the given service.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Latest handles GET /api/v1/notifications/latest.
func (h *Handler) Latest(c *gin.Context) {
	var req LatestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		pkg.ValidationError(c, err)
		return
	}

	records, err := h.svc.Latest(c.Request.Context(), req.Limit)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, records)
}

// Unread handles GET /api/v1/notifications/unread-count.
func (h *Handler) Unread(c *gin.Context) {
	n, err := h.svc.Unread(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, UnreadResponse{Unread: n})
}

// MarkRead handles PATCH /api/v1/notifications/:id/read.
func (h *Handler) MarkRead(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	rec, err := h.svc.MarkRead(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, rec)
}

// MarkAllRead handles PATCH /api/v1/notifications/mark-all-read.
func (h *Handler) MarkAllRead(c *gin.Context) {
	n, err := h.svc.MarkAllRead(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, MarkAllReadResponse{Updated: n})
}
