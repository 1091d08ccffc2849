package media

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/pkg"
)

// Handler handles the media-specific REST endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler with the given service.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Folders handles GET /api/v1/media/folders.
func (h *Handler) Folders(c *gin.Context) {
	folders, err := h.svc.Folders(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, FoldersResponse{Folders: folders})
}

// Rename handles PATCH /api/v1/media/:id/rename.
func (h *Handler) Rename(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req RenameRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	rec, err := h.svc.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, rec)
}
