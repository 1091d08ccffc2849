package settings

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/pkg"
)

// Handler handles the settings REST endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler with the given service.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Get handles GET /api/v1/settings.
func (h *Handler) Get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, doc)
}

// Update handles PUT /api/v1/settings.
func (h *Handler) Update(c *gin.Context) {
	fields, ok := pkg.BindRecord(c)
	if !ok {
		return
	}

	doc, err := h.svc.Update(c.Request.Context(), fields)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, doc)
}

// GetKey handles GET /api/v1/settings/:key.
func (h *Handler) GetKey(c *gin.Context) {
	key := c.Param("key")
	v, err := h.svc.GetKey(c.Request.Context(), key)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, KeyValue{Key: key, Value: v})
}

// UpdateKey handles PUT /api/v1/settings/:key with body {"value": ...}.
func (h *Handler) UpdateKey(c *gin.Context) {
	body, ok := pkg.BindRecord(c)
	if !ok {
		return
	}
	value, present := body["value"]
	if !present {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "value is required", nil))
		return
	}

	doc, err := h.svc.UpdateKey(c.Request.Context(), c.Param("key"), value)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, doc)
}
