// Package crud serves the list and single-record endpoints every admin
// resource shares.
package crud

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/pkg"
	"github.com/simp-lee/storeadmin/internal/resource"
)

// Handler handles REST API requests for one resource.
type Handler struct {
	svc *resource.Service
}

// NewHandler creates a Handler over svc.
func NewHandler(svc *resource.Service) *Handler {
	return &Handler{svc: svc}
}

// Service returns the resource façade the handler serves.
func (h *Handler) Service() *resource.Service {
	return h.svc
}

// Register mounts the CRUD routes on g, which is expected to be the
// resource's own group (e.g. /api/v1/orders).
func (h *Handler) Register(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /{resource}.
func (h *Handler) List(c *gin.Context) {
	def := h.svc.Definition()
	q, err := pkg.ParseQuery(c, def.Spec, def.DefaultLimit)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	result, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Get handles GET /{resource}/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, rec)
}

// Create handles POST /{resource}.
func (h *Handler) Create(c *gin.Context) {
	fields, ok := pkg.BindRecord(c)
	if !ok {
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), fields)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, rec)
}

// Update handles PUT and PATCH /{resource}/:id. Both merge the body into the
// stored record.
func (h *Handler) Update(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	fields, ok := pkg.BindRecord(c)
	if !ok {
		return
	}

	rec, err := h.svc.Update(c.Request.Context(), id, fields)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, rec)
}

// Delete handles DELETE /{resource}/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.NoContent(c)
}
