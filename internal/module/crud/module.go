package crud

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for resources that need
// nothing beyond the shared CRUD routes.
type Module struct {
	handler *Handler
}

// NewModule creates a Module for h.
// Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("crud.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers the resource routes under /{resource}.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	m.handler.Register(api.Group("/" + m.handler.svc.Definition().Name))
}
