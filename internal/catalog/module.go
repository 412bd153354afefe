// Package catalog provides the lot catalog domain module.
package catalog

import (
	apphttp "shipquote_backend/internal/http"
	"shipquote_backend/internal/catalog/handler"
	"shipquote_backend/internal/catalog/service"
)

// Module represents the catalog domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the catalog module around an already-seeded service.
func NewModule(svc *service.Service) *Module {
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/catalog")
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
