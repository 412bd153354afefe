package geocode

import (
	apphttp "shipquote_backend/internal/http"
)

// Module represents the geocode domain module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule wires the geocode module.
func NewModule(svc *Service) *Module {
	return &Module{
		handler: NewHandler(svc),
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "geocode"
}

// Service returns the service layer for other modules.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/geocode")
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
