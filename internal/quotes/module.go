// Package quotes provides the quote calculation domain module.
package quotes

import (
	apphttp "shipquote_backend/internal/http"
	"shipquote_backend/internal/quotes/handler"
	"shipquote_backend/internal/quotes/service"
)

// Module represents the quotes domain module.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the quotes module.
func NewModule(svc *service.Service) *Module {
	return &Module{handler: handler.New(svc)}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quotes"
}

// RegisterRoutes registers the module's routes. The margin-enabled variants
// only exist when the admin group is configured.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/quotes")
	m.handler.RegisterRoutes(group)

	if ctx.Admin != nil {
		adminGroup := ctx.Admin.Group("/quotes")
		m.handler.RegisterAdminRoutes(adminGroup)
	}
}

var _ apphttp.Module = (*Module)(nil)
