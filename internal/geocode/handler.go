package geocode

import (
	"net/http"

	"shipquote_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the address suggestion endpoint.
type Handler struct {
	svc *Service
}

// NewHandler creates a geocode handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the geocode routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/address-lookup", h.AddressLookup)
}

// AddressLookup handles GET /api/v1/geocode/address-lookup?q=...
func (h *Handler) AddressLookup(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' is required (min 3 characters)", nil)
		return
	}

	suggestions, err := h.svc.Search(c.Request.Context(), req.Query)
	if httpkit.HandleError(c, err) {
		return
	}
	if suggestions == nil {
		suggestions = []AddressSuggestion{}
	}

	httpkit.OK(c, LookupResponse{Suggestions: suggestions})
}
