// Package handler exposes the quotes HTTP endpoints.
package handler

import (
	"net/http"

	"shipquote_backend/internal/quotes/service"
	"shipquote_backend/internal/quotes/transport"
	"shipquote_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for quote calculation and export.
type Handler struct {
	svc *service.Service
}

// New creates a new quotes handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the public quote routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/calculate", h.Calculate)
	rg.POST("/packing-suggestion", h.PackingSuggestion)
	rg.POST("/pdf", h.ExportPDF)
}

// RegisterAdminRoutes registers the margin-enabled routes behind admin auth.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/calculate", h.AdminCalculate)
	rg.POST("/pdf", h.AdminExportPDF)
}

// Calculate handles POST /api/v1/quotes/calculate. Margin is an admin-only
// control and is rejected here rather than silently dropped.
func (h *Handler) Calculate(c *gin.Context) {
	req, ok := h.bindCalculate(c)
	if !ok {
		return
	}
	if req.MarginPercent != 0 {
		httpkit.Error(c, http.StatusForbidden, "margin requires admin access", nil)
		return
	}

	result, err := h.svc.Calculate(c.Request.Context(), toServiceRequest(req), false)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toCalculateResponse(result))
}

// AdminCalculate handles POST /api/v1/admin/quotes/calculate.
func (h *Handler) AdminCalculate(c *gin.Context) {
	req, ok := h.bindCalculate(c)
	if !ok {
		return
	}

	result, err := h.svc.Calculate(c.Request.Context(), toServiceRequest(req), true)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toCalculateResponse(result))
}

// PackingSuggestion handles POST /api/v1/quotes/packing-suggestion.
func (h *Handler) PackingSuggestion(c *gin.Context) {
	var req transport.PackingSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	suggestion, err := h.svc.SuggestPacking(req.LotIDs)
	if httpkit.HandleError(c, err) {
		return
	}

	perLot := make([]transport.LotAdviceResponse, len(suggestion.Advice.PerLot))
	for i, advice := range suggestion.Advice.PerLot {
		perLot[i] = transport.LotAdviceResponse{
			LotID:   advice.LotID,
			Packing: string(advice.Packing),
			Reason:  advice.Reason,
		}
	}

	httpkit.OK(c, transport.PackingSuggestionResponse{
		Overall:       string(suggestion.Advice.Overall),
		OverallReason: suggestion.Advice.OverallReason,
		PerLot:        perLot,
		Failures:      suggestion.Failures,
	})
}

// ExportPDF handles POST /api/v1/quotes/pdf and streams the document.
func (h *Handler) ExportPDF(c *gin.Context) {
	h.exportPDF(c, false)
}

// AdminExportPDF handles POST /api/v1/admin/quotes/pdf.
func (h *Handler) AdminExportPDF(c *gin.Context) {
	h.exportPDF(c, true)
}

func (h *Handler) exportPDF(c *gin.Context, allowMargin bool) {
	req, ok := h.bindCalculate(c)
	if !ok {
		return
	}
	if !allowMargin && req.MarginPercent != 0 {
		httpkit.Error(c, http.StatusForbidden, "margin requires admin access", nil)
		return
	}

	out, filename, err := h.svc.RenderPDF(c.Request.Context(), toServiceRequest(req), allowMargin)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", out)
}

func (h *Handler) bindCalculate(c *gin.Context) (transport.CalculateRequest, bool) {
	var req transport.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return req, false
	}
	return req, true
}

func toServiceRequest(req transport.CalculateRequest) service.Request {
	return service.Request{
		LotIDs:         req.LotIDs,
		Packing:        req.Packing,
		Delivery:       req.Delivery,
		Address:        req.Address,
		Currency:       req.Currency,
		InsuranceCents: req.InsuranceCents,
		MarginPercent:  req.MarginPercent,
	}
}

func toCalculateResponse(result *service.Result) transport.CalculateResponse {
	lines := make([]transport.LineResponse, len(result.Lines))
	for i, line := range result.Lines {
		lines[i] = transport.LineResponse{
			LotID:       line.LotID,
			Description: line.Description,
			WeightClass: line.WeightClass,
			Material:    line.Material,
			AmountCents: line.AmountCents,
		}
	}

	saleNumbers := result.SaleNumbers
	if saleNumbers == nil {
		saleNumbers = []string{}
	}

	return transport.CalculateResponse{
		QuoteNumber:         result.QuoteNumber,
		Lines:               lines,
		LookupFailures:      result.LookupFailures,
		SaleNumbers:         saleNumbers,
		Packing:             result.Packing,
		SuggestedPacking:    string(result.SuggestedPacking),
		PackingReason:       result.PackingReason,
		Delivery:            result.Delivery,
		Address:             result.Address,
		DistanceKm:          result.DistanceKm,
		SubtotalCents:       result.SubtotalCents,
		MarginCents:         result.MarginCents,
		InsuranceCents:      result.InsuranceCents,
		TotalCents:          result.TotalCents,
		Currency:            result.Currency,
		Symbol:              result.Symbol,
		ConvertedTotalCents: result.ConvertedTotalCents,
		ValidUntil:          result.ValidUntil.Format("2006-01-02"),
		DaysRemaining:       result.DaysRemaining,
	}
}
