// Package handler exposes the catalog HTTP endpoints.
package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"shipquote_backend/internal/catalog/service"
	"shipquote_backend/internal/catalog/transport"
	"shipquote_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for the lot catalog.
type Handler struct {
	svc *service.Service
}

// New creates a new catalog handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/lots", h.Lookup)
	rg.POST("/upload", h.Upload)
}

// Lookup handles GET /api/v1/catalog/lots?ids=86,87
func (h *Handler) Lookup(c *gin.Context) {
	var req transport.LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'ids' is required", nil)
		return
	}

	resolved, saleNumbers, err := h.svc.Lookup(req.IDs)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toLookupResponse(resolved, saleNumbers))
}

// List handles GET /api/v1/catalog
func (h *Handler) List(c *gin.Context) {
	records := h.svc.Repository().List()

	lots := make([]transport.LotResponse, len(records))
	for i, record := range records {
		lots[i] = transport.LotResponse{
			LotID:       record.ID,
			SaleNumber:  record.SaleNumber,
			WeightClass: string(record.WeightClass),
			Material:    record.Material,
			Description: record.Description,
		}
	}

	httpkit.OK(c, transport.ListResponse{Lots: lots, Total: len(lots)})
}

// Upload handles POST /api/v1/catalog/upload with a multipart Excel file.
// The uploaded workbook replaces the catalog wholesale or not at all.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "multipart field 'file' is required", nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		httpkit.Error(c, http.StatusBadRequest, "file must be an Excel workbook (.xlsx or .xls)", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	count, err := h.svc.ReplaceFromWorkbook(file)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.UploadResponse{Lots: count})
}

func toLookupResponse(resolved []service.ResolvedLot, saleNumbers []string) transport.LookupResponse {
	entries := make([]transport.LotEntryResponse, len(resolved))
	for i, lot := range resolved {
		entry := transport.LotEntryResponse{
			Token:   lot.Token,
			Status:  string(lot.Status),
			Display: lot.Display(),
		}
		if lot.Status != service.StatusInvalid {
			entry.LotID = lot.ID
		}
		if lot.Status == service.StatusFound {
			entry.SaleNumber = lot.Record.SaleNumber
			entry.WeightClass = string(lot.Record.WeightClass)
			entry.Material = lot.Record.Material
			entry.Description = lot.Record.Description
		}
		entries[i] = entry
	}

	if saleNumbers == nil {
		saleNumbers = []string{}
	}

	return transport.LookupResponse{Entries: entries, SaleNumbers: saleNumbers}
}
