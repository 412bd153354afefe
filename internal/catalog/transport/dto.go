// Package transport defines the catalog module's request/response DTOs.
package transport

// LookupRequest carries the raw comma-separated lot tokens.
type LookupRequest struct {
	IDs string `form:"ids" binding:"required"`
}

// LotEntryResponse is the per-token lookup outcome.
type LotEntryResponse struct {
	Token       string `json:"token"`
	LotID       int    `json:"lotId,omitempty"`
	Status      string `json:"status"`
	SaleNumber  string `json:"saleNumber,omitempty"`
	WeightClass string `json:"weightClass,omitempty"`
	Material    string `json:"material,omitempty"`
	Description string `json:"description,omitempty"`
	Display     string `json:"display"`
}

// LookupResponse is the full lookup result.
type LookupResponse struct {
	Entries     []LotEntryResponse `json:"entries"`
	SaleNumbers []string           `json:"saleNumbers"`
}

// LotResponse is a single catalog record.
type LotResponse struct {
	LotID       int    `json:"lotId"`
	SaleNumber  string `json:"saleNumber,omitempty"`
	WeightClass string `json:"weightClass"`
	Material    string `json:"material,omitempty"`
	Description string `json:"description"`
}

// ListResponse is the whole catalog, informational only.
type ListResponse struct {
	Lots  []LotResponse `json:"lots"`
	Total int           `json:"total"`
}

// UploadResponse reports a successful catalog replacement.
type UploadResponse struct {
	Lots int `json:"lots"`
}
