// Package transport defines the quotes module's request/response DTOs.
package transport

// CalculateRequest is the payload for quote calculation. MarginPercent is
// only honoured on the admin route; the public route rejects it.
type CalculateRequest struct {
	LotIDs         string  `json:"lotIds" binding:"required"`
	Packing        string  `json:"packing"`
	Delivery       string  `json:"delivery" binding:"required"`
	Address        string  `json:"address"`
	Currency       string  `json:"currency"`
	InsuranceCents int64   `json:"insuranceCents" binding:"gte=0"`
	MarginPercent  float64 `json:"marginPercent" binding:"gte=0,lte=100"`
}

// PackingSuggestionRequest asks for advice on a set of lots.
type PackingSuggestionRequest struct {
	LotIDs string `json:"lotIds" binding:"required"`
}

// LineResponse is one priced lot.
type LineResponse struct {
	LotID       int    `json:"lotId"`
	Description string `json:"description"`
	WeightClass string `json:"weightClass"`
	Material    string `json:"material"`
	AmountCents int64  `json:"amountCents"`
}

// LotAdviceResponse is the packing recommendation for a single lot.
type LotAdviceResponse struct {
	LotID   int    `json:"lotId"`
	Packing string `json:"packing"`
	Reason  string `json:"reason"`
}

// PackingSuggestionResponse is the advisor output.
type PackingSuggestionResponse struct {
	Overall       string              `json:"overall"`
	OverallReason string              `json:"overallReason"`
	PerLot        []LotAdviceResponse `json:"perLot"`
	Failures      []string            `json:"failures"`
}

// CalculateResponse is the full quote.
type CalculateResponse struct {
	QuoteNumber    string         `json:"quoteNumber"`
	Lines          []LineResponse `json:"lines"`
	LookupFailures []string       `json:"lookupFailures"`
	SaleNumbers    []string       `json:"saleNumbers"`

	Packing          string `json:"packing"`
	SuggestedPacking string `json:"suggestedPacking"`
	PackingReason    string `json:"packingReason"`
	Delivery         string `json:"delivery"`
	Address          string `json:"address"`

	DistanceKm float64 `json:"distanceKm"`

	SubtotalCents  int64 `json:"subtotalCents"`
	MarginCents    int64 `json:"marginCents"`
	InsuranceCents int64 `json:"insuranceCents"`
	TotalCents     int64 `json:"totalCents"`

	Currency            string `json:"currency"`
	Symbol              string `json:"symbol"`
	ConvertedTotalCents int64  `json:"convertedTotalCents"`

	ValidUntil    string `json:"validUntil"`
	DaysRemaining int    `json:"daysRemaining"`
}
