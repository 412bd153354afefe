// Package geocode resolves free-text addresses to coordinates through the
// Nominatim search API.
package geocode

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AddressSuggestion is one candidate match for a partial address query.
type AddressSuggestion struct {
	DisplayName string  `json:"displayName"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// nominatimPlace is the subset of the Nominatim response we consume.
// Nominatim returns coordinates as strings.
type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// LookupRequest binds the address-lookup query parameters.
type LookupRequest struct {
	Query string `form:"q" binding:"required,min=3"`
}

// LookupResponse is the address-lookup payload.
type LookupResponse struct {
	Suggestions []AddressSuggestion `json:"suggestions"`
}
