package pricing

import (
	"context"
	"math"

	"shipquote_backend/internal/catalog/repository"
	"shipquote_backend/internal/geocode"
	"shipquote_backend/platform/logger"
)

// Geocoder resolves a destination address to a coordinate. It is the only
// external collaborator of the engine, injected so pricing stays fully
// unit-testable without network access.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*geocode.Coordinate, error)
}

// LineItem is the price breakdown for a single lot.
type LineItem struct {
	LotID       int
	Description string
	WeightClass string
	Material    string
	AmountCents int64
}

// Result is the engine output for one shipment.
type Result struct {
	Lines              []LineItem
	SubtotalCents      int64
	DistanceKm         float64
	DistanceMultiplier float64
}

// Engine prices a shipment of resolved lots. Pricing is deterministic given
// a fixed distance; the geocoding call is the only nondeterminism and it
// degrades to the zero-distance tier on failure.
type Engine struct {
	tables   Tables
	geocoder Geocoder
	origin   geocode.Coordinate
	log      *logger.Logger
}

// NewEngine creates a pricing engine shipping from the given origin.
func NewEngine(tables Tables, geocoder Geocoder, origin geocode.Coordinate, log *logger.Logger) *Engine {
	return &Engine{tables: tables, geocoder: geocoder, origin: origin, log: log}
}

// Tables exposes the active pricing tables for option validation and
// currency conversion.
func (e *Engine) Tables() Tables {
	return e.tables
}

// Price computes per-lot line items and the subtotal for resolved lot
// records. Packing and delivery must already be validated against the
// tables. Price never fails: a geocoding error or an address with no match
// falls back to 0 km and the base distance multiplier.
func (e *Engine) Price(ctx context.Context, records []repository.LotRecord, packing, delivery, address string) Result {
	distanceKm := e.resolveDistance(ctx, address)
	distanceMult := e.tables.DistanceMultiplier(distanceKm)

	packingFee, _ := e.tables.PackingFee(packing)
	deliveryFee, _ := e.tables.DeliveryFee(delivery)

	lines := make([]LineItem, len(records))
	var subtotal int64
	for i, record := range records {
		amount := roundCents(float64(e.tables.BasePriceCents)*
			e.tables.WeightMultiplier(string(record.WeightClass))*
			e.tables.MaterialMultiplier(record.Material)*
			distanceMult) +
			packingFee + deliveryFee

		lines[i] = LineItem{
			LotID:       record.ID,
			Description: record.Description,
			WeightClass: string(record.WeightClass),
			Material:    record.Material,
			AmountCents: amount,
		}
		subtotal += amount
	}

	return Result{
		Lines:              lines,
		SubtotalCents:      subtotal,
		DistanceKm:         distanceKm,
		DistanceMultiplier: distanceMult,
	}
}

// ApplyMargin returns the margin amount in cents for a subtotal.
func (e *Engine) ApplyMargin(subtotalCents int64, marginPercent float64) int64 {
	if marginPercent <= 0 {
		return 0
	}
	return roundCents(float64(subtotalCents) * marginPercent / 100)
}

// Convert applies the static rate table to a total. Unknown currency codes
// fall back to EUR at rate 1.0.
func (e *Engine) Convert(totalCents int64, currencyCode string) (convertedCents int64, code, symbol string) {
	cur, ok := e.tables.Currency(currencyCode)
	if !ok {
		eur, _ := e.tables.Currency("EUR")
		return totalCents, "EUR", eur.Symbol
	}
	return roundCents(float64(totalCents) * cur.Rate), currencyCode, cur.Symbol
}

func (e *Engine) resolveDistance(ctx context.Context, address string) float64 {
	if address == "" {
		return 0
	}

	coord, err := e.geocoder.Geocode(ctx, address)
	if err != nil {
		e.log.GeocodeError(address, err)
		return 0
	}
	if coord == nil {
		return 0
	}
	return haversineKm(e.origin, *coord)
}

func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
