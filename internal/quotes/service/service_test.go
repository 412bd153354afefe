package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shipquote_backend/internal/catalog/repository"
	catalogsvc "shipquote_backend/internal/catalog/service"
	"shipquote_backend/internal/geocode"
	"shipquote_backend/internal/packing"
	"shipquote_backend/internal/pdf"
	"shipquote_backend/internal/pricing"
	"shipquote_backend/platform/apperr"
	"shipquote_backend/platform/logger"
)

type stubGeocoder struct {
	coord *geocode.Coordinate
	err   error
}

func (g *stubGeocoder) Geocode(_ context.Context, _ string) (*geocode.Coordinate, error) {
	return g.coord, g.err
}

type stubQuoteConfig struct {
	validUntil time.Time
}

func (c stubQuoteConfig) GetQuoteValidUntil() time.Time { return c.validUntil }
func (c stubQuoteConfig) GetAppBaseURL() string         { return "http://localhost:4200" }

var testNow = time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, geocoder pricing.Geocoder, renderer *pdf.Generator) *Service {
	t.Helper()
	log := logger.New("development")
	catalog := catalogsvc.New(repository.NewInMemory(repository.DemoCatalog()), log)
	engine := pricing.NewEngine(pricing.Defaults(), geocoder,
		geocode.Coordinate{Lat: 48.8566, Lon: 2.3522}, log)
	cfg := stubQuoteConfig{validUntil: time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC)}

	svc := New(catalog, packing.New(), engine, renderer, cfg, log)
	svc.now = func() time.Time { return testNow }
	return svc
}

func zeroDistanceGeocoder() *stubGeocoder {
	return &stubGeocoder{coord: &geocode.Coordinate{Lat: 48.8566, Lon: 2.3522}}
}

func TestCalculate_CanonicalScenario(t *testing.T) {
	svc := newTestService(t, zeroDistanceGeocoder(), nil)

	result, err := svc.Calculate(context.Background(), Request{
		LotIDs:   "86, 93",
		Packing:  "Automatic (AI suggestion)",
		Delivery: "Front delivery",
		Address:  "Paris, France",
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(result.Lines))
	}
	if result.Lines[0].AmountCents != 44000 || result.Lines[1].AmountCents != 22000 {
		t.Fatalf("unexpected line amounts %d, %d",
			result.Lines[0].AmountCents, result.Lines[1].AmountCents)
	}
	if result.SubtotalCents != 66000 || result.TotalCents != 66000 {
		t.Fatalf("expected 66000 total, got subtotal %d total %d",
			result.SubtotalCents, result.TotalCents)
	}
	if result.Currency != "EUR" || result.Symbol != "€" {
		t.Fatalf("expected EUR default, got %s %s", result.Currency, result.Symbol)
	}
	if result.QuoteNumber == "" {
		t.Fatalf("expected a quote number")
	}
	if result.DaysRemaining != 17 {
		t.Fatalf("expected 17 days remaining, got %d", result.DaysRemaining)
	}
	if len(result.SaleNumbers) != 1 || result.SaleNumbers[0] != "7185" {
		t.Fatalf("unexpected sale numbers %v", result.SaleNumbers)
	}
}

func TestCalculate_LookupFailuresDoNotAbort(t *testing.T) {
	svc := newTestService(t, zeroDistanceGeocoder(), nil)

	result, err := svc.Calculate(context.Background(), Request{
		LotIDs:   "86, 999, banana",
		Delivery: "Front delivery",
	}, false)
	if err != nil {
		t.Fatalf("expected failures to surface in the result, got error %v", err)
	}

	if len(result.Lines) != 1 {
		t.Fatalf("expected 1 priced line, got %d", len(result.Lines))
	}
	if len(result.LookupFailures) != 2 {
		t.Fatalf("expected 2 failure strings, got %v", result.LookupFailures)
	}
	if result.LookupFailures[0] != "LOT 999 — not found in catalog" {
		t.Fatalf("unexpected failure display %q", result.LookupFailures[0])
	}
	if result.LookupFailures[1] != "banana — invalid: not a lot number" {
		t.Fatalf("unexpected failure display %q", result.LookupFailures[1])
	}
}

func TestCalculate_TooManyLotsFails(t *testing.T) {
	svc := newTestService(t, zeroDistanceGeocoder(), nil)

	_, err := svc.Calculate(context.Background(), Request{
		LotIDs:   "1,2,3,4,5,6,7,8,9,10,11",
		Delivery: "Front delivery",
	}, false)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCalculate_EmptyPackingUsesSuggestion(t *testing.T) {
	svc := newTestService(t, zeroDistanceGeocoder(), nil)

	// Lot 89 is glass and steel, so the advisor wants a wood crate.
	result, err := svc.Calculate(context.Background(), Request{
		LotIDs:   "89",
		Delivery: "Front delivery",
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Packing != "Wood crate" {
		t.Fatalf("expected suggested packing to be chosen, got %q", result.Packing)
	}
	if result.SuggestedPacking != packing.WoodCrate {
		t.Fatalf("expected Wood crate suggestion, got %q", result.SuggestedPacking)
	}
}

func TestCalculate_UnknownOptionsRejected(t *testing.T) {
	svc := newTestService(t, zeroDistanceGeocoder(), nil)
	ctx := context.Background()

	_, err := svc.Calculate(ctx, Request{
		LotIDs: "86", Packing: "Shrink wrap", Delivery: "Front delivery",
	}, false)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for unknown packing, got %v", err)
	}

	_, err = svc.Calculate(ctx, Request{
		LotIDs: "86", Packing: "Wood crate", Delivery: "Teleport",
	}, false)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for unknown delivery, got %v", err)
	}
}

func TestCalculate_MarginIgnoredWithoutAdmin(t *testing.T) {
	svc := newTestService(t, zeroDistanceGeocoder(), nil)

	result, err := svc.Calculate(context.Background(), Request{
		LotIDs:        "86",
		Delivery:      "Front delivery",
		MarginPercent: 25,
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MarginCents != 0 {
		t.Fatalf("expected no margin without admin, got %d", result.MarginCents)
	}
}

func TestCalculate_MarginAppliedForAdmin(t *testing.T) {
	svc := newTestService(t, zeroDistanceGeocoder(), nil)

	result, err := svc.Calculate(context.Background(), Request{
		LotIDs:        "86",
		Delivery:      "Front delivery",
		MarginPercent: 10,
	}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Lot 86 prices at 44000 at zero distance.
	if result.MarginCents != 4400 {
		t.Fatalf("expected 10%% margin of 4400, got %d", result.MarginCents)
	}
	if result.TotalCents != 48400 {
		t.Fatalf("expected total 48400, got %d", result.TotalCents)
	}
}

func TestCalculate_InsuranceAddedToTotal(t *testing.T) {
	svc := newTestService(t, zeroDistanceGeocoder(), nil)

	result, err := svc.Calculate(context.Background(), Request{
		LotIDs:         "93",
		Delivery:       "Front delivery",
		InsuranceCents: 5000,
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalCents != 27000 {
		t.Fatalf("expected 22000+5000 = 27000, got %d", result.TotalCents)
	}
}

func TestCalculate_CurrencyConversion(t *testing.T) {
	svc := newTestService(t, zeroDistanceGeocoder(), nil)

	result, err := svc.Calculate(context.Background(), Request{
		LotIDs:   "93",
		Delivery: "Front delivery",
		Currency: "USD",
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Currency != "USD" || result.Symbol != "$" {
		t.Fatalf("expected USD, got %s %s", result.Currency, result.Symbol)
	}
	if result.ConvertedTotalCents != 23760 {
		t.Fatalf("expected 22000*1.08 = 23760, got %d", result.ConvertedTotalCents)
	}
}

func TestCalculate_GeocodeFailureStillQuotes(t *testing.T) {
	svc := newTestService(t, &stubGeocoder{err: errors.New("nominatim down")}, nil)

	result, err := svc.Calculate(context.Background(), Request{
		LotIDs:   "86",
		Delivery: "Front delivery",
		Address:  "somewhere far away",
	}, false)
	if err != nil {
		t.Fatalf("expected graceful degradation, got %v", err)
	}
	if result.DistanceKm != 0 || result.SubtotalCents != 44000 {
		t.Fatalf("expected zero-distance fallback, got %+v", result)
	}
}

func TestCalculate_DaysRemainingClampedAtZero(t *testing.T) {
	svc := newTestService(t, zeroDistanceGeocoder(), nil)
	svc.now = func() time.Time { return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC) }

	result, err := svc.Calculate(context.Background(), Request{
		LotIDs:   "86",
		Delivery: "Front delivery",
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DaysRemaining != 0 {
		t.Fatalf("expected expired quote to clamp at 0 days, got %d", result.DaysRemaining)
	}
}

func TestSuggestPacking(t *testing.T) {
	svc := newTestService(t, zeroDistanceGeocoder(), nil)

	suggestion, err := svc.SuggestPacking("89, 93, 999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if suggestion.Advice.Overall != packing.WoodCrate {
		t.Fatalf("expected Wood crate overall, got %q", suggestion.Advice.Overall)
	}
	if len(suggestion.Advice.PerLot) != 2 {
		t.Fatalf("expected advice for the 2 found lots, got %d", len(suggestion.Advice.PerLot))
	}
	if len(suggestion.Failures) != 1 {
		t.Fatalf("expected 1 failure string, got %v", suggestion.Failures)
	}
}

func TestRenderPDF_UnavailableWithoutRenderer(t *testing.T) {
	svc := newTestService(t, zeroDistanceGeocoder(), nil)

	_, _, err := svc.RenderPDF(context.Background(), Request{
		LotIDs: "86", Delivery: "Front delivery",
	}, false)
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected KindUnavailable, got %v", err)
	}
}

func TestRenderPDF_ProducesDocument(t *testing.T) {
	svc := newTestService(t, zeroDistanceGeocoder(), pdf.NewGenerator(""))

	out, filename, err := svc.RenderPDF(context.Background(), Request{
		LotIDs:   "86, 93",
		Delivery: "Front delivery",
		Address:  "Paris, France",
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected PDF bytes")
	}
	if filename == "" || filename[len(filename)-4:] != ".pdf" {
		t.Fatalf("expected .pdf filename, got %q", filename)
	}
}
