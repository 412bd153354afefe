// Package service orchestrates quote assembly: lot lookup, packing advice,
// pricing, and document export.
package service

import (
	"context"
	"fmt"
	"time"

	"shipquote_backend/internal/catalog/repository"
	catalogsvc "shipquote_backend/internal/catalog/service"
	"shipquote_backend/internal/packing"
	"shipquote_backend/internal/pdf"
	"shipquote_backend/internal/pricing"
	"shipquote_backend/platform/apperr"
	"shipquote_backend/platform/config"
	"shipquote_backend/platform/logger"

	"github.com/google/uuid"
)

// Request carries all quote inputs. Margin is only applied when the caller
// is allowed to set it.
type Request struct {
	LotIDs         string
	Packing        string
	Delivery       string
	Address        string
	Currency       string
	InsuranceCents int64
	MarginPercent  float64
}

// Line is one priced lot in a quote.
type Line struct {
	LotID       int
	Description string
	WeightClass string
	Material    string
	AmountCents int64
}

// Result is a fully assembled quote. It is recomputed from scratch on every
// request; nothing is persisted.
type Result struct {
	QuoteNumber    string
	CreatedAt      time.Time
	Lines          []Line
	LookupFailures []string
	SaleNumbers    []string

	Packing          string
	SuggestedPacking packing.Type
	PackingReason    string
	Delivery         string
	Address          string

	DistanceKm float64

	SubtotalCents  int64
	MarginCents    int64
	InsuranceCents int64
	TotalCents     int64

	Currency            string
	Symbol              string
	ConvertedTotalCents int64

	ValidUntil    time.Time
	DaysRemaining int
}

// Suggestion is the advisor output for a packing-suggestion request.
type Suggestion struct {
	Advice   packing.Advice
	Failures []string
}

// Service assembles quotes. The renderer may be nil, in which case PDF
// export reports unavailable without affecting quote calculation.
type Service struct {
	catalog  *catalogsvc.Service
	advisor  *packing.Advisor
	engine   *pricing.Engine
	renderer *pdf.Generator
	cfg      config.QuoteConfig
	log      *logger.Logger
	now      func() time.Time
}

// New creates a quotes service.
func New(catalog *catalogsvc.Service, advisor *packing.Advisor, engine *pricing.Engine,
	renderer *pdf.Generator, cfg config.QuoteConfig, log *logger.Logger) *Service {
	return &Service{
		catalog:  catalog,
		advisor:  advisor,
		engine:   engine,
		renderer: renderer,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Calculate assembles a quote. Per-lot lookup failures surface as display
// strings inside the result and never abort the quote; only structural
// problems (too many tokens, unknown options) fail.
func (s *Service) Calculate(ctx context.Context, req Request, allowMargin bool) (*Result, error) {
	resolved, saleNumbers, err := s.catalog.Lookup(req.LotIDs)
	if err != nil {
		return nil, err
	}

	records, failures := splitOutcomes(resolved)
	advice := s.advisor.Suggest(records)

	chosenPacking := req.Packing
	if chosenPacking == "" {
		chosenPacking = string(advice.Overall)
	}
	if !packing.Valid(packing.Type(chosenPacking)) {
		return nil, apperr.Validation(fmt.Sprintf("unknown packing option %q", chosenPacking))
	}
	if _, ok := s.engine.Tables().DeliveryFee(req.Delivery); !ok {
		return nil, apperr.Validation(fmt.Sprintf("unknown delivery option %q", req.Delivery))
	}

	priced := s.engine.Price(ctx, records, chosenPacking, req.Delivery, req.Address)

	var marginCents int64
	if allowMargin {
		marginCents = s.engine.ApplyMargin(priced.SubtotalCents, req.MarginPercent)
	}
	totalCents := priced.SubtotalCents + marginCents + req.InsuranceCents

	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}
	convertedCents, code, symbol := s.engine.Convert(totalCents, currency)

	validUntil := s.cfg.GetQuoteValidUntil()
	result := &Result{
		QuoteNumber:         "SQ-" + uuid.NewString(),
		CreatedAt:           s.now(),
		Lines:               toLines(priced.Lines),
		LookupFailures:      failures,
		SaleNumbers:         saleNumbers,
		Packing:             chosenPacking,
		SuggestedPacking:    advice.Overall,
		PackingReason:       advice.OverallReason,
		Delivery:            req.Delivery,
		Address:             req.Address,
		DistanceKm:          priced.DistanceKm,
		SubtotalCents:       priced.SubtotalCents,
		MarginCents:         marginCents,
		InsuranceCents:      req.InsuranceCents,
		TotalCents:          totalCents,
		Currency:            code,
		Symbol:              symbol,
		ConvertedTotalCents: convertedCents,
		ValidUntil:          validUntil,
		DaysRemaining:       daysRemaining(s.now(), validUntil),
	}

	s.log.Info("quote_calculated",
		"quote_number", result.QuoteNumber,
		"lots", len(result.Lines),
		"failures", len(result.LookupFailures),
		"total_cents", result.TotalCents,
	)
	return result, nil
}

// SuggestPacking resolves the lots and returns the advisor output without
// pricing anything.
func (s *Service) SuggestPacking(lotIDs string) (*Suggestion, error) {
	resolved, _, err := s.catalog.Lookup(lotIDs)
	if err != nil {
		return nil, err
	}

	records, failures := splitOutcomes(resolved)
	return &Suggestion{Advice: s.advisor.Suggest(records), Failures: failures}, nil
}

// RenderPDF assembles a quote and renders it. A missing renderer degrades
// the export action only; calculation stays available.
func (s *Service) RenderPDF(ctx context.Context, req Request, allowMargin bool) ([]byte, string, error) {
	if s.renderer == nil {
		return nil, "", apperr.Unavailable("PDF export is not available on this deployment")
	}

	result, err := s.Calculate(ctx, req, allowMargin)
	if err != nil {
		return nil, "", err
	}

	doc := pdf.QuoteDocument{
		QuoteNumber:         result.QuoteNumber,
		CreatedAt:           result.CreatedAt,
		ValidUntil:          result.ValidUntil,
		DaysRemaining:       result.DaysRemaining,
		SaleNumbers:         result.SaleNumbers,
		Lines:               toDocumentLines(result.Lines),
		LookupFailures:      result.LookupFailures,
		Packing:             result.Packing,
		Delivery:            result.Delivery,
		Address:             result.Address,
		DistanceKm:          result.DistanceKm,
		SubtotalCents:       result.SubtotalCents,
		MarginCents:         result.MarginCents,
		InsuranceCents:      result.InsuranceCents,
		TotalCents:          result.TotalCents,
		CurrencyCode:        result.Currency,
		CurrencySymbol:      result.Symbol,
		ConvertedTotalCents: result.ConvertedTotalCents,
		VerifyURL:           s.cfg.GetAppBaseURL() + "/quotes/" + result.QuoteNumber,
	}

	out, err := s.renderer.Render(doc)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindInternal, "quote PDF rendering failed", err)
	}

	filename := result.QuoteNumber + ".pdf"
	return out, filename, nil
}

func splitOutcomes(resolved []catalogsvc.ResolvedLot) (records []repository.LotRecord, failures []string) {
	failures = []string{}
	for _, lot := range resolved {
		if lot.Status == catalogsvc.StatusFound {
			records = append(records, lot.Record)
			continue
		}
		failures = append(failures, lot.Display())
	}
	return records, failures
}

func toLines(items []pricing.LineItem) []Line {
	lines := make([]Line, len(items))
	for i, item := range items {
		lines[i] = Line{
			LotID:       item.LotID,
			Description: item.Description,
			WeightClass: item.WeightClass,
			Material:    item.Material,
			AmountCents: item.AmountCents,
		}
	}
	return lines
}

func toDocumentLines(lines []Line) []pdf.Line {
	out := make([]pdf.Line, len(lines))
	for i, line := range lines {
		out[i] = pdf.Line{
			LotID:       line.LotID,
			Description: line.Description,
			WeightClass: line.WeightClass,
			Material:    line.Material,
			AmountCents: line.AmountCents,
		}
	}
	return out
}

// daysRemaining counts whole days until the validity date, clamped at zero
// once the quote has expired.
func daysRemaining(now, validUntil time.Time) int {
	days := int(validUntil.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
