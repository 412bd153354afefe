// Package service provides the lot lookup business logic.
package service

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"shipquote_backend/internal/catalog/repository"
	"shipquote_backend/platform/apperr"
	"shipquote_backend/platform/logger"
)

// MaxLotsPerQuote bounds the number of lot tokens accepted per lookup.
const MaxLotsPerQuote = 10

// Status classifies the outcome of resolving a single lot token.
type Status string

const (
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
	StatusInvalid  Status = "invalid"
)

// ResolvedLot is the per-token lookup outcome. Record is only meaningful when
// Status is StatusFound; Token always preserves the user's input verbatim.
type ResolvedLot struct {
	Token  string
	ID     int
	Status Status
	Record repository.LotRecord
}

// Display renders the outcome the way the quote summary shows it.
func (r ResolvedLot) Display() string {
	switch r.Status {
	case StatusFound:
		return fmt.Sprintf("LOT %d — %s", r.ID, firstLine(r.Record.Description))
	case StatusNotFound:
		return fmt.Sprintf("LOT %d — not found in catalog", r.ID)
	default:
		return fmt.Sprintf("%s — invalid: not a lot number", r.Token)
	}
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}

// Service provides lot lookup and catalog replacement.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Repository exposes the read store for other modules.
func (s *Service) Repository() repository.Repository {
	return s.repo
}

// Lookup resolves a comma-separated list of lot tokens. The output order
// mirrors the input token order exactly; duplicates are allowed. The second
// return value is the sorted set of sale numbers of the found lots.
//
// More than MaxLotsPerQuote tokens is a validation failure and performs no
// catalog access.
func (s *Service) Lookup(raw string) ([]ResolvedLot, []string, error) {
	tokens := splitTokens(raw)
	if len(tokens) > MaxLotsPerQuote {
		return nil, nil, apperr.Validation(
			fmt.Sprintf("maximum %d lots allowed per quote", MaxLotsPerQuote))
	}

	resolved := make([]ResolvedLot, 0, len(tokens))
	saleSet := make(map[string]struct{})

	for _, token := range tokens {
		id, ok := parseLotToken(token)
		if !ok {
			resolved = append(resolved, ResolvedLot{Token: token, Status: StatusInvalid})
			continue
		}

		record, found := s.repo.Get(id)
		if !found {
			resolved = append(resolved, ResolvedLot{Token: token, ID: id, Status: StatusNotFound})
			continue
		}

		resolved = append(resolved, ResolvedLot{Token: token, ID: id, Status: StatusFound, Record: record})
		if record.SaleNumber != "" {
			saleSet[record.SaleNumber] = struct{}{}
		}
	}

	saleNumbers := make([]string, 0, len(saleSet))
	for sale := range saleSet {
		saleNumbers = append(saleNumbers, sale)
	}
	sort.Strings(saleNumbers)

	return resolved, saleNumbers, nil
}

// ReplaceFromWorkbook parses an uploaded Excel workbook and swaps the catalog.
// A file missing the required columns is rejected wholesale.
func (s *Service) ReplaceFromWorkbook(r io.Reader) (int, error) {
	records, err := repository.ParseWorkbook(r)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindValidation, err.Error(), err)
	}
	if err := s.repo.Replace(records); err != nil {
		return 0, apperr.Validation(err.Error())
	}

	s.log.CatalogLoaded("upload", len(records))
	return len(records), nil
}

// splitTokens splits on commas, trims each token, and drops blanks.
func splitTokens(raw string) []string {
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}
	return tokens
}

// parseLotToken accepts numeric strings, truncating a fractional part toward
// the integer catalog key ("86.9" resolves lot 86). Negative numbers are
// invalid, matching the catalog's positive-id invariant.
func parseLotToken(token string) (int, bool) {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	id := int(f)
	if id < 0 {
		return 0, false
	}
	return id, true
}
