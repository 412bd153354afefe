package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"shipquote_backend/platform/apperr"
	"shipquote_backend/platform/config"
	"shipquote_backend/platform/logger"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const maxSuggestions = 5

// Service is a rate-limited Nominatim client with a memoizing cache.
// Nominatim's usage policy allows one request per second, so all upstream
// calls share a single limiter and duplicate in-flight lookups are collapsed.
type Service struct {
	cfg     config.GeocodeConfig
	client  *http.Client
	cache   Cache
	limiter *rate.Limiter
	group   singleflight.Group
	log     *logger.Logger
}

// NewService creates a geocoding service backed by the given cache.
func NewService(cfg config.GeocodeConfig, cache Cache, log *logger.Logger) *Service {
	return &Service{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.GetGeocodeTimeout()},
		cache:   cache,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		log:     log,
	}
}

// Geocode resolves a free-text address to its best coordinate match.
// A query with no match returns (nil, nil); callers treat absence as a
// distinct outcome, not a failure. Results, including misses, are memoized.
func (s *Service) Geocode(ctx context.Context, query string) (*Coordinate, error) {
	key := normalizeQuery(query)
	if key == "" {
		return nil, nil
	}

	if entry, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		s.log.GeocodeEvent(key, true, boolToResults(entry.Found))
		if !entry.Found {
			return nil, nil
		}
		return &Coordinate{Lat: entry.Lat, Lon: entry.Lon}, nil
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		places, err := s.fetch(ctx, key, 1)
		if err != nil {
			return nil, err
		}

		entry := Entry{}
		if len(places) > 0 {
			coord, err := placeCoordinate(places[0])
			if err != nil {
				return nil, err
			}
			entry = Entry{Found: true, Lat: coord.Lat, Lon: coord.Lon}
		}

		if err := s.cache.Set(ctx, key, entry); err != nil {
			s.log.Warn("geocode_cache_write_failed", "key", key, "error", err.Error())
		}
		return entry, nil
	})
	if err != nil {
		s.log.GeocodeError(key, err)
		return nil, apperr.Wrap(apperr.KindUnavailable, "geocoding service unavailable", err)
	}

	entry := result.(Entry)
	s.log.GeocodeEvent(key, false, boolToResults(entry.Found))
	if !entry.Found {
		return nil, nil
	}
	return &Coordinate{Lat: entry.Lat, Lon: entry.Lon}, nil
}

// Search returns up to five candidate matches for a partial address. Used by
// the address suggestion control; results are not memoized since partial
// queries rarely repeat.
func (s *Service) Search(ctx context.Context, query string) ([]AddressSuggestion, error) {
	key := normalizeQuery(query)
	if key == "" {
		return nil, nil
	}

	places, err := s.fetch(ctx, key, maxSuggestions)
	if err != nil {
		s.log.GeocodeError(key, err)
		return nil, apperr.Wrap(apperr.KindUnavailable, "geocoding service unavailable", err)
	}

	suggestions := make([]AddressSuggestion, 0, len(places))
	for _, place := range places {
		coord, err := placeCoordinate(place)
		if err != nil {
			continue
		}
		suggestions = append(suggestions, AddressSuggestion{
			DisplayName: place.DisplayName,
			Lat:         coord.Lat,
			Lon:         coord.Lon,
		})
	}

	s.log.GeocodeEvent(key, false, len(suggestions))
	return suggestions, nil
}

func (s *Service) fetch(ctx context.Context, query string, limit int) ([]nominatimPlace, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint, err := url.Parse(s.cfg.GetNominatimURL())
	if err != nil {
		return nil, fmt.Errorf("invalid nominatim url: %w", err)
	}
	params := endpoint.Query()
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.cfg.GetNominatimUserAgent())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}
	return places, nil
}

func placeCoordinate(place nominatimPlace) (Coordinate, error) {
	lat, err := strconv.ParseFloat(place.Lat, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("parse lat %q: %w", place.Lat, err)
	}
	lon, err := strconv.ParseFloat(place.Lon, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("parse lon %q: %w", place.Lon, err)
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

// normalizeQuery lower-cases and collapses whitespace so trivially different
// spellings of the same address share one cache key.
func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

func boolToResults(found bool) int {
	if found {
		return 1
	}
	return 0
}
