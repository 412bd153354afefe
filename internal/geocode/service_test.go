package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"shipquote_backend/platform/apperr"
	"shipquote_backend/platform/logger"
)

type stubConfig struct {
	url string
}

func (c stubConfig) GetNominatimURL() string          { return c.url }
func (c stubConfig) GetNominatimUserAgent() string    { return "test-agent/1.0" }
func (c stubConfig) GetGeocodeTimeout() time.Duration { return 2 * time.Second }
func (c stubConfig) GetRedisURL() string              { return "" }

const parisResponse = `[{"display_name":"Paris, Ile-de-France, France","lat":"48.8566","lon":"2.3522"}]`

func newTestServer(t *testing.T, body string, calls *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)
		if r.Header.Get("User-Agent") != "test-agent/1.0" {
			t.Errorf("missing custom user agent, got %q", r.Header.Get("User-Agent"))
		}
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("expected format=json, got %q", r.URL.Query().Get("format"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestGeocode_ParsesBestMatch(t *testing.T) {
	var calls int64
	srv := newTestServer(t, parisResponse, &calls)
	defer srv.Close()

	svc := NewService(stubConfig{url: srv.URL}, NewMemoryCache(), logger.New("development"))

	coord, err := svc.Geocode(context.Background(), "Paris, France")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coord == nil {
		t.Fatalf("expected a coordinate")
	}
	if coord.Lat != 48.8566 || coord.Lon != 2.3522 {
		t.Fatalf("unexpected coordinate %+v", coord)
	}
}

func TestGeocode_CacheHitAvoidsSecondCall(t *testing.T) {
	var calls int64
	srv := newTestServer(t, parisResponse, &calls)
	defer srv.Close()

	svc := NewService(stubConfig{url: srv.URL}, NewMemoryCache(), logger.New("development"))
	ctx := context.Background()

	if _, err := svc.Geocode(ctx, "Paris, France"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Same address, different casing and spacing, must hit the cache.
	if _, err := svc.Geocode(ctx, "  paris,   FRANCE "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Fatalf("expected exactly 1 upstream call, got %d", got)
	}
}

func TestGeocode_NoResultReturnsNilAndIsMemoized(t *testing.T) {
	var calls int64
	srv := newTestServer(t, `[]`, &calls)
	defer srv.Close()

	svc := NewService(stubConfig{url: srv.URL}, NewMemoryCache(), logger.New("development"))
	ctx := context.Background()

	coord, err := svc.Geocode(ctx, "qqqqqq nowhere")
	if err != nil {
		t.Fatalf("expected no-result to be a clean outcome, got %v", err)
	}
	if coord != nil {
		t.Fatalf("expected nil coordinate, got %+v", coord)
	}

	if _, err := svc.Geocode(ctx, "qqqqqq nowhere"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Fatalf("expected the miss to be memoized, got %d upstream calls", got)
	}
}

func TestGeocode_EmptyQuery(t *testing.T) {
	svc := NewService(stubConfig{url: "http://127.0.0.1:0"}, NewMemoryCache(), logger.New("development"))

	coord, err := svc.Geocode(context.Background(), "   ")
	if err != nil || coord != nil {
		t.Fatalf("expected (nil, nil) for blank query, got %+v, %v", coord, err)
	}
}

func TestGeocode_UpstreamFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewService(stubConfig{url: srv.URL}, NewMemoryCache(), logger.New("development"))

	_, err := svc.Geocode(context.Background(), "Paris, France")
	if err == nil {
		t.Fatalf("expected error for upstream failure")
	}
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected KindUnavailable, got %v", err)
	}
}

func TestSearch_ReturnsSuggestions(t *testing.T) {
	body := `[
		{"display_name":"Paris, France","lat":"48.8566","lon":"2.3522"},
		{"display_name":"Paris, Texas, USA","lat":"33.6609","lon":"-95.5555"}
	]`
	var calls int64
	srv := newTestServer(t, body, &calls)
	defer srv.Close()

	svc := NewService(stubConfig{url: srv.URL}, NewMemoryCache(), logger.New("development"))

	suggestions, err := svc.Search(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].DisplayName != "Paris, France" {
		t.Fatalf("expected ranked order preserved, got %q first", suggestions[0].DisplayName)
	}
	if suggestions[1].Lon != -95.5555 {
		t.Fatalf("unexpected longitude %v", suggestions[1].Lon)
	}
}
