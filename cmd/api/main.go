package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipquote_backend/internal/catalog"
	catalogrepo "shipquote_backend/internal/catalog/repository"
	catalogsvc "shipquote_backend/internal/catalog/service"
	"shipquote_backend/internal/geocode"
	apphttp "shipquote_backend/internal/http"
	"shipquote_backend/internal/http/router"
	"shipquote_backend/internal/packing"
	"shipquote_backend/internal/pdf"
	"shipquote_backend/internal/pricing"
	"shipquote_backend/internal/quotes"
	quotessvc "shipquote_backend/internal/quotes/service"
	"shipquote_backend/platform/config"
	"shipquote_backend/platform/logger"
	"shipquote_backend/platform/validator"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	val := validator.New()

	geocodeCache := initGeocodeCache(ctx, cfg, log)
	geocoder := geocode.NewService(cfg, geocodeCache, log)

	catalogRepo := catalogrepo.NewInMemory(catalogrepo.DemoCatalog())
	log.CatalogLoaded("demo", catalogRepo.Size())
	catalogService := catalogsvc.New(catalogRepo, log)
	loadCatalogFile(cfg, catalogService, log)

	engine, err := initPricingEngine(cfg, val, geocoder, log)
	if err != nil {
		log.Error("failed to load pricing tables", "error", err)
		panic("failed to load pricing tables: " + err.Error())
	}

	renderer := pdf.NewGenerator("")

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	catalogModule := catalog.NewModule(catalogService)
	geocodeModule := geocode.NewModule(geocoder)
	quotesService := quotessvc.New(catalogService, packing.New(), engine, renderer, cfg, log)
	quotesModule := quotes.NewModule(quotesService)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Env:    cfg.Env,
		Modules: []apphttp.Module{
			catalogModule,
			geocodeModule,
			quotesModule,
		},
	}

	engineHTTP := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engineHTTP.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initPricingEngine loads the multiplier tables (defaults plus the optional
// PRICING_CONFIG overlay) and builds the engine around the configured origin.
func initPricingEngine(cfg config.PricingConfig, val *validator.Validator, geocoder pricing.Geocoder, log *logger.Logger) (*pricing.Engine, error) {
	tables, err := pricing.Load(cfg.GetPricingConfigPath(), val)
	if err != nil {
		return nil, err
	}
	if cfg.GetPricingConfigPath() != "" {
		log.Info("pricing tables loaded", "path", cfg.GetPricingConfigPath())
	}

	origin := geocode.Coordinate{Lat: cfg.GetOriginLat(), Lon: cfg.GetOriginLon()}
	return pricing.NewEngine(tables, geocoder, origin, log), nil
}

// initGeocodeCache picks the Redis-backed cache when REDIS_URL is set and
// reachable, and falls back to the in-process cache otherwise.
func initGeocodeCache(ctx context.Context, cfg config.GeocodeConfig, log *logger.Logger) geocode.Cache {
	if cfg.GetRedisURL() == "" {
		log.Info("geocode cache: in-memory")
		return geocode.NewMemoryCache()
	}

	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Warn("invalid REDIS_URL; falling back to in-memory geocode cache", "error", err)
		return geocode.NewMemoryCache()
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable; falling back to in-memory geocode cache", "error", err)
		return geocode.NewMemoryCache()
	}

	log.Info("geocode cache: redis", "addr", opts.Addr)
	return geocode.NewRedisCache(client)
}

// loadCatalogFile replaces the demo catalog with CATALOG_FILE when set. A
// bad file keeps the demo catalog so the service still starts.
func loadCatalogFile(cfg config.CatalogConfig, svc *catalogsvc.Service, log *logger.Logger) {
	path := cfg.GetCatalogFilePath()
	if path == "" {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warn("cannot open catalog file; keeping demo catalog", "path", path, "error", err)
		return
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := svc.ReplaceFromWorkbook(f); err != nil {
		log.Warn("catalog file rejected; keeping demo catalog", "path", path, "error", err)
	}
}
