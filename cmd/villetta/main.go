package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"villetta/internal/app/policies"
	availabilityapp "villetta/internal/app/services/availability"
	pricingapp "villetta/internal/app/services/pricing"
	"villetta/internal/domain/property"
	"villetta/internal/infra/broker/kafka"
	"villetta/internal/infra/config"
	mongodb "villetta/internal/infra/db/mongo"
	ginserver "villetta/internal/infra/http/gin"
	"villetta/internal/infra/obs"
	"villetta/internal/infra/storage/memory"
	"villetta/internal/infra/upstream/calendarfeed"
	"villetta/internal/infra/upstream/checkout"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := obs.NewLogger(getenv("APP_ENV", "dev"))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	properties, ready, err := buildPropertyRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("property registry unavailable", "error", err)
		os.Exit(1)
	}

	var events *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		events, err = kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicPrefix)
		if err != nil {
			logger.Error("kafka producer unavailable", "error", err)
			os.Exit(1)
		}
		defer events.Close()
	}

	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	limiter := rate.NewLimiter(rate.Limit(cfg.UpstreamRPS), cfg.UpstreamBurst)

	feed := &calendarfeed.Client{
		HTTP:    httpClient,
		BaseURL: cfg.CalendarFeedURL,
		Limiter: limiter,
		Logger:  logger,
	}
	quotes := &checkout.Client{
		HTTP:      httpClient,
		BaseURL:   cfg.CheckoutURL,
		QueryHash: cfg.CheckoutQueryHash,
		Currency:  cfg.Currency,
		Limiter:   limiter,
		Logger:    logger,
	}

	cache := memory.NewCache(nil)

	// A typed nil must not leak into the interface value.
	var publisher policies.EventPublisher
	if events != nil {
		publisher = events
	}

	availabilitySvc := availabilityapp.NewService(
		properties,
		feed,
		cache,
		cfg.CalendarCacheTTL,
		publisher,
		logger,
		nil,
	)
	pricingSvc := pricingapp.NewService(properties, quotes, logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: ready,
	}, ginserver.Handlers{
		Availability: ginserver.AvailabilityHandler{Service: availabilitySvc},
		Pricing:      ginserver.PricingHandler{Service: pricingSvc},
		Property:     ginserver.PropertyHandler{Repo: properties},
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildPropertyRepository(ctx context.Context, cfg config.Config, logger *slog.Logger) (property.Repository, func() error, error) {
	if cfg.PropertiesMode == "mongo" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		ready := func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		return mongodb.NewPropertyRepository(client.DB), ready, nil
	}

	repo := memory.NewPropertyRepository()
	path := cfg.PropertyFixtures
	if path == "" {
		path = defaultPropertyFixturesPath()
	}
	if err := loadPropertyFixtures(ctx, repo, path, logger); err != nil {
		return nil, nil, err
	}
	return repo, func() error { return nil }, nil
}

func loadPropertyFixtures(ctx context.Context, repo *memory.PropertyRepository, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("property fixtures file not found, registry starts empty", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures []property.Property
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	for _, fx := range fixtures {
		if fx.ID == "" || fx.UpstreamCalendarID == "" {
			logger.Error("fixture invalid, skipping", "property_id", fx.ID)
			continue
		}
		if fx.MaxGuests < 1 {
			fx.MaxGuests = 2
		}
		if err := repo.Save(ctx, &fx); err != nil {
			return err
		}
		logger.Info("property fixture imported", "property_id", fx.ID, "slug", fx.Slug)
	}
	return nil
}

func defaultPropertyFixturesPath() string {
	return filepath.Join("data", "properties.json")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
