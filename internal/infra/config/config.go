package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment
// variables.
type Config struct {
	Env      string
	HTTPAddr string

	CalendarFeedURL   string
	CheckoutURL       string
	CheckoutQueryHash string
	Currency          string
	UpstreamTimeout   time.Duration
	UpstreamRPS       float64
	UpstreamBurst     int

	CalendarCacheTTL time.Duration

	PropertiesMode    string
	PropertyFixtures  string
	MongoURI          string
	MongoDB           string

	KafkaBrokers     []string
	KafkaTopicPrefix string
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:               getEnv("APP_ENV", "dev"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		CalendarFeedURL:   os.Getenv("CALENDAR_FEED_URL"),
		CheckoutURL:       os.Getenv("CHECKOUT_URL"),
		CheckoutQueryHash: getEnv("CHECKOUT_QUERY_HASH", ""),
		Currency:          getEnv("PRICING_CURRENCY", "EUR"),
		PropertiesMode:    strings.ToLower(getEnv("PROPERTIES_MODE", "memory")),
		PropertyFixtures:  getEnv("PROPERTY_FIXTURES", ""),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDB:           getEnv("MONGO_DB", "villetta"),
		KafkaTopicPrefix:  getEnv("KAFKA_TOPIC_PREFIX", ""),
	}
	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	timeout, err := parseDurationEnv("UPSTREAM_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.UpstreamTimeout = timeout

	ttl, err := parseDurationEnv("CALENDAR_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.CalendarCacheTTL = ttl

	rps, err := parseFloatEnv("UPSTREAM_RPS", 2)
	if err != nil {
		return Config{}, err
	}
	cfg.UpstreamRPS = rps

	burst, err := parseIntEnv("UPSTREAM_BURST", 4)
	if err != nil {
		return Config{}, err
	}
	cfg.UpstreamBurst = burst

	if cfg.CalendarFeedURL == "" {
		return Config{}, fmt.Errorf("CALENDAR_FEED_URL is required")
	}
	if cfg.CheckoutURL == "" {
		return Config{}, fmt.Errorf("CHECKOUT_URL is required")
	}
	switch cfg.PropertiesMode {
	case "memory":
	case "mongo":
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when PROPERTIES_MODE=mongo")
		}
	default:
		return Config{}, fmt.Errorf("invalid PROPERTIES_MODE: %q", cfg.PropertiesMode)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseFloatEnv(key string, def float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s number: %w", key, err)
	}
	return f, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return n, nil
}
