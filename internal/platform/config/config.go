package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"vendorscreen/internal/evidence/cache"
	"vendorscreen/internal/evidence/providers"
	pkgstrings "vendorscreen/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	LogLevel      string
	LogFormat     string
}

// Storage selects the persistence backends. Empty URLs fall back to
// in-memory stores and disable the optional layers.
type Storage struct {
	DatabaseURL string
	RedisURL    string
}

// Audit configures the optional Kafka forwarding of audit entries.
type Audit struct {
	KafkaBrokers []string
	Topic        string
}

// Evidence configures the three providers and the reuse window.
type Evidence struct {
	NTS         providers.Config
	OpenDART    providers.Config
	G2B         providers.Config
	CacheWindow time.Duration
}

type Config struct {
	Server   Server
	Storage  Storage
	Audit    Audit
	Evidence Evidence
}

const (
	DefaultAddr       = ":8080"
	DefaultAuditTopic = "vendorscreen.audit"
)

// FromEnv builds a Config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary lookup function.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	timeout, err := parseDuration(get("PROVIDER_TIMEOUT", ""), providers.DefaultTimeout)
	if err != nil {
		return Config{}, fmt.Errorf("PROVIDER_TIMEOUT: %w", err)
	}
	window, err := parseDuration(get("EVIDENCE_CACHE_WINDOW", ""), cache.DefaultWindow)
	if err != nil {
		return Config{}, fmt.Errorf("EVIDENCE_CACHE_WINDOW: %w", err)
	}

	provider := func(keyVar, endpointVar string) providers.Config {
		return providers.Config{
			APIKey:   get(keyVar, ""),
			Endpoint: get(endpointVar, ""),
			Timeout:  timeout,
		}
	}

	return Config{
		Server: Server{
			Addr:          get("VENDORSCREEN_ADDR", DefaultAddr),
			JWTSigningKey: get("JWT_SIGNING_KEY", ""),
			LogLevel:      get("LOG_LEVEL", "info"),
			LogFormat:     get("LOG_FORMAT", "json"),
		},
		Storage: Storage{
			DatabaseURL: get("DATABASE_URL", ""),
			RedisURL:    get("REDIS_URL", ""),
		},
		Audit: Audit{
			KafkaBrokers: pkgstrings.SplitList(get("KAFKA_BROKERS", "")),
			Topic:        get("AUDIT_TOPIC", DefaultAuditTopic),
		},
		Evidence: Evidence{
			NTS:         provider("DATA_GO_KR_API_KEY", "NTS_ENDPOINT"),
			OpenDART:    provider("OPENDART_API_KEY", "OPENDART_ENDPOINT"),
			G2B:         provider("G2B_API_KEY", "G2B_ENDPOINT"),
			CacheWindow: window,
		},
	}, nil
}

func parseDuration(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", raw)
	}
	return d, nil
}
