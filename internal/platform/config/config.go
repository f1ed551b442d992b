package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"accessexplorer/pkg/platform/lists"
)

// Environment names the deployment flavor.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Server captures process level configuration. Values come from EXPLORER_*
// environment variables, e.g. EXPLORER_ADDR or EXPLORER_REDIS_URL.
type Server struct {
	Addr        string      `envconfig:"ADDR" default:":8080"`
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	// ChainsFile optionally points at a YAML file extending the built-in chains.
	ChainsFile string `envconfig:"CHAINS_FILE"`
	// network:url pairs, e.g. EXPLORER_SUBGRAPH_URLS=mainnet:https://...,sepolia:https://...
	SubgraphURLs         map[string]string `envconfig:"SUBGRAPH_URLS"`
	TimelockSubgraphURLs map[string]string `envconfig:"TIMELOCK_SUBGRAPH_URLS"`
	RPCURLs              map[string]string `envconfig:"RPC_URLS"`

	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
	CacheTTL        time.Duration `envconfig:"CACHE_TTL" default:"30s"`
	// SignerReplay selects the signer replay order: "grants_then_revokes" or "chronological".
	SignerReplay    string `envconfig:"SIGNER_REPLAY" default:"grants_then_revokes"`
	RefreshSchedule string `envconfig:"REFRESH_SCHEDULE"`

	DatabaseURL   string   `envconfig:"DATABASE_URL"`
	JWTSigningKey string   `envconfig:"JWT_SIGNING_KEY"`
	CORSOrigins   []string `envconfig:"CORS_ORIGINS" default:"*"`

	Redis     RedisConfig     `envconfig:"REDIS"`
	Kafka     KafkaConfig     `envconfig:"KAFKA"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
}

// RedisConfig configures the shared cache. An empty URL selects the in-memory cache.
type RedisConfig struct {
	URL          string        `envconfig:"URL"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

// KafkaConfig configures the analytics publisher. No brokers selects the log publisher.
type KafkaConfig struct {
	Brokers []string `envconfig:"BROKERS"`
	Topic   string   `envconfig:"TOPIC" default:"explorer.analytics"`
}

// RateLimitConfig is the per-client token bucket applied to the API.
type RateLimitConfig struct {
	RPS   float64 `envconfig:"RPS" default:"20"`
	Burst int     `envconfig:"BURST" default:"40"`
}

const devSigningKey = "dev-secret-key-change-in-production"

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := envconfig.Process("EXPLORER", &cfg); err != nil {
		return Server{}, fmt.Errorf("process environment: %w", err)
	}
	cfg.CORSOrigins = lists.Clean(cfg.CORSOrigins)
	cfg.Kafka.Brokers = lists.Clean(cfg.Kafka.Brokers)
	if cfg.JWTSigningKey == "" && cfg.Environment == EnvDevelopment {
		cfg.JWTSigningKey = devSigningKey
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c Server) Validate() error {
	var errs []error
	switch c.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("unknown environment %q", c.Environment))
	}
	if c.Environment == EnvProduction && (c.JWTSigningKey == "" || c.JWTSigningKey == devSigningKey) {
		errs = append(errs, errors.New("EXPLORER_JWT_SIGNING_KEY must be set in production"))
	}
	switch c.SignerReplay {
	case "grants_then_revokes", "chronological":
	default:
		errs = append(errs, fmt.Errorf("unknown signer replay mode %q", c.SignerReplay))
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, errors.New("upstream timeout must be positive"))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("cache ttl must not be negative"))
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate limit values must not be negative"))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("kafka topic is required when brokers are set"))
	}
	return errors.Join(errs...)
}
