package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "grants_then_revokes", cfg.SignerReplay)
	assert.Equal(t, devSigningKey, cfg.JWTSigningKey)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, "explorer.analytics", cfg.Kafka.Topic)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("EXPLORER_ADDR", ":9000")
	t.Setenv("EXPLORER_SIGNER_REPLAY", "chronological")
	t.Setenv("EXPLORER_TIMELOCK_SUBGRAPH_URLS", "rootstock:http://localhost:8000/subgraphs/name/timelock")
	t.Setenv("EXPLORER_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("EXPLORER_KAFKA_BROKERS", "localhost:9092, localhost:9093,")
	t.Setenv("EXPLORER_CORS_ORIGINS", "https://a.app, https://b.app,https://a.app")
	t.Setenv("EXPLORER_RATE_LIMIT_RPS", "5")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "chronological", cfg.SignerReplay)
	assert.Equal(t, "http://localhost:8000/subgraphs/name/timelock", cfg.TimelockSubgraphURLs["rootstock"])
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"https://a.app", "https://b.app"}, cfg.CORSOrigins)
	assert.InDelta(t, 5.0, cfg.RateLimit.RPS, 0.001)
}

func TestValidate(t *testing.T) {
	valid := Server{
		Environment:     EnvDevelopment,
		SignerReplay:    "grants_then_revokes",
		UpstreamTimeout: time.Second,
	}
	require.NoError(t, valid.Validate())

	t.Run("production requires a signing key", func(t *testing.T) {
		cfg := valid
		cfg.Environment = EnvProduction
		assert.ErrorContains(t, cfg.Validate(), "EXPLORER_JWT_SIGNING_KEY")
	})

	t.Run("unknown replay mode", func(t *testing.T) {
		cfg := valid
		cfg.SignerReplay = "random"
		assert.ErrorContains(t, cfg.Validate(), "signer replay")
	})

	t.Run("kafka topic required with brokers", func(t *testing.T) {
		cfg := valid
		cfg.Kafka.Brokers = []string{"localhost:9092"}
		assert.ErrorContains(t, cfg.Validate(), "kafka topic")
	})
}
