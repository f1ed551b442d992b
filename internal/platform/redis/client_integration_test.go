//go:build integration

package redis

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"accessexplorer/internal/platform/config"
	"accessexplorer/pkg/testutil/containers"
)

func TestNewConnectsAndReportsHealth(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	client, err := New(ctx, config.RedisConfig{URL: rc.Addr, PoolSize: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Health(ctx))
}

func TestNewWithoutURLIsDisabled(t *testing.T) {
	client, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	require.Nil(t, client)
}

func TestTracedClientReportsMissAsNil(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	client, err := New(ctx, config.RedisConfig{URL: rc.Addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	err = client.Get(ctx, "explorer:missing").Err()
	require.ErrorIs(t, err, goredis.Nil)
}
