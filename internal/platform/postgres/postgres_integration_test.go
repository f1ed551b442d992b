//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"accessexplorer/pkg/testutil/containers"
)

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	pg := containers.NewPostgresContainer(t)

	pool, err := New(ctx, pg.DSN)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool), "migrations must be re-runnable")

	var exists bool
	err = pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'favorites')`).Scan(&exists)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestNewWithoutDSN(t *testing.T) {
	pool, err := New(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, pool)
}
