package store

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessexplorer/internal/timelock/models"
	"accessexplorer/pkg/platform/sentinel"
)

func TestKeyString(t *testing.T) {
	assert.Equal(t, "timelock:30:operations", OperationsKey(30).String())
	assert.Equal(t, "timelock:30:role_events", RoleEventsKey(30).String())
	assert.Equal(t, "timelock:1:controller:0xabc", ControllerKey(1, "0xABC").String())
}

func TestInMemoryCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCache(time.Minute)

	_, err := cache.FindOperations(ctx, 30)
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	ops := models.OperationLists{Scheduled: []models.Operation{{ID: "s1", Type: models.OperationScheduled}}}
	require.NoError(t, cache.SaveOperations(ctx, 30, ops))
	got, err := cache.FindOperations(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, ops, got)

	_, err = cache.FindOperations(ctx, 1)
	require.ErrorIs(t, err, sentinel.ErrNotFound, "chains are isolated")

	events := models.RoleEventLists{Granted: []models.RoleEvent{{ID: "g1"}}}
	require.NoError(t, cache.SaveRoleEvents(ctx, 30, events))
	gotEvents, err := cache.FindRoleEvents(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, events, gotEvents)

	info := models.ControllerInfo{Address: "0xabc", IsTimelockController: true, MinDelay: big.NewInt(60)}
	require.NoError(t, cache.SaveController(ctx, 30, info))
	gotInfo, err := cache.FindController(ctx, 30, "0xABC")
	require.NoError(t, err)
	assert.True(t, gotInfo.IsTimelockController)
}

func TestInMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	cache := NewInMemoryCache(30 * time.Second)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.SaveRoleEvents(ctx, 30, models.RoleEventLists{}))
	_, err := cache.FindRoleEvents(ctx, 30)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = cache.FindRoleEvents(ctx, 30)
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}
