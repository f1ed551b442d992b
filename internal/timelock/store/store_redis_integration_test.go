//go:build integration

package store_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"accessexplorer/internal/timelock/models"
	"accessexplorer/internal/timelock/store"
	"accessexplorer/pkg/platform/sentinel"
	"accessexplorer/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *store.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.cache = store.NewRedisCache(s.redis.Client, 5*time.Minute, "test")
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestOperationsRoundTrip() {
	ctx := context.Background()
	lists := models.OperationLists{
		Scheduled: []models.Operation{{
			ID: "s1", Type: models.OperationScheduled, BlockNumber: 10, BlockTimestamp: 100,
			OperationID: "0xop", Delay: "3600", Data: "0x",
		}},
		RoleGranted: []models.Operation{{ID: "g1", Type: models.OperationRoleGranted, Role: "0xr", Account: "0xa"}},
	}

	s.Require().NoError(s.cache.SaveOperations(ctx, 30, lists))
	got, err := s.cache.FindOperations(ctx, 30)
	s.Require().NoError(err)
	s.Equal(lists.Scheduled, got.Scheduled)
	s.Equal(lists.RoleGranted, got.RoleGranted)

	ttl, err := s.redis.Client.TTL(ctx, "test:"+store.OperationsKey(30).String()).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *RedisCacheSuite) TestRoleEventsRoundTrip() {
	ctx := context.Background()
	lists := models.RoleEventLists{
		Granted: []models.RoleEvent{{ID: "g1", Role: "0xr", Account: "0xA", BlockTimestamp: 10}},
		Revoked: []models.RoleEvent{{ID: "r1", Role: "0xr", Account: "0xA", BlockTimestamp: 20}},
	}
	s.Require().NoError(s.cache.SaveRoleEvents(ctx, 30, lists))

	got, err := s.cache.FindRoleEvents(ctx, 30)
	s.Require().NoError(err)
	s.Equal(lists, got)
}

func (s *RedisCacheSuite) TestControllerRoundTrip() {
	ctx := context.Background()
	info := models.ControllerInfo{
		Address:              "0xabc",
		IsTimelockController: true,
		MinDelay:             big.NewInt(86400),
		Calls:                []models.CallResult{{Function: models.FuncGetMinDelay, OK: true}},
	}
	s.Require().NoError(s.cache.SaveController(ctx, 30, info))

	got, err := s.cache.FindController(ctx, 30, "0xABC")
	s.Require().NoError(err)
	s.True(got.IsTimelockController)
	s.Equal(0, got.MinDelay.Cmp(big.NewInt(86400)))
}

func (s *RedisCacheSuite) TestMiss() {
	_, err := s.cache.FindRoleEvents(context.Background(), 1)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
