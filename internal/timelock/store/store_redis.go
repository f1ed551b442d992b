package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"accessexplorer/internal/timelock/models"
	"accessexplorer/pkg/platform/sentinel"
)

// RedisCache shares cached payloads across server replicas. Values are JSON
// with a TTL set on write.
type RedisCache struct {
	client   redis.Cmdable
	cacheTTL time.Duration
	prefix   string
}

// NewRedisCache builds a cache on client. prefix namespaces the keys.
func NewRedisCache(client redis.Cmdable, cacheTTL time.Duration, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "explorer"
	}
	return &RedisCache{client: client, cacheTTL: cacheTTL, prefix: prefix}
}

func (c *RedisCache) key(k Key) string {
	return c.prefix + ":" + k.String()
}

func (c *RedisCache) save(ctx context.Context, k Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", k.Kind, err)
	}
	if err := c.client.Set(ctx, c.key(k), data, c.cacheTTL).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (c *RedisCache) find(ctx context.Context, k Key, out any) error {
	data, err := c.client.Get(ctx, c.key(k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: redis get: %v", sentinel.ErrUnavailable, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", k.Kind, err)
	}
	return nil
}

func (c *RedisCache) SaveOperations(ctx context.Context, chainID int64, lists models.OperationLists) error {
	return c.save(ctx, OperationsKey(chainID), lists)
}

func (c *RedisCache) FindOperations(ctx context.Context, chainID int64) (models.OperationLists, error) {
	var lists models.OperationLists
	if err := c.find(ctx, OperationsKey(chainID), &lists); err != nil {
		return models.OperationLists{}, err
	}
	return lists, nil
}

func (c *RedisCache) SaveRoleEvents(ctx context.Context, chainID int64, lists models.RoleEventLists) error {
	return c.save(ctx, RoleEventsKey(chainID), lists)
}

func (c *RedisCache) FindRoleEvents(ctx context.Context, chainID int64) (models.RoleEventLists, error) {
	var lists models.RoleEventLists
	if err := c.find(ctx, RoleEventsKey(chainID), &lists); err != nil {
		return models.RoleEventLists{}, err
	}
	return lists, nil
}

func (c *RedisCache) SaveController(ctx context.Context, chainID int64, info models.ControllerInfo) error {
	return c.save(ctx, ControllerKey(chainID, info.Address), info)
}

func (c *RedisCache) FindController(ctx context.Context, chainID int64, address string) (models.ControllerInfo, error) {
	var info models.ControllerInfo
	if err := c.find(ctx, ControllerKey(chainID, address), &info); err != nil {
		return models.ControllerInfo{}, err
	}
	return info, nil
}
