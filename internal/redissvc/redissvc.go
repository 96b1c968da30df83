// Package redissvc bundles the redis client with the background context the
// alert notifiers publish on.
package redissvc

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

// Connect dials redis at addr and verifies the connection with a ping.
func Connect(ctx context.Context, addr string) (*RedisService, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisService{rdb: rdb, ctx: ctx}, nil
}

func (s *RedisService) Rdb() *redis.Client { return s.rdb }

func (s *RedisService) Ctx() context.Context { return s.ctx }

func (s *RedisService) Close() error { return s.rdb.Close() }
