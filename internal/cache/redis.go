package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mmynk/cardplanner/pkg/api"
)

// redisClient is the subset of *redis.Client the cache uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// Redis is a PlanCache backed by Redis.
type Redis struct {
	db  redisClient
	ttl time.Duration
}

var _ PlanCache = (*Redis)(nil)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Connect dials Redis and verifies the connection with PING.
func Connect(ctx context.Context, opts Options) (*Redis, *redis.Client, error) {
	const op = "cache.Connect"

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return NewRedis(client, opts.TTL), client, nil
}

// NewRedis wraps an existing client. Plans expire after ttl.
func NewRedis(client redisClient, ttl time.Duration) *Redis {
	return &Redis{db: client, ttl: ttl}
}

func generationKey(userID string) string {
	return "plan-gen:" + userID
}

func planKey(userID string, generation int64, listID string) string {
	return fmt.Sprintf("plan:%s:%d:%s", userID, generation, listID)
}

func (c *Redis) generation(ctx context.Context, userID string) (int64, error) {
	gen, err := c.db.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *Redis) Lookup(ctx context.Context, userID, listID string) (*api.OptimalPlan, int64, error) {
	const op = "cache.Lookup"

	gen, err := c.generation(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	val, err := c.db.Get(ctx, planKey(userID, gen, listID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, nil
	}
	if err != nil {
		return nil, gen, fmt.Errorf("%s: %w", op, err)
	}

	var plan api.OptimalPlan
	if err := json.Unmarshal(val, &plan); err != nil {
		return nil, gen, fmt.Errorf("%s: %w", op, err)
	}
	return &plan, gen, nil
}

func (c *Redis) Store(ctx context.Context, userID, listID string, generation int64, plan *api.OptimalPlan) error {
	const op = "cache.Store"

	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.db.Set(ctx, planKey(userID, generation, listID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Redis) Invalidate(ctx context.Context, userID string) error {
	if err := c.db.Incr(ctx, generationKey(userID)).Err(); err != nil {
		return fmt.Errorf("cache.Invalidate: %w", err)
	}
	return nil
}
