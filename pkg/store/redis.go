package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sherif414/floattree/pkg/observability"
	"github.com/sherif414/floattree/pkg/snapshot"
)

// redisKeyPrefix namespaces floattree snapshots within a shared Redis.
const redisKeyPrefix = "floattree:snapshot:"

// RedisConfig configures a [RedisStore].
type RedisConfig struct {
	// Addr is the Redis server address (host:port).
	Addr string

	// Password is optional.
	Password string

	// DB selects the Redis logical database.
	DB int

	// TTL expires snapshots after the given duration. Zero means no
	// expiration.
	TTL time.Duration
}

// RedisStore persists snapshots as JSON values in Redis.
// Suitable for multi-instance deployments where several servers share
// hierarchy state.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

// Save writes the snapshot as a JSON value, replacing any previous version.
func (s *RedisStore) Save(ctx context.Context, id string, snap snapshot.Snapshot) error {
	start := time.Now()
	err := s.save(ctx, id, snap)
	observability.Store().OnSave(ctx, "redis", id, snap.NodeCount(), time.Since(start), err)
	return err
}

func (s *RedisStore) save(ctx context.Context, id string, snap snapshot.Snapshot) error {
	if id == "" {
		return ErrInvalidID
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+id, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Load returns the snapshot stored under id.
func (s *RedisStore) Load(ctx context.Context, id string) (snapshot.Snapshot, error) {
	start := time.Now()
	snap, err := s.load(ctx, id)
	observability.Store().OnLoad(ctx, "redis", id, time.Since(start), err)
	return snap, err
}

func (s *RedisStore) load(ctx context.Context, id string) (snapshot.Snapshot, error) {
	if id == "" {
		return snapshot.Snapshot{}, ErrInvalidID
	}
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return snapshot.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("redis get: %w", err)
	}
	snap, err := snapshot.Unmarshal(data)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("parse snapshot %s: %w", id, err)
	}
	return snap, nil
}

// Delete removes the snapshot. Missing keys are not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	var err error
	if id == "" {
		err = ErrInvalidID
	} else if delErr := s.client.Del(ctx, redisKeyPrefix+id).Err(); delErr != nil {
		err = fmt.Errorf("redis del: %w", delErr)
	}
	observability.Store().OnDelete(ctx, "redis", id, err)
	return err
}

// List scans for all snapshot keys and returns their IDs in sorted order.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), redisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	slices.Sort(ids)
	return ids, nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error { return s.client.Close() }

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
