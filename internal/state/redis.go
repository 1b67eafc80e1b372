package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps one hash per session and announces writes on a per-session
// pub/sub channel, so every instance behind the load balancer sees them.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStore(ctx context.Context, url string, ttl time.Duration, logger *slog.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{rdb: rdb, ttl: ttl, logger: logger}, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func hashKey(sessionID string) string {
	return "exactfit:session:" + sessionID
}

func channelKey(sessionID string) string {
	return "exactfit:session:" + sessionID + ":changes"
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	v, err := s.rdb.HGet(ctx, hashKey(sessionID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key, value string) error {
	hk := hashKey(sessionID)

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, hk, key, value)
	if s.ttl > 0 {
		pipe.Expire(ctx, hk, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	s.publish(ctx, sessionID, Change{Key: key, Value: value})
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.HDel(ctx, hashKey(sessionID), keys...).Err(); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	for _, k := range keys {
		s.publish(ctx, sessionID, Change{Key: k, Deleted: true})
	}
	return nil
}

func (s *RedisStore) Subscribe(ctx context.Context, sessionID string) (<-chan Change, error) {
	ps := s.rdb.Subscribe(ctx, channelKey(sessionID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	out := make(chan Change, 16)
	go func() {
		defer close(out)
		defer ps.Close()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var c Change
				if err := json.Unmarshal([]byte(msg.Payload), &c); err != nil {
					s.logger.Warn("bad state change payload", "error", err)
					continue
				}
				select {
				case out <- c:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *RedisStore) publish(ctx context.Context, sessionID string, c Change) {
	b, err := json.Marshal(c)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, channelKey(sessionID), b).Err(); err != nil {
		s.logger.Warn("publish state change", "error", err, "key", c.Key)
	}
}
