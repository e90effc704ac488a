package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cobra/site/internal/models"
)

// RedisStore keeps sessions as JSON values whose key TTL matches the
// session expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
	opts   options
}

func NewRedisStore(client *redis.Client, prefix string, opts ...Option) *RedisStore {
	if prefix == "" {
		prefix = "sess:"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		opts:   buildOptions(opts),
	}
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStore) Create(ctx context.Context, payload models.SessionPayload) (models.Session, error) {
	sess, err := newSession(r.opts, payload)
	if err != nil {
		return models.Session{}, err
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return models.Session{}, fmt.Errorf("session: marshal: %w", err)
	}

	if err := r.client.Set(ctx, r.key(sess.ID), data, r.opts.ttl).Err(); err != nil {
		return models.Session{}, fmt.Errorf("session: redis set: %w", err)
	}
	return sess, nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (models.Session, error) {
	if !ValidID(id) {
		return models.Session{}, ErrSessionNotFound
	}

	val, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("session: redis get: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return models.Session{}, fmt.Errorf("session: decode: %w", err)
	}

	if sess.Expired(r.opts.now()) {
		_ = r.client.Del(ctx, r.key(id)).Err()
		return models.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

func (r *RedisStore) Destroy(ctx context.Context, id string) error {
	if !ValidID(id) {
		return nil
	}
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.client.Ping(ctx).Err()
}
