package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/angelmondragon/storefront-api/pkg/errors"
	"github.com/angelmondragon/storefront-api/pkg/redis"
)

// RedisRepository stores carts as JSON blobs with a session TTL, letting
// sessions survive process restarts without turning carts into durable
// records.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRepository(client *redis.Client, ttl time.Duration) (*RedisRepository, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "redis client is required")
	}
	return &RedisRepository{client: client, ttl: ttl}, nil
}

func (r *RedisRepository) Load(ctx context.Context, sessionID string) (State, error) {
	raw, err := r.client.Get(ctx, r.client.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return State{}, nil
		}
		return State{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart session")
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart session")
	}
	return state, nil
}

func (r *RedisRepository) Save(ctx context.Context, sessionID string, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart session")
	}
	if err := r.client.Set(ctx, r.client.CartKey(sessionID), payload, r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save cart session")
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.client.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart session")
	}
	return nil
}
