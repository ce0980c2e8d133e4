package sessions

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store keeps refresh-token sessions in Redis, keyed by token hash. Stock
// and catalog reads never go through here; every inventory read hits
// Postgres directly.
type Store interface {
	SetRefreshToken(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	DeleteRefreshToken(ctx context.Context, tokenHash string) error
	Ping(ctx context.Context) error
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) Store {
	// Accept redis://host:port URLs as well as bare host:port.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, parsedAddr)
	}

	return &redisStore{client: client}
}

func sessionKey(tokenHash string) string {
	return fmt.Sprintf("librostock:refresh_token:%s", tokenHash)
}

func (r *redisStore) SetRefreshToken(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error {
	return r.client.Set(ctx, sessionKey(tokenHash), userID.String(), ttl).Err()
}

func (r *redisStore) GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	val, err := r.client.Get(ctx, sessionKey(tokenHash)).Result()
	if err != nil {
		if err == redis.Nil {
			return uuid.Nil, fmt.Errorf("refresh token not found or expired")
		}
		return uuid.Nil, err
	}
	return uuid.Parse(val)
}

func (r *redisStore) DeleteRefreshToken(ctx context.Context, tokenHash string) error {
	return r.client.Del(ctx, sessionKey(tokenHash)).Err()
}

func (r *redisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
