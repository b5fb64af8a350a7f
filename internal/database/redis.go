package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis garde chaque clé dans une chaîne Redis préfixée, sans expiration.
// Chaque écriture est annoncée sur le canal <prefix>updates.
type Redis struct {
	client *redis.Client
	prefix string
}

func OpenRedis(ctx context.Context, addr, password, prefix string) (*Redis, error) {
	if addr == "" {
		return nil, fmt.Errorf("REDIS_HOST non configuré")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("impossible de se connecter à Redis: %w", err)
	}

	log.Println("✅ Redis connecté avec succès")
	return NewRedis(client, prefix), nil
}

// NewRedis utilise un client existant
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.prefix+key, value, 0)
	pipe.Publish(ctx, r.UpdatesChannel(), key)
	_, err := pipe.Exec(ctx)
	return err
}

// UpdatesChannel est le canal pub/sub des clés modifiées
func (r *Redis) UpdatesChannel() string {
	return r.prefix + "updates"
}

func (r *Redis) Client() *redis.Client {
	return r.client
}

func (r *Redis) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
