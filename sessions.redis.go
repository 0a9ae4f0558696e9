package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisSessionKeyPrefix = "sessions:"

type redisSessionStore struct {
	logger *zap.Logger
	client *redis.Client
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolSize:     config.Redis.PoolSize,
		PoolTimeout:  config.Redis.PoolTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// NewRedisSessionStore provides an instance of redis-based session storage.
func NewRedisSessionStore(logger *zap.Logger, client *redis.Client) SessionStore {
	return &redisSessionStore{
		logger: logger,
		client: client,
	}
}

// Get retrieves a session record based on its ID.
func (rs *redisSessionStore) Get(ctx context.Context, id string) (Session, error) {
	var session Session
	sessionJSONString, err := rs.client.Get(ctx, redisSessionKeyPrefix+id).Result()
	if err == redis.Nil {
		return session, ErrSessionNotFound
	}
	if err != nil {
		return session, err
	}
	err = json.Unmarshal([]byte(sessionJSONString), &session)
	return session, err
}

// Put stores a session record. The record expires from redis
// on its own once its expiry time is set and reached.
func (rs *redisSessionStore) Put(ctx context.Context, session Session) error {
	sessionBytes, err := json.Marshal(session)
	if err != nil {
		return err
	}
	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
	}
	return rs.client.Set(ctx, redisSessionKeyPrefix+session.ID, sessionBytes, ttl).Err()
}

// Delete removes a session record based on its ID.
func (rs *redisSessionStore) Delete(ctx context.Context, id string) error {
	return rs.client.Del(ctx, redisSessionKeyPrefix+id).Err()
}
