package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type IRedis interface {
	HashSet(ctx context.Context, key string, field string, value string) error
	HashGetAll(ctx context.Context, key string) (map[string]string, error)
	Close() error
}

type Options struct {
	Address  string
	Password string
	DB       int
}

type redisClient struct {
	client *redis.Client
	log    *logrus.Logger
}

func New(ctx context.Context, opts Options, log *logrus.Logger) (IRedis, error) {
	log.Info(fmt.Sprintf("Connecting to Redis at %s...", opts.Address))

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.Ping(pingCtx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Address, err)
	}
	log.Info("Successfully connected to Redis")

	return &redisClient{client: client, log: log}, nil
}

func (r *redisClient) HashSet(ctx context.Context, key string, field string, value string) error {
	r.log.Debug(fmt.Sprintf("Setting field %s of hash %s", field, key))
	if err := r.client.HSet(ctx, key, field, value).Err(); err != nil {
		r.log.Error(fmt.Sprintf("Error setting field %s of hash %s: %v", field, key, err))
		return err
	}
	return nil
}

func (r *redisClient) HashGetAll(ctx context.Context, key string) (map[string]string, error) {
	r.log.Debug(fmt.Sprintf("Reading hash %s", key))
	values, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		r.log.Error(fmt.Sprintf("Error reading hash %s: %v", key, err))
		return nil, err
	}
	return values, nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
