package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/agrigrow/pkg/config"
	"github.com/example/agrigrow/pkg/models"
	"github.com/go-redis/redis/v8"
)

const (
	productListKey = "catalog:products"
	profileTTL     = 30 * time.Minute
)

type RedisRepository struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return NewRedisRepositoryFromClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}), cfg)
}

// NewRedisRepositoryFromClient wraps an existing client.
func NewRedisRepositoryFromClient(client *redis.Client, cfg *config.RedisConfig) *RedisRepository {
	return &RedisRepository{client: client, config: cfg}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisRepository) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

// GetJSON decodes the value at key into dest. A missing key is ErrNotFound.
func (r *RedisRepository) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// GetProducts returns the cached catalog listing, or ErrNotFound on a miss.
func (r *RedisRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.GetJSON(ctx, productListKey, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *RedisRepository) SetProducts(ctx context.Context, products []models.Product) error {
	return r.SetJSON(ctx, productListKey, products, r.config.CacheTTL)
}

func (r *RedisRepository) InvalidateProducts(ctx context.Context) error {
	return r.Del(ctx, productListKey)
}

func profileKey(email string) string {
	return fmt.Sprintf("user:%s", strings.ToLower(email))
}

func (r *RedisRepository) SetProfile(ctx context.Context, profile *models.UserProfile) error {
	return r.SetJSON(ctx, profileKey(profile.Email), profile, profileTTL)
}

// GetProfile returns the cached profile for email, or ErrNotFound on a miss.
func (r *RedisRepository) GetProfile(ctx context.Context, email string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.GetJSON(ctx, profileKey(email), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
