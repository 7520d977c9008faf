package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Pesokrava/profile_reviews/internal/domain"
)

// RedisCache caches read models for products and users' review lists
type RedisCache struct {
	client         *redis.Client
	productTTL     time.Duration
	userReviewsTTL time.Duration
}

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(client *redis.Client, productTTL, userReviewsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:         client,
		productTTL:     productTTL,
		userReviewsTTL: userReviewsTTL,
	}
}

func (c *RedisCache) userReviewsKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:reviews", userID.String())
}

func (c *RedisCache) productKey(slug string) string {
	return fmt.Sprintf("product:%s", slug)
}

// GetUserReviews returns the cached active reviews of a user, or domain.ErrNotFound on a miss
func (c *RedisCache) GetUserReviews(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error) {
	val, err := c.client.Get(ctx, c.userReviewsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var reviews []*domain.Review
	if err := json.Unmarshal(val, &reviews); err != nil {
		return nil, err
	}

	return reviews, nil
}

// SetUserReviews stores the active reviews of a user
func (c *RedisCache) SetUserReviews(ctx context.Context, userID uuid.UUID, reviews []*domain.Review) error {
	data, err := json.Marshal(reviews)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.userReviewsKey(userID), data, c.userReviewsTTL).Err()
}

// InvalidateUserReviews drops the cached review list of a user
func (c *RedisCache) InvalidateUserReviews(ctx context.Context, userID uuid.UUID) error {
	return c.client.Unlink(ctx, c.userReviewsKey(userID)).Err()
}

// GetProduct returns a cached product by slug, or domain.ErrNotFound on a miss
func (c *RedisCache) GetProduct(ctx context.Context, slug string) (*domain.Product, error) {
	val, err := c.client.Get(ctx, c.productKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal(val, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// SetProduct stores a product under its slug
func (c *RedisCache) SetProduct(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.productKey(product.Slug), data, c.productTTL).Err()
}

// InvalidateProduct drops a cached product, e.g. after its rating changed
func (c *RedisCache) InvalidateProduct(ctx context.Context, slug string) error {
	return c.client.Unlink(ctx, c.productKey(slug)).Err()
}
