package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

// ListingTTL bounds how long a cached listing may be served without a store
// read.
const ListingTTL = time.Hour

type ListingCache struct {
	client *redis.Client
}

func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

func key(id string) string { return "listing:" + id }

// Get returns (nil, nil) on a cache miss.
func (c *ListingCache) Get(ctx context.Context, id string) (*domain.Listing, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var listing domain.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *ListingCache) Set(ctx context.Context, listing *domain.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(listing.ID), data, ListingTTL).Err()
}

func (c *ListingCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, key(id)).Err()
}
