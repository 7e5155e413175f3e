package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/casafinder/listing-service/internal/property/domain"
	"github.com/redis/go-redis/v9"
)

const detailTTL = 1 * time.Hour

// PropertyCache keeps assembled listing detail DTOs in Redis so repeated
// detail reads skip the multi-collection join. Writers invalidate on
// update.
type PropertyCache struct {
	client *redis.Client
}

func NewPropertyCache(addr string) (*PropertyCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &PropertyCache{client: client}, nil
}

func (c *PropertyCache) GetProperty(ctx context.Context, propertyID string) (*domain.PropertyDto, error) {
	data, err := c.client.Get(ctx, "property:"+propertyID).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	var dto domain.PropertyDto
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *PropertyCache) SetProperty(ctx context.Context, dto *domain.PropertyDto) error {
	data, err := json.Marshal(dto)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "property:"+dto.PropertyID, data, detailTTL).Err()
}

func (c *PropertyCache) DeleteProperty(ctx context.Context, propertyID string) error {
	return c.client.Del(ctx, "property:"+propertyID).Err()
}
