package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RespondedCache is an advisory Redis flag used to gate the submission UI
// without a Mongo round trip. It is a hint only: the authoritative guarantee
// is the unique index on the responses collection.
type RespondedCache interface {
	Set(ctx context.Context, surveyID, userID string) error
	Has(ctx context.Context, surveyID, userID string) (bool, error)
}

type respondedCache struct {
	client *redis.Client
}

// NewRespondedCache creates a new responded-flag cache
func NewRespondedCache(client *redis.Client) RespondedCache {
	return &respondedCache{
		client: client,
	}
}

func (c *respondedCache) key(surveyID, userID string) string {
	return fmt.Sprintf("responded:%s:%s", surveyID, userID)
}

func (c *respondedCache) Set(ctx context.Context, surveyID, userID string) error {
	return c.client.Set(ctx, c.key(surveyID, userID), "1", 12*time.Hour).Err()
}

func (c *respondedCache) Has(ctx context.Context, surveyID, userID string) (bool, error) {
	_, err := c.client.Get(ctx, c.key(surveyID, userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
