package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ActivityCache tracks per-survey response counts in a Redis ZSET so the
// admin overview can rank surveys by activity without scanning Mongo.
type ActivityCache interface {
	Bump(ctx context.Context, surveyID string) error
	Top(ctx context.Context, limit int) ([]ActivityEntry, error)
	Remove(ctx context.Context, surveyID string) error
}

// ActivityEntry is a single survey's activity score
type ActivityEntry struct {
	SurveyID string
	Count    int
}

type activityCache struct {
	client *redis.Client
}

// NewActivityCache creates a new activity cache
func NewActivityCache(client *redis.Client) ActivityCache {
	return &activityCache{
		client: client,
	}
}

const activityKey = "survey:activity"

func (c *activityCache) Bump(ctx context.Context, surveyID string) error {
	return c.client.ZIncrBy(ctx, activityKey, 1, surveyID).Err()
}

func (c *activityCache) Top(ctx context.Context, limit int) ([]ActivityEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, activityKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, len(results))
	for i, z := range results {
		entries[i] = ActivityEntry{
			SurveyID: z.Member.(string),
			Count:    int(z.Score),
		}
	}
	return entries, nil
}

func (c *activityCache) Remove(ctx context.Context, surveyID string) error {
	return c.client.ZRem(ctx, activityKey, surveyID).Err()
}
