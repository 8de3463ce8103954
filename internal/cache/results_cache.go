package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"surveypulse/internal/model"
)

// ResultsCache holds a short-lived snapshot of aggregated survey results.
// Submissions and survey edits invalidate it, so staleness is bounded by
// the TTL on the read path only.
type ResultsCache interface {
	Set(ctx context.Context, surveyID string, results *model.SurveyResults) error
	Get(ctx context.Context, surveyID string) (*model.SurveyResults, error)
	Invalidate(ctx context.Context, surveyID string) error
}

type resultsCache struct {
	client *redis.Client
}

// NewResultsCache creates a new results cache
func NewResultsCache(client *redis.Client) ResultsCache {
	return &resultsCache{
		client: client,
	}
}

func (c *resultsCache) key(surveyID string) string {
	return "results:" + surveyID
}

func (c *resultsCache) Set(ctx context.Context, surveyID string, results *model.SurveyResults) error {
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(surveyID), data, 30*time.Second).Err()
}

func (c *resultsCache) Get(ctx context.Context, surveyID string) (*model.SurveyResults, error) {
	data, err := c.client.Get(ctx, c.key(surveyID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var results model.SurveyResults
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		return nil, err
	}
	return &results, nil
}

func (c *resultsCache) Invalidate(ctx context.Context, surveyID string) error {
	return c.client.Del(ctx, c.key(surveyID)).Err()
}
