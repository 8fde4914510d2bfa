package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"surveyforge/internal/model"
)

// SurveyCache keeps recently evaluated surveys hot. Evaluation previews hit
// the same survey once per page transition, so a short TTL saves most of
// the document reads.
type SurveyCache interface {
	Set(ctx context.Context, survey *model.Survey) error
	Get(ctx context.Context, id string) (*model.Survey, error)
	Invalidate(ctx context.Context, id string) error
}

type surveyCache struct {
	client *redis.Client
}

func NewSurveyCache(client *redis.Client) SurveyCache {
	return &surveyCache{
		client: client,
	}
}

func (c *surveyCache) Set(ctx context.Context, survey *model.Survey) error {
	data, err := json.Marshal(survey)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "survey:"+survey.ID, data, 5*time.Minute).Err()
}

func (c *surveyCache) Get(ctx context.Context, id string) (*model.Survey, error) {
	data, err := c.client.Get(ctx, "survey:"+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var survey model.Survey
	err = json.Unmarshal([]byte(data), &survey)
	return &survey, err
}

func (c *surveyCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, "survey:"+id).Err()
}
