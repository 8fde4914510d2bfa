package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"surveyforge/internal/model"
)

// LogicMapCache caches the built logic-map projection per survey. The map
// is cheap to rebuild but read far more often than rules change, so writes
// just invalidate.
type LogicMapCache interface {
	Set(ctx context.Context, m *model.LogicMap) error
	Get(ctx context.Context, surveyID string) (*model.LogicMap, error)
	Invalidate(ctx context.Context, surveyID string) error
}

type logicMapCache struct {
	client *redis.Client
}

func NewLogicMapCache(client *redis.Client) LogicMapCache {
	return &logicMapCache{
		client: client,
	}
}

func (c *logicMapCache) Set(ctx context.Context, m *model.LogicMap) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "logicmap:"+m.SurveyID, data, 10*time.Minute).Err()
}

func (c *logicMapCache) Get(ctx context.Context, surveyID string) (*model.LogicMap, error) {
	data, err := c.client.Get(ctx, "logicmap:"+surveyID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var m model.LogicMap
	err = json.Unmarshal([]byte(data), &m)
	return &m, err
}

func (c *logicMapCache) Invalidate(ctx context.Context, surveyID string) error {
	return c.client.Del(ctx, "logicmap:"+surveyID).Err()
}
