package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"surveyhub/internal/model"
)

const (
	listKey      = "surveys:all"
	surveyPrefix = "survey:"

	listTTL   = time.Minute
	surveyTTL = 5 * time.Minute
)

// SurveyCache caches the public survey listing and individual surveys.
// Misses return (nil, nil); every survey mutation invalidates.
type SurveyCache interface {
	GetList(ctx context.Context) ([]*model.SurveySummary, error)
	SetList(ctx context.Context, list []*model.SurveySummary) error
	GetSurvey(ctx context.Context, id string) (*model.Survey, error)
	SetSurvey(ctx context.Context, survey *model.Survey) error
	Invalidate(ctx context.Context, surveyID string) error
}

type surveyCache struct {
	client *redis.Client
}

// NewSurveyCache creates a new survey cache
func NewSurveyCache(client *redis.Client) SurveyCache {
	return &surveyCache{
		client: client,
	}
}

func (c *surveyCache) GetList(ctx context.Context) ([]*model.SurveySummary, error) {
	data, err := c.client.Get(ctx, listKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []*model.SurveySummary
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *surveyCache) SetList(ctx context.Context, list []*model.SurveySummary) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listKey, data, listTTL).Err()
}

func (c *surveyCache) GetSurvey(ctx context.Context, id string) (*model.Survey, error) {
	data, err := c.client.Get(ctx, surveyPrefix+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var survey model.Survey
	if err := json.Unmarshal([]byte(data), &survey); err != nil {
		return nil, err
	}
	return &survey, nil
}

func (c *surveyCache) SetSurvey(ctx context.Context, survey *model.Survey) error {
	data, err := json.Marshal(survey)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, surveyPrefix+survey.ID, data, surveyTTL).Err()
}

func (c *surveyCache) Invalidate(ctx context.Context, surveyID string) error {
	return c.client.Del(ctx, listKey, surveyPrefix+surveyID).Err()
}
