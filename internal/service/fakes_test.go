package service

import (
	"context"
	"sort"
	"time"

	"surveyforge/internal/model"
)

// In-memory stand-ins for the Mongo repositories and Redis caches.

type fakeSurveyRepo struct {
	surveys map[string]*model.Survey
}

func newFakeSurveyRepo() *fakeSurveyRepo {
	return &fakeSurveyRepo{surveys: make(map[string]*model.Survey)}
}

func (r *fakeSurveyRepo) Create(_ context.Context, survey *model.Survey) error {
	survey.CreatedAt = time.Now()
	survey.UpdatedAt = time.Now()
	copied := *survey
	r.surveys[survey.ID] = &copied
	return nil
}

func (r *fakeSurveyRepo) GetByID(_ context.Context, id string) (*model.Survey, error) {
	survey, ok := r.surveys[id]
	if !ok {
		return nil, nil
	}
	copied := *survey
	return &copied, nil
}

func (r *fakeSurveyRepo) List(_ context.Context) ([]*model.Survey, error) {
	var out []*model.Survey
	for _, s := range r.surveys {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeSurveyRepo) Update(_ context.Context, survey *model.Survey) error {
	copied := *survey
	r.surveys[survey.ID] = &copied
	return nil
}

func (r *fakeSurveyRepo) Delete(_ context.Context, id string) error {
	delete(r.surveys, id)
	return nil
}

type fakeLogicRepo struct {
	rules map[string]*model.QuestionLogic
	clock time.Time
}

func newFakeLogicRepo() *fakeLogicRepo {
	return &fakeLogicRepo{
		rules: make(map[string]*model.QuestionLogic),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeLogicRepo) Create(_ context.Context, rule *model.QuestionLogic) error {
	// Monotonic timestamps so creation-order tie-breaks are observable.
	r.clock = r.clock.Add(time.Second)
	rule.CreatedAt = r.clock
	copied := *rule
	r.rules[rule.ID] = &copied
	return nil
}

func (r *fakeLogicRepo) GetByID(_ context.Context, id string) (*model.QuestionLogic, error) {
	rule, ok := r.rules[id]
	if !ok {
		return nil, nil
	}
	copied := *rule
	return &copied, nil
}

func (r *fakeLogicRepo) GetBySurveyID(_ context.Context, surveyID string) ([]model.QuestionLogic, error) {
	return r.sorted(func(rule *model.QuestionLogic) bool {
		return rule.SurveyID == surveyID
	}), nil
}

func (r *fakeLogicRepo) GetByQuestionID(_ context.Context, surveyID, questionID string) ([]model.QuestionLogic, error) {
	return r.sorted(func(rule *model.QuestionLogic) bool {
		return rule.SurveyID == surveyID && rule.QuestionID == questionID
	}), nil
}

func (r *fakeLogicRepo) MaxPriorityForQuestion(ctx context.Context, surveyID, questionID string) (int, error) {
	rules, _ := r.GetByQuestionID(ctx, surveyID, questionID)
	max := -1
	for _, rule := range rules {
		if rule.Priority > max {
			max = rule.Priority
		}
	}
	return max, nil
}

func (r *fakeLogicRepo) Update(_ context.Context, rule *model.QuestionLogic) error {
	copied := *rule
	r.rules[rule.ID] = &copied
	return nil
}

func (r *fakeLogicRepo) SetPriority(_ context.Context, id string, priority int) error {
	if rule, ok := r.rules[id]; ok {
		rule.Priority = priority
	}
	return nil
}

func (r *fakeLogicRepo) Delete(_ context.Context, id string) error {
	delete(r.rules, id)
	return nil
}

func (r *fakeLogicRepo) DeleteBySurveyID(_ context.Context, surveyID string) error {
	for id, rule := range r.rules {
		if rule.SurveyID == surveyID {
			delete(r.rules, id)
		}
	}
	return nil
}

func (r *fakeLogicRepo) sorted(match func(*model.QuestionLogic) bool) []model.QuestionLogic {
	var out []model.QuestionLogic
	for _, rule := range r.rules {
		if match(rule) {
			out = append(out, *rule)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

type fakeSurveyCache struct {
	surveys map[string]*model.Survey
}

func newFakeSurveyCache() *fakeSurveyCache {
	return &fakeSurveyCache{surveys: make(map[string]*model.Survey)}
}

func (c *fakeSurveyCache) Set(_ context.Context, survey *model.Survey) error {
	c.surveys[survey.ID] = survey
	return nil
}

func (c *fakeSurveyCache) Get(_ context.Context, id string) (*model.Survey, error) {
	return c.surveys[id], nil
}

func (c *fakeSurveyCache) Invalidate(_ context.Context, id string) error {
	delete(c.surveys, id)
	return nil
}

type fakeLogicMapCache struct {
	maps map[string]*model.LogicMap
}

func newFakeLogicMapCache() *fakeLogicMapCache {
	return &fakeLogicMapCache{maps: make(map[string]*model.LogicMap)}
}

func (c *fakeLogicMapCache) Set(_ context.Context, m *model.LogicMap) error {
	c.maps[m.SurveyID] = m
	return nil
}

func (c *fakeLogicMapCache) Get(_ context.Context, surveyID string) (*model.LogicMap, error) {
	return c.maps[surveyID], nil
}

func (c *fakeLogicMapCache) Invalidate(_ context.Context, surveyID string) error {
	delete(c.maps, surveyID)
	return nil
}
