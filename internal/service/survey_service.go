package service

import (
	"context"

	"github.com/google/uuid"

	"surveyforge/internal/cache"
	"surveyforge/internal/model"
	"surveyforge/internal/repository"
	"surveyforge/pkg/fault"
)

// SurveyService handles survey CRUD operations
type SurveyService struct {
	surveyRepo    repository.SurveyRepo
	logicRepo     repository.LogicRepo
	surveyCache   cache.SurveyCache
	logicMapCache cache.LogicMapCache
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveyRepo repository.SurveyRepo, logicRepo repository.LogicRepo, surveyCache cache.SurveyCache, logicMapCache cache.LogicMapCache) *SurveyService {
	return &SurveyService{
		surveyRepo:    surveyRepo,
		logicRepo:     logicRepo,
		surveyCache:   surveyCache,
		logicMapCache: logicMapCache,
	}
}

// Create creates a new survey, assigning ids and positions to questions
// that arrive without them.
func (s *SurveyService) Create(ctx context.Context, survey *model.Survey) (*model.Survey, error) {
	if survey.ID == "" {
		survey.ID = uuid.NewString()
	}
	if survey.Status == "" {
		survey.Status = model.SurveyStatusDraft
	}
	normalizeQuestions(survey)

	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		return nil, fault.NewInternal("saving survey", err)
	}
	return survey, nil
}

// GetByID retrieves a survey by ID
func (s *SurveyService) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fault.NewInternal("loading survey", err)
	}
	if survey == nil {
		return nil, fault.NewNotFound("survey not found")
	}
	return survey, nil
}

// List retrieves all surveys
func (s *SurveyService) List(ctx context.Context) ([]*model.Survey, error) {
	surveys, err := s.surveyRepo.List(ctx)
	if err != nil {
		return nil, fault.NewInternal("listing surveys", err)
	}
	return surveys, nil
}

// Update replaces an existing survey. Cached copies and the logic map
// projection go stale, so both are invalidated.
func (s *SurveyService) Update(ctx context.Context, survey *model.Survey) (*model.Survey, error) {
	existing, err := s.GetByID(ctx, survey.ID)
	if err != nil {
		return nil, err
	}
	survey.CreatedAt = existing.CreatedAt
	normalizeQuestions(survey)

	if err := s.surveyRepo.Update(ctx, survey); err != nil {
		return nil, fault.NewInternal("updating survey", err)
	}
	s.surveyCache.Invalidate(ctx, survey.ID)
	s.logicMapCache.Invalidate(ctx, survey.ID)
	return survey, nil
}

// Delete removes a survey and its logic rules.
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.surveyRepo.Delete(ctx, id); err != nil {
		return fault.NewInternal("deleting survey", err)
	}
	if err := s.logicRepo.DeleteBySurveyID(ctx, id); err != nil {
		return fault.NewInternal("deleting survey rules", err)
	}
	s.surveyCache.Invalidate(ctx, id)
	s.logicMapCache.Invalidate(ctx, id)
	return nil
}

func normalizeQuestions(survey *model.Survey) {
	for i := range survey.Questions {
		if survey.Questions[i].ID == "" {
			survey.Questions[i].ID = uuid.NewString()
		}
		if survey.Questions[i].Order == 0 {
			survey.Questions[i].Order = i + 1
		}
	}
}
