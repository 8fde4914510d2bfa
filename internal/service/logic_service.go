package service

import (
	"context"

	"github.com/google/uuid"

	"surveyforge/internal/cache"
	"surveyforge/internal/logic"
	"surveyforge/internal/model"
	"surveyforge/internal/repository"
	"surveyforge/pkg/fault"
)

// LogicService owns the rule write path (CRUD with survey-wide validation),
// the logic-map projection and the evaluation entry point. Rules and survey
// structure are materialized in full before the engine runs; the engine
// itself does no I/O.
type LogicService struct {
	surveyRepo    repository.SurveyRepo
	logicRepo     repository.LogicRepo
	surveyCache   cache.SurveyCache
	logicMapCache cache.LogicMapCache
}

// NewLogicService creates a new logic service
func NewLogicService(surveyRepo repository.SurveyRepo, logicRepo repository.LogicRepo, surveyCache cache.SurveyCache, logicMapCache cache.LogicMapCache) *LogicService {
	return &LogicService{
		surveyRepo:    surveyRepo,
		logicRepo:     logicRepo,
		surveyCache:   surveyCache,
		logicMapCache: logicMapCache,
	}
}

// RuleInput carries the caller-supplied fields of a rule. Priority is a
// pointer so an omitted priority can default to the end of the question's
// rule list.
type RuleInput struct {
	SourceQuestionID string              `json:"sourceQuestionId"`
	Operator         model.LogicOperator `json:"operator"`
	ConditionValue   string              `json:"conditionValue"`
	Action           model.LogicAction   `json:"action"`
	TargetQuestionID string              `json:"targetQuestionId,omitempty"`
	Priority         *int                `json:"priority,omitempty"`
}

// Rules returns the question's rules in evaluation order: priority
// ascending, creation time breaking ties.
func (s *LogicService) Rules(ctx context.Context, surveyID, questionID string) ([]model.QuestionLogic, error) {
	if _, err := s.surveyWithQuestion(ctx, surveyID, questionID); err != nil {
		return nil, err
	}
	rules, err := s.logicRepo.GetByQuestionID(ctx, surveyID, questionID)
	if err != nil {
		return nil, fault.NewInternal("loading rules", err)
	}
	return rules, nil
}

// AddRule validates and persists a new rule for the question. An omitted
// priority lands after the question's existing rules.
func (s *LogicService) AddRule(ctx context.Context, surveyID, questionID string, input RuleInput) (*model.QuestionLogic, error) {
	survey, err := s.surveyWithQuestion(ctx, surveyID, questionID)
	if err != nil {
		return nil, err
	}

	priority := 0
	if input.Priority != nil {
		priority = *input.Priority
	} else {
		max, err := s.logicRepo.MaxPriorityForQuestion(ctx, surveyID, questionID)
		if err != nil {
			return nil, fault.NewInternal("resolving priority", err)
		}
		priority = max + 1
	}

	rule := &model.QuestionLogic{
		ID:               uuid.NewString(),
		SurveyID:         surveyID,
		QuestionID:       questionID,
		SourceQuestionID: input.SourceQuestionID,
		Operator:         input.Operator,
		ConditionValue:   input.ConditionValue,
		Action:           input.Action,
		TargetQuestionID: input.TargetQuestionID,
		Priority:         priority,
	}

	if err := s.validateAgainstSurvey(ctx, survey, rule); err != nil {
		return nil, err
	}
	if err := s.logicRepo.Create(ctx, rule); err != nil {
		return nil, fault.NewInternal("saving rule", err)
	}
	s.logicMapCache.Invalidate(ctx, surveyID)
	return rule, nil
}

// UpdateRule replaces the mutable fields of an existing rule after
// re-running the survey-wide validation with the updated version applied.
func (s *LogicService) UpdateRule(ctx context.Context, surveyID, questionID, logicID string, input RuleInput) (*model.QuestionLogic, error) {
	survey, err := s.surveyWithQuestion(ctx, surveyID, questionID)
	if err != nil {
		return nil, err
	}
	rule, err := s.ruleInQuestion(ctx, surveyID, questionID, logicID)
	if err != nil {
		return nil, err
	}

	rule.SourceQuestionID = input.SourceQuestionID
	rule.Operator = input.Operator
	rule.ConditionValue = input.ConditionValue
	rule.Action = input.Action
	rule.TargetQuestionID = input.TargetQuestionID
	if rule.Action != model.ActionJumpTo && rule.Action != model.ActionSkipTo {
		rule.TargetQuestionID = ""
	}
	if input.Priority != nil {
		rule.Priority = *input.Priority
	}

	if err := s.validateAgainstSurvey(ctx, survey, rule); err != nil {
		return nil, err
	}
	if err := s.logicRepo.Update(ctx, rule); err != nil {
		return nil, fault.NewInternal("updating rule", err)
	}
	s.logicMapCache.Invalidate(ctx, surveyID)
	return rule, nil
}

// DeleteRule removes a rule.
func (s *LogicService) DeleteRule(ctx context.Context, surveyID, questionID, logicID string) error {
	if _, err := s.surveyWithQuestion(ctx, surveyID, questionID); err != nil {
		return err
	}
	if _, err := s.ruleInQuestion(ctx, surveyID, questionID, logicID); err != nil {
		return err
	}
	if err := s.logicRepo.Delete(ctx, logicID); err != nil {
		return fault.NewInternal("deleting rule", err)
	}
	s.logicMapCache.Invalidate(ctx, surveyID)
	return nil
}

// Reorder reassigns priorities for a question's rules from the given id
// order: the first id gets priority 0 and so on. The list must name every
// rule of the question exactly once.
func (s *LogicService) Reorder(ctx context.Context, surveyID, questionID string, orderedIDs []string) error {
	if _, err := s.surveyWithQuestion(ctx, surveyID, questionID); err != nil {
		return err
	}
	rules, err := s.logicRepo.GetByQuestionID(ctx, surveyID, questionID)
	if err != nil {
		return fault.NewInternal("loading rules", err)
	}

	existing := make(map[string]bool, len(rules))
	for _, r := range rules {
		existing[r.ID] = true
	}
	if len(orderedIDs) != len(rules) {
		return fault.NewValidationf("reorder must name all %d rules of the question", len(rules))
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !existing[id] {
			return fault.NewValidationf("rule %s does not belong to the question", id)
		}
		if seen[id] {
			return fault.NewValidationf("rule %s listed twice", id)
		}
		seen[id] = true
	}

	for i, id := range orderedIDs {
		if err := s.logicRepo.SetPriority(ctx, id, i); err != nil {
			return fault.NewInternal("reassigning priority", err)
		}
	}
	s.logicMapCache.Invalidate(ctx, surveyID)
	return nil
}

// Map returns the survey's logic graph, from cache when fresh.
func (s *LogicService) Map(ctx context.Context, surveyID string) (*model.LogicMap, error) {
	if cached, err := s.logicMapCache.Get(ctx, surveyID); err == nil && cached != nil {
		return cached, nil
	}

	survey, err := s.getSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	rules, err := s.logicRepo.GetBySurveyID(ctx, surveyID)
	if err != nil {
		return nil, fault.NewInternal("loading rules", err)
	}

	m := logic.BuildMap(survey, rules)
	s.logicMapCache.Set(ctx, m)
	return m, nil
}

// Evaluate materializes the survey and its rules and runs one engine pass
// over the answer snapshot. The per-question decisions come back keyed by
// question id; questions without a matching rule are visible.
func (s *LogicService) Evaluate(ctx context.Context, surveyID string, answers map[string]string) (*model.EvaluationResult, error) {
	survey, err := s.getSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	rules, err := s.logicRepo.GetBySurveyID(ctx, surveyID)
	if err != nil {
		return nil, fault.NewInternal("loading rules", err)
	}
	return logic.Evaluate(survey, rules, logic.NewSnapshot(answers)), nil
}

// validateAgainstSurvey runs the graph-level checks with the survey's full
// rule set as context.
func (s *LogicService) validateAgainstSurvey(ctx context.Context, survey *model.Survey, rule *model.QuestionLogic) error {
	existing, err := s.logicRepo.GetBySurveyID(ctx, survey.ID)
	if err != nil {
		return fault.NewInternal("loading rules", err)
	}
	return logic.ValidateRule(survey, existing, rule)
}

func (s *LogicService) getSurvey(ctx context.Context, surveyID string) (*model.Survey, error) {
	if cached, err := s.surveyCache.Get(ctx, surveyID); err == nil && cached != nil {
		return cached, nil
	}

	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fault.NewInternal("loading survey", err)
	}
	if survey == nil {
		return nil, fault.NewNotFound("survey not found")
	}
	s.surveyCache.Set(ctx, survey)
	return survey, nil
}

func (s *LogicService) surveyWithQuestion(ctx context.Context, surveyID, questionID string) (*model.Survey, error) {
	survey, err := s.getSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if !survey.HasQuestion(questionID) {
		return nil, fault.NewNotFound("question not in survey")
	}
	return survey, nil
}

func (s *LogicService) ruleInQuestion(ctx context.Context, surveyID, questionID, logicID string) (*model.QuestionLogic, error) {
	rule, err := s.logicRepo.GetByID(ctx, logicID)
	if err != nil {
		return nil, fault.NewInternal("loading rule", err)
	}
	if rule == nil || rule.SurveyID != surveyID || rule.QuestionID != questionID {
		return nil, fault.NewNotFound("logic rule not found")
	}
	return rule, nil
}
