package logic

import (
	"sort"

	"surveyforge/internal/model"
)

// Evaluate runs one pass over the survey and produces exactly one decision
// per question. Rules for a question are tried in resolver order (priority
// ascending, creation time breaking ties) and the first matching rule wins;
// later rules for the same question are never evaluated. Questions with no
// matching rule default to visible.
//
// A decision depends only on other questions' already-submitted answers,
// never on decisions produced in the same pass. Evaluation is a pure read:
// it never mutates its inputs and never fails. Stale references fall back
// to the open default so survey taking is not blocked by builder-side drift.
func Evaluate(survey *model.Survey, rules []model.QuestionLogic, snap Snapshot) *model.EvaluationResult {
	byQuestion := GroupRules(rules)

	result := &model.EvaluationResult{
		SurveyID:  survey.ID,
		Decisions: make(map[string]model.QuestionDecision, len(survey.Questions)),
	}

	for _, question := range questionsInOrder(survey) {
		decision := evaluateQuestion(survey, byQuestion[question.ID], snap)
		result.Decisions[question.ID] = decision
		if decision.Decision == model.DecisionVisible {
			result.VisibleQuestionIDs = append(result.VisibleQuestionIDs, question.ID)
		}
		if decision.Decision == model.DecisionEndSurvey {
			result.EndSurvey = true
		}
	}

	return result
}

// evaluateQuestion resolves the decision for one question: first rule whose
// condition holds wins.
func evaluateQuestion(survey *model.Survey, rules []model.QuestionLogic, snap Snapshot) model.QuestionDecision {
	for _, rule := range rules {
		answer, answered := snap.Value(rule.SourceQuestionID)
		if !EvaluateCondition(rule.Operator, rule.ConditionValue, answer, answered) {
			continue
		}
		return decisionFor(survey, rule)
	}
	return model.QuestionDecision{Decision: model.DecisionVisible}
}

// decisionFor maps the winning rule's action onto a decision. A jump whose
// target no longer exists in the survey falls open to visible.
func decisionFor(survey *model.Survey, rule model.QuestionLogic) model.QuestionDecision {
	switch rule.Action {
	case model.ActionShow:
		return model.QuestionDecision{Decision: model.DecisionVisible, MatchedRuleID: rule.ID}
	case model.ActionHide:
		return model.QuestionDecision{Decision: model.DecisionHidden, MatchedRuleID: rule.ID}
	case model.ActionEndSurvey:
		return model.QuestionDecision{Decision: model.DecisionEndSurvey, MatchedRuleID: rule.ID}
	case model.ActionJumpTo, model.ActionSkipTo:
		if rule.TargetQuestionID == "" {
			// A skip with no explicit target skips the affected question.
			if rule.Action == model.ActionSkipTo {
				return model.QuestionDecision{Decision: model.DecisionHidden, MatchedRuleID: rule.ID}
			}
			return model.QuestionDecision{Decision: model.DecisionVisible, MatchedRuleID: rule.ID}
		}
		if !survey.HasQuestion(rule.TargetQuestionID) {
			return model.QuestionDecision{Decision: model.DecisionVisible, MatchedRuleID: rule.ID}
		}
		return model.QuestionDecision{
			Decision:         model.DecisionJumpTo,
			TargetQuestionID: rule.TargetQuestionID,
			MatchedRuleID:    rule.ID,
		}
	default:
		return model.QuestionDecision{Decision: model.DecisionVisible}
	}
}

// GroupRules indexes rules by affected question, each group in evaluation
// order: priority ascending, creation time breaking ties. The sort is
// stable so repeated calls yield identical order.
func GroupRules(rules []model.QuestionLogic) map[string][]model.QuestionLogic {
	grouped := make(map[string][]model.QuestionLogic)
	for _, rule := range rules {
		grouped[rule.QuestionID] = append(grouped[rule.QuestionID], rule)
	}
	for id := range grouped {
		SortRules(grouped[id])
	}
	return grouped
}

// SortRules orders rules in place by priority, then creation time.
func SortRules(rules []model.QuestionLogic) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		return rules[i].CreatedAt.Before(rules[j].CreatedAt)
	})
}

func questionsInOrder(survey *model.Survey) []model.Question {
	ordered := make([]model.Question, len(survey.Questions))
	copy(ordered, survey.Questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})
	return ordered
}
