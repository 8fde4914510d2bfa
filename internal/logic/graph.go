package logic

import (
	"fmt"
	"strings"

	"surveyforge/internal/model"
	"surveyforge/pkg/fault"
)

// BuildMap projects a survey's rules into a graph for visualization.
// Nodes are the survey's questions in order; each rule becomes one edge
// from its source question to the question it controls (or to the jump
// target for navigation rules).
func BuildMap(survey *model.Survey, rules []model.QuestionLogic) *model.LogicMap {
	affected := make(map[string]bool, len(rules))
	sources := make(map[string]bool, len(rules))
	for _, rule := range rules {
		affected[rule.QuestionID] = true
		sources[rule.SourceQuestionID] = true
	}

	nodes := make([]model.LogicNode, 0, len(survey.Questions))
	for _, q := range questionsInOrder(survey) {
		nodes = append(nodes, model.LogicNode{
			ID:            q.ID,
			Text:          q.Text,
			Order:         q.Order,
			Type:          q.Type,
			HasLogic:      affected[q.ID],
			IsConditional: sources[q.ID],
		})
	}

	edges := make([]model.LogicEdge, 0, len(rules))
	for _, rule := range rules {
		targetID := rule.QuestionID
		if (rule.Action == model.ActionJumpTo || rule.Action == model.ActionSkipTo) && rule.TargetQuestionID != "" {
			targetID = rule.TargetQuestionID
		}
		edges = append(edges, model.LogicEdge{
			ID:             rule.ID,
			SourceID:       rule.SourceQuestionID,
			TargetID:       targetID,
			Operator:       rule.Operator,
			ConditionValue: rule.ConditionValue,
			Action:         rule.Action,
			Label:          edgeLabel(rule),
		})
	}

	return &model.LogicMap{SurveyID: survey.ID, Nodes: nodes, Edges: edges}
}

// ValidateRule runs the write-path checks for a new or updated rule against
// survey-wide context. On updates the candidate replaces any existing rule
// with the same id before the cycle check.
func ValidateRule(survey *model.Survey, existing []model.QuestionLogic, candidate *model.QuestionLogic) error {
	if !candidate.Operator.Valid() {
		return fault.NewValidationf("unknown operator %q", candidate.Operator)
	}
	if !candidate.Action.Valid() {
		return fault.NewValidationf("unknown action %q", candidate.Action)
	}
	if candidate.Priority < 0 {
		return fault.NewValidation("priority must not be negative")
	}
	if !candidate.Operator.IsNullary() && strings.TrimSpace(candidate.ConditionValue) == "" {
		return fault.NewValidationf("operator %q requires a condition value", candidate.Operator)
	}
	if !survey.HasQuestion(candidate.QuestionID) {
		return fault.NewNotFound("question not in survey")
	}
	if !survey.HasQuestion(candidate.SourceQuestionID) {
		return fault.NewNotFound("source question not in survey")
	}
	if candidate.SourceQuestionID == candidate.QuestionID {
		return fault.NewValidation("a question cannot be its own logic source")
	}
	if candidate.Action == model.ActionJumpTo && candidate.TargetQuestionID == "" {
		return fault.NewValidation("jumpTo requires a target question")
	}
	if candidate.TargetQuestionID != "" && !survey.HasQuestion(candidate.TargetQuestionID) {
		return fault.NewNotFound("target question not in survey")
	}

	if cycle := findJumpCycle(existing, candidate); len(cycle) > 0 {
		return fault.NewValidationf("jump rules form a cycle: %s", strings.Join(cycle, " -> "))
	}
	return nil
}

// findJumpCycle checks the transitive jumpTo/skipTo graph, with the
// candidate applied, for cycles. An unchecked cycle would trap a survey
// taker in an endless redirect loop, so it must be rejected at write time.
// Returns the question ids on the first cycle found, or nil.
func findJumpCycle(existing []model.QuestionLogic, candidate *model.QuestionLogic) []string {
	// affected question -> jump targets
	edges := make(map[string][]string)
	addEdge := func(rule *model.QuestionLogic) {
		if rule.Action != model.ActionJumpTo && rule.Action != model.ActionSkipTo {
			return
		}
		if rule.TargetQuestionID == "" {
			return
		}
		edges[rule.QuestionID] = append(edges[rule.QuestionID], rule.TargetQuestionID)
	}
	for i := range existing {
		if existing[i].ID != "" && existing[i].ID == candidate.ID {
			continue // replaced by the candidate on update
		}
		addEdge(&existing[i])
	}
	addEdge(candidate)

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(edges))
	var stack []string

	var visit func(id string) []string
	visit = func(id string) []string {
		state[id] = visiting
		stack = append(stack, id)
		for _, target := range edges[id] {
			switch state[target] {
			case visiting:
				// Walk back up the stack to the start of the cycle.
				for i, onStack := range stack {
					if onStack == target {
						return append(append([]string{}, stack[i:]...), target)
					}
				}
				return []string{target, target}
			case unvisited:
				if cycle := visit(target); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
		return nil
	}

	for id := range edges {
		if state[id] == unvisited {
			if cycle := visit(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// edgeLabel renders a short human-readable description of a rule for the
// logic map UI.
func edgeLabel(rule model.QuestionLogic) string {
	var op string
	switch rule.Operator {
	case model.OperatorEquals:
		op = "="
	case model.OperatorNotEquals:
		op = "≠"
	case model.OperatorContains:
		op = "contains"
	case model.OperatorNotContains:
		op = "not contains"
	case model.OperatorGreaterThan:
		op = ">"
	case model.OperatorLessThan:
		op = "<"
	case model.OperatorGreaterThanOrEquals:
		op = "≥"
	case model.OperatorLessThanOrEquals:
		op = "≤"
	case model.OperatorIsEmpty:
		op = "is empty"
	case model.OperatorIsNotEmpty:
		op = "is not empty"
	case model.OperatorIsAnswered:
		op = "is answered"
	case model.OperatorIsNotAnswered:
		op = "is not answered"
	default:
		op = string(rule.Operator)
	}

	var action string
	switch rule.Action {
	case model.ActionShow:
		action = "→ Show"
	case model.ActionHide:
		action = "→ Hide"
	case model.ActionSkipTo:
		action = "→ Skip to"
	case model.ActionJumpTo:
		action = "→ Jump to"
	case model.ActionEndSurvey:
		action = "→ End Survey"
	default:
		action = string(rule.Action)
	}

	if rule.Operator.IsNullary() {
		return fmt.Sprintf("%s %s", op, action)
	}
	return fmt.Sprintf("%s '%s' %s", op, rule.ConditionValue, action)
}
