package model

import "time"

// LogicOperator is the comparison applied to a source question's answer
type LogicOperator string

const (
	OperatorEquals              LogicOperator = "equals"
	OperatorNotEquals           LogicOperator = "notEquals"
	OperatorContains            LogicOperator = "contains"
	OperatorNotContains         LogicOperator = "notContains"
	OperatorGreaterThan         LogicOperator = "greaterThan"
	OperatorLessThan            LogicOperator = "lessThan"
	OperatorGreaterThanOrEquals LogicOperator = "greaterThanOrEquals"
	OperatorLessThanOrEquals    LogicOperator = "lessThanOrEquals"
	OperatorIsEmpty             LogicOperator = "isEmpty"
	OperatorIsNotEmpty          LogicOperator = "isNotEmpty"
	OperatorIsAnswered          LogicOperator = "isAnswered"
	OperatorIsNotAnswered       LogicOperator = "isNotAnswered"
)

// IsNullary reports whether the operator ignores the condition value.
func (o LogicOperator) IsNullary() bool {
	switch o {
	case OperatorIsEmpty, OperatorIsNotEmpty, OperatorIsAnswered, OperatorIsNotAnswered:
		return true
	}
	return false
}

// Valid reports whether the operator is a known value.
func (o LogicOperator) Valid() bool {
	switch o {
	case OperatorEquals, OperatorNotEquals, OperatorContains, OperatorNotContains,
		OperatorGreaterThan, OperatorLessThan, OperatorGreaterThanOrEquals,
		OperatorLessThanOrEquals, OperatorIsEmpty, OperatorIsNotEmpty,
		OperatorIsAnswered, OperatorIsNotAnswered:
		return true
	}
	return false
}

// LogicAction is what happens to the affected question when a rule matches
type LogicAction string

const (
	ActionShow      LogicAction = "show"
	ActionHide      LogicAction = "hide"
	ActionSkipTo    LogicAction = "skipTo"
	ActionJumpTo    LogicAction = "jumpTo"
	ActionEndSurvey LogicAction = "endSurvey"
)

// Valid reports whether the action is a known value.
func (a LogicAction) Valid() bool {
	switch a {
	case ActionShow, ActionHide, ActionSkipTo, ActionJumpTo, ActionEndSurvey:
		return true
	}
	return false
}

// QuestionLogic is a single conditional rule. It belongs to the affected
// question (QuestionID) and tests the answer of the source question.
// Rules are immutable during evaluation; lower Priority evaluates first,
// ties broken by CreatedAt.
type QuestionLogic struct {
	ID               string        `json:"id" bson:"_id,omitempty"`
	SurveyID         string        `json:"surveyId" bson:"surveyId"`
	QuestionID       string        `json:"questionId" bson:"questionId"`
	SourceQuestionID string        `json:"sourceQuestionId" bson:"sourceQuestionId"`
	Operator         LogicOperator `json:"operator" bson:"operator"`
	ConditionValue   string        `json:"conditionValue" bson:"conditionValue"`
	Action           LogicAction   `json:"action" bson:"action"`
	TargetQuestionID string        `json:"targetQuestionId,omitempty" bson:"targetQuestionId,omitempty"`
	Priority         int           `json:"priority" bson:"priority"`
	CreatedAt        time.Time     `json:"createdAt" bson:"createdAt"`
}

// Decision is the per-question outcome of an evaluation pass
type Decision string

const (
	DecisionVisible   Decision = "visible"
	DecisionHidden    Decision = "hidden"
	DecisionJumpTo    Decision = "jumpTo"
	DecisionEndSurvey Decision = "endSurvey"
)

// QuestionDecision carries the decision for one question. TargetQuestionID
// is set only for jump decisions.
type QuestionDecision struct {
	Decision         Decision `json:"decision"`
	TargetQuestionID string   `json:"targetQuestionId,omitempty"`
	MatchedRuleID    string   `json:"matchedRuleId,omitempty"`
}

// EvaluationResult is the full outcome of evaluating a survey against an
// answer snapshot.
type EvaluationResult struct {
	SurveyID           string                      `json:"surveyId"`
	Decisions          map[string]QuestionDecision `json:"decisions"`
	VisibleQuestionIDs []string                    `json:"visibleQuestionIds"`
	EndSurvey          bool                        `json:"endSurvey"`
}
