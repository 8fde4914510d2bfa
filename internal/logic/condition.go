package logic

import (
	"strconv"
	"strings"

	"surveyforge/internal/model"
)

// EvaluateCondition applies a single rule condition to the source question's
// answer. answered reports whether the snapshot has any entry for the source
// question, independent of the value being blank.
//
// The function is pure and safe for concurrent use. Unknown operators
// evaluate false.
func EvaluateCondition(op model.LogicOperator, conditionValue, answer string, answered bool) bool {
	switch op {
	case model.OperatorEquals:
		return equalsAnswer(answer, conditionValue)
	case model.OperatorNotEquals:
		return !equalsAnswer(answer, conditionValue)
	case model.OperatorContains:
		return containsAnswer(answer, conditionValue)
	case model.OperatorNotContains:
		return !containsAnswer(answer, conditionValue)
	case model.OperatorGreaterThan:
		cmp, ok := compareNumeric(answer, conditionValue)
		return ok && cmp > 0
	case model.OperatorLessThan:
		cmp, ok := compareNumeric(answer, conditionValue)
		return ok && cmp < 0
	case model.OperatorGreaterThanOrEquals:
		cmp, ok := compareNumeric(answer, conditionValue)
		return ok && cmp >= 0
	case model.OperatorLessThanOrEquals:
		cmp, ok := compareNumeric(answer, conditionValue)
		return ok && cmp <= 0
	case model.OperatorIsEmpty:
		return strings.TrimSpace(answer) == ""
	case model.OperatorIsNotEmpty:
		return strings.TrimSpace(answer) != ""
	case model.OperatorIsAnswered:
		return answered
	case model.OperatorIsNotAnswered:
		return !answered
	default:
		return false
	}
}

// equalsAnswer compares case-insensitively, upgrading to numeric equality
// when both sides parse as numbers. Multi-select answers match when any
// selected value equals the condition.
func equalsAnswer(answer, condition string) bool {
	if isMulti(answer) {
		for _, item := range splitMulti(answer) {
			if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(condition)) {
				return true
			}
		}
		return false
	}
	if cmp, ok := compareNumeric(answer, condition); ok {
		return cmp == 0
	}
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(condition))
}

// containsAnswer is a substring test for scalar answers and a set-membership
// test for multi-select answers.
func containsAnswer(answer, condition string) bool {
	if isMulti(answer) {
		for _, item := range splitMulti(answer) {
			if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(condition)) {
				return true
			}
		}
		return false
	}
	return strings.Contains(strings.ToLower(answer), strings.ToLower(condition))
}

// compareNumeric parses both sides as floats. Non-numeric input returns
// ok=false so numeric operators fail closed instead of guessing a string
// ordering.
func compareNumeric(answer, condition string) (int, bool) {
	left, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
	if err != nil {
		return 0, false
	}
	right, err := strconv.ParseFloat(strings.TrimSpace(condition), 64)
	if err != nil {
		return 0, false
	}
	switch {
	case left < right:
		return -1, true
	case left > right:
		return 1, true
	default:
		return 0, true
	}
}
