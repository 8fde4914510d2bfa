package logic

import (
	"testing"

	"surveyforge/internal/model"
)

func TestEvaluateCondition_Operators(t *testing.T) {
	tests := []struct {
		name      string
		op        model.LogicOperator
		condition string
		answer    string
		answered  bool
		want      bool
	}{
		{"equals case-insensitive", model.OperatorEquals, "Yes", "yes", true, true},
		{"equals mismatch", model.OperatorEquals, "Yes", "no", true, false},
		{"equals numeric upgrade", model.OperatorEquals, "5.0", "5", true, true},
		{"equals multi-select membership", model.OperatorEquals, "red", "blue|Red|green", true, true},
		{"notEquals", model.OperatorNotEquals, "Yes", "no", true, true},
		{"contains substring", model.OperatorContains, "good", "very GOOD service", true, true},
		{"contains substring miss", model.OperatorContains, "bad", "very good service", true, false},
		{"contains multi-select is membership not substring", model.OperatorContains, "red", "darkred|blue", true, false},
		{"contains multi-select membership", model.OperatorContains, "red", "darkred|blue|red", true, true},
		{"contains json-encoded multi-select", model.OperatorContains, "red", `["blue","red"]`, true, true},
		{"notContains", model.OperatorNotContains, "red", "blue|green", true, true},
		{"greaterThan", model.OperatorGreaterThan, "8", "9", true, true},
		{"greaterThan equal is false", model.OperatorGreaterThan, "9", "9", true, false},
		{"greaterThan non-numeric answer fails closed", model.OperatorGreaterThan, "8", "nine", true, false},
		{"greaterThan non-numeric condition fails closed", model.OperatorGreaterThan, "high", "9", true, false},
		{"lessThan", model.OperatorLessThan, "5", "3", true, true},
		{"greaterThanOrEquals boundary", model.OperatorGreaterThanOrEquals, "9", "9", true, true},
		{"lessThanOrEquals boundary", model.OperatorLessThanOrEquals, "9", "9", true, true},
		{"isEmpty blank", model.OperatorIsEmpty, "", "   ", true, true},
		{"isEmpty non-blank", model.OperatorIsEmpty, "", "x", true, false},
		{"isNotEmpty", model.OperatorIsNotEmpty, "", "x", true, true},
		{"isAnswered with blank entry", model.OperatorIsAnswered, "", "", true, true},
		{"isAnswered without entry", model.OperatorIsAnswered, "", "", false, false},
		{"isNotAnswered without entry", model.OperatorIsNotAnswered, "", "", false, true},
		{"isNotAnswered with blank entry", model.OperatorIsNotAnswered, "", "", true, false},
		{"unknown operator evaluates false", model.LogicOperator("bogus"), "x", "x", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateCondition(tt.op, tt.condition, tt.answer, tt.answered)
			if got != tt.want {
				t.Errorf("EvaluateCondition(%s, %q, %q, %v) = %v, want %v",
					tt.op, tt.condition, tt.answer, tt.answered, got, tt.want)
			}
		})
	}
}

func TestEvaluateCondition_NullaryOperatorsIgnoreConditionValue(t *testing.T) {
	for _, op := range []model.LogicOperator{
		model.OperatorIsEmpty, model.OperatorIsNotEmpty,
		model.OperatorIsAnswered, model.OperatorIsNotAnswered,
	} {
		withValue := EvaluateCondition(op, "something", "answer", true)
		withoutValue := EvaluateCondition(op, "", "answer", true)
		if withValue != withoutValue {
			t.Errorf("operator %s result depends on condition value", op)
		}
	}
}

func TestSnapshot_DistinguishesAbsentFromBlank(t *testing.T) {
	snap := NewSnapshot(map[string]string{"q1": ""})

	if _, ok := snap.Value("q1"); !ok {
		t.Errorf("expected q1 to be present with a blank value")
	}
	if _, ok := snap.Value("q2"); ok {
		t.Errorf("expected q2 to be absent")
	}
}

func TestSnapshot_IsImmutable(t *testing.T) {
	source := map[string]string{"q1": "yes"}
	snap := NewSnapshot(source)
	source["q1"] = "no"

	if v, _ := snap.Value("q1"); v != "yes" {
		t.Errorf("snapshot changed after source map mutation: got %q", v)
	}
}
