package service

import (
	"context"
	"testing"

	"surveyforge/internal/model"
	"surveyforge/pkg/fault"
)

func newTestLogicService(t *testing.T) (*LogicService, *model.Survey) {
	t.Helper()

	surveyRepo := newFakeSurveyRepo()
	logicRepo := newFakeLogicRepo()
	svc := NewLogicService(surveyRepo, logicRepo, newFakeSurveyCache(), newFakeLogicMapCache())

	survey := &model.Survey{
		ID:     "s1",
		Title:  "Feedback",
		Status: model.SurveyStatusDraft,
		Questions: []model.Question{
			{ID: "q1", Text: "How likely are you to recommend us?", Type: model.QuestionTypeScale, Order: 1, ScaleMin: 0, ScaleMax: 10},
			{ID: "q2", Text: "What did you like?", Type: model.QuestionTypeText, Order: 2},
			{ID: "q3", Text: "What went wrong?", Type: model.QuestionTypeText, Order: 3},
		},
	}
	if err := surveyRepo.Create(context.Background(), survey); err != nil {
		t.Fatalf("seeding survey: %v", err)
	}
	return svc, survey
}

func TestAddRule_RoundTrip(t *testing.T) {
	svc, _ := newTestLogicService(t)
	ctx := context.Background()

	priority := 2
	created, err := svc.AddRule(ctx, "s1", "q2", RuleInput{
		SourceQuestionID: "q1",
		Operator:         model.OperatorGreaterThan,
		ConditionValue:   "8",
		Action:           model.ActionShow,
		Priority:         &priority,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Errorf("expected an assigned rule id")
	}

	rules, err := svc.Rules(ctx, "s1", "q2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	got := rules[0]
	if got.Operator != model.OperatorGreaterThan || got.ConditionValue != "8" ||
		got.Action != model.ActionShow || got.TargetQuestionID != "" || got.Priority != 2 {
		t.Errorf("fetched rule differs from created one: %+v", got)
	}
}

func TestAddRule_OmittedPriorityAppends(t *testing.T) {
	svc, _ := newTestLogicService(t)
	ctx := context.Background()

	first, err := svc.AddRule(ctx, "s1", "q2", RuleInput{
		SourceQuestionID: "q1", Operator: model.OperatorIsAnswered, Action: model.ActionShow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.AddRule(ctx, "s1", "q2", RuleInput{
		SourceQuestionID: "q1", Operator: model.OperatorIsEmpty, Action: model.ActionHide,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Priority != 0 {
		t.Errorf("expected first rule at priority 0, got %d", first.Priority)
	}
	if second.Priority != 1 {
		t.Errorf("expected second rule appended at priority 1, got %d", second.Priority)
	}
}

func TestAddRule_RejectsInvalidRule(t *testing.T) {
	svc, _ := newTestLogicService(t)
	ctx := context.Background()

	_, err := svc.AddRule(ctx, "s1", "q2", RuleInput{
		SourceQuestionID: "q1",
		Operator:         model.OperatorEquals,
		ConditionValue:   "", // required for equals
		Action:           model.ActionShow,
	})
	if !fault.IsValidation(err) {
		t.Errorf("expected validation fault, got %v", err)
	}

	_, err = svc.AddRule(ctx, "s1", "q2", RuleInput{
		SourceQuestionID: "q2", // self-reference
		Operator:         model.OperatorIsAnswered,
		Action:           model.ActionHide,
	})
	if !fault.IsValidation(err) {
		t.Errorf("expected validation fault for self-source, got %v", err)
	}
}

func TestAddRule_RejectsCycleAcrossRules(t *testing.T) {
	svc, _ := newTestLogicService(t)
	ctx := context.Background()

	_, err := svc.AddRule(ctx, "s1", "q2", RuleInput{
		SourceQuestionID: "q1", Operator: model.OperatorEquals, ConditionValue: "yes",
		Action: model.ActionJumpTo, TargetQuestionID: "q3",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.AddRule(ctx, "s1", "q3", RuleInput{
		SourceQuestionID: "q1", Operator: model.OperatorEquals, ConditionValue: "no",
		Action: model.ActionJumpTo, TargetQuestionID: "q2",
	})
	if !fault.IsValidation(err) {
		t.Errorf("expected the closing jump cycle to be rejected, got %v", err)
	}
}

func TestRules_UnknownQuestionIsNotFound(t *testing.T) {
	svc, _ := newTestLogicService(t)

	_, err := svc.Rules(context.Background(), "s1", "q99")
	if !fault.IsNotFound(err) {
		t.Errorf("expected not-found fault, got %v", err)
	}

	_, err = svc.Rules(context.Background(), "s99", "q1")
	if !fault.IsNotFound(err) {
		t.Errorf("expected not-found fault for unknown survey, got %v", err)
	}
}

func TestUpdateRule_RevalidatesAndPersists(t *testing.T) {
	svc, _ := newTestLogicService(t)
	ctx := context.Background()

	created, err := svc.AddRule(ctx, "s1", "q2", RuleInput{
		SourceQuestionID: "q1", Operator: model.OperatorEquals, ConditionValue: "5",
		Action: model.ActionHide,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateRule(ctx, "s1", "q2", created.ID, RuleInput{
		SourceQuestionID: "q1", Operator: model.OperatorLessThan, ConditionValue: "3",
		Action: model.ActionJumpTo, TargetQuestionID: "q3",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Operator != model.OperatorLessThan || updated.TargetQuestionID != "q3" {
		t.Errorf("update not applied: %+v", updated)
	}

	// Invalid update is rejected and leaves the stored rule untouched.
	_, err = svc.UpdateRule(ctx, "s1", "q2", created.ID, RuleInput{
		SourceQuestionID: "q1", Operator: model.OperatorLessThan, ConditionValue: "3",
		Action: model.ActionJumpTo, // target missing
	})
	if !fault.IsValidation(err) {
		t.Errorf("expected validation fault, got %v", err)
	}
	rules, _ := svc.Rules(ctx, "s1", "q2")
	if rules[0].TargetQuestionID != "q3" {
		t.Errorf("rejected update modified the stored rule: %+v", rules[0])
	}
}

func TestDeleteRule_UnknownRuleIsNotFound(t *testing.T) {
	svc, _ := newTestLogicService(t)

	err := svc.DeleteRule(context.Background(), "s1", "q2", "missing")
	if !fault.IsNotFound(err) {
		t.Errorf("expected not-found fault, got %v", err)
	}
}

func TestReorder_ReassignsPriorities(t *testing.T) {
	svc, _ := newTestLogicService(t)
	ctx := context.Background()

	a, _ := svc.AddRule(ctx, "s1", "q2", RuleInput{
		SourceQuestionID: "q1", Operator: model.OperatorIsAnswered, Action: model.ActionShow,
	})
	b, _ := svc.AddRule(ctx, "s1", "q2", RuleInput{
		SourceQuestionID: "q1", Operator: model.OperatorIsEmpty, Action: model.ActionHide,
	})

	if err := svc.Reorder(ctx, "s1", "q2", []string{b.ID, a.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rules, _ := svc.Rules(ctx, "s1", "q2")
	if rules[0].ID != b.ID || rules[0].Priority != 0 {
		t.Errorf("expected %s first at priority 0, got %+v", b.ID, rules[0])
	}
	if rules[1].ID != a.ID || rules[1].Priority != 1 {
		t.Errorf("expected %s second at priority 1, got %+v", a.ID, rules[1])
	}
}

func TestReorder_RejectsIncompleteOrForeignIDs(t *testing.T) {
	svc, _ := newTestLogicService(t)
	ctx := context.Background()

	a, _ := svc.AddRule(ctx, "s1", "q2", RuleInput{
		SourceQuestionID: "q1", Operator: model.OperatorIsAnswered, Action: model.ActionShow,
	})
	svc.AddRule(ctx, "s1", "q2", RuleInput{
		SourceQuestionID: "q1", Operator: model.OperatorIsEmpty, Action: model.ActionHide,
	})

	if err := svc.Reorder(ctx, "s1", "q2", []string{a.ID}); !fault.IsValidation(err) {
		t.Errorf("expected validation fault for incomplete list, got %v", err)
	}
	if err := svc.Reorder(ctx, "s1", "q2", []string{a.ID, "foreign"}); !fault.IsValidation(err) {
		t.Errorf("expected validation fault for foreign id, got %v", err)
	}
}

func TestEvaluate_EndToEnd(t *testing.T) {
	svc, _ := newTestLogicService(t)
	ctx := context.Background()

	// q3 shows only for detractor scores; q2 hides for them.
	if _, err := svc.AddRule(ctx, "s1", "q3", RuleInput{
		SourceQuestionID: "q1", Operator: model.OperatorLessThanOrEquals, ConditionValue: "6",
		Action: model.ActionShow,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.AddRule(ctx, "s1", "q2", RuleInput{
		SourceQuestionID: "q1", Operator: model.OperatorLessThanOrEquals, ConditionValue: "6",
		Action: model.ActionHide,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Evaluate(ctx, "s1", map[string]string{"q1": "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := result.Decisions["q2"]; d.Decision != model.DecisionHidden {
		t.Errorf("expected q2 hidden, got %s", d.Decision)
	}
	if d := result.Decisions["q3"]; d.Decision != model.DecisionVisible {
		t.Errorf("expected q3 visible, got %s", d.Decision)
	}

	_, err = svc.Evaluate(ctx, "missing", nil)
	if !fault.IsNotFound(err) {
		t.Errorf("expected not-found fault for unknown survey, got %v", err)
	}
}

func TestMap_CachedUntilRuleWrite(t *testing.T) {
	svc, _ := newTestLogicService(t)
	ctx := context.Background()

	first, err := svc.Map(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Edges) != 0 {
		t.Fatalf("expected no edges yet, got %d", len(first.Edges))
	}

	if _, err := svc.AddRule(ctx, "s1", "q2", RuleInput{
		SourceQuestionID: "q1", Operator: model.OperatorIsAnswered, Action: model.ActionShow,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := svc.Map(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second.Edges) != 1 {
		t.Errorf("expected the write to invalidate the cached map, got %d edges", len(second.Edges))
	}
}
