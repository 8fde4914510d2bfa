package model

// LogicNode is a question in the survey logic map
type LogicNode struct {
	ID            string       `json:"id"`
	Text          string       `json:"text"`
	Order         int          `json:"order"`
	Type          QuestionType `json:"type"`
	HasLogic      bool         `json:"hasLogic"`      // question has rules affecting it
	IsConditional bool         `json:"isConditional"` // question is a source for some rule
}

// LogicEdge is one rule drawn as a directed edge source -> target
type LogicEdge struct {
	ID             string        `json:"id"`
	SourceID       string        `json:"sourceId"`
	TargetID       string        `json:"targetId"`
	Operator       LogicOperator `json:"operator"`
	ConditionValue string        `json:"conditionValue"`
	Action         LogicAction   `json:"action"`
	Label          string        `json:"label"`
}

// LogicMap is the read-only graph projection of a survey's rules,
// built on demand for visualization. Never persisted.
type LogicMap struct {
	SurveyID string      `json:"surveyId"`
	Nodes    []LogicNode `json:"nodes"`
	Edges    []LogicEdge `json:"edges"`
}
