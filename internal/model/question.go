package model

// QuestionType defines the answer shape of a question
type QuestionType string

const (
	QuestionTypeSingleChoice   QuestionType = "singleChoice"
	QuestionTypeMultipleChoice QuestionType = "multipleChoice"
	QuestionTypeText           QuestionType = "text"
	QuestionTypeScale          QuestionType = "scale"
	QuestionTypeRating         QuestionType = "rating"
	QuestionTypeNPS            QuestionType = "nps"
	QuestionTypeNumber         QuestionType = "number"
	QuestionTypeYesNo          QuestionType = "yesNo"
	QuestionTypeDropdown       QuestionType = "dropdown"
)

// Question is a single survey question. Referenced by logic rules via id.
type Question struct {
	ID         string       `json:"id" bson:"id"`
	Text       string       `json:"text" bson:"text"`
	Type       QuestionType `json:"type" bson:"type"`
	Order      int          `json:"order" bson:"order"` // 1-based position in the survey
	IsRequired bool         `json:"isRequired" bson:"isRequired"`
	Options    []string     `json:"options,omitempty" bson:"options,omitempty"` // choice types only
	ScaleMin   int          `json:"scaleMin,omitempty" bson:"scaleMin,omitempty"`
	ScaleMax   int          `json:"scaleMax,omitempty" bson:"scaleMax,omitempty"`
}
