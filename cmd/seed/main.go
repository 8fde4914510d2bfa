package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveyforge/internal/config"
	"surveyforge/internal/model"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	surveyColl := db.Collection("surveys")
	logicColl := db.Collection("question_logic")

	nps := uuid.NewString()
	liked := uuid.NewString()
	wrong := uuid.NewString()
	contact := uuid.NewString()

	now := time.Now()
	survey := model.Survey{
		ID:     uuid.NewString(),
		Title:  "Product Feedback",
		Status: model.SurveyStatusPublished,
		Questions: []model.Question{
			{
				ID:         nps,
				Text:       "How likely are you to recommend us to a friend?",
				Type:       model.QuestionTypeNPS,
				Order:      1,
				IsRequired: true,
				ScaleMin:   0,
				ScaleMax:   10,
			},
			{
				ID:    liked,
				Text:  "What did you like most?",
				Type:  model.QuestionTypeText,
				Order: 2,
			},
			{
				ID:    wrong,
				Text:  "What went wrong for you?",
				Type:  model.QuestionTypeText,
				Order: 3,
			},
			{
				ID:    contact,
				Text:  "May we contact you about your feedback?",
				Type:  model.QuestionTypeYesNo,
				Order: 4,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	rules := []model.QuestionLogic{
		{
			ID:               uuid.NewString(),
			SurveyID:         survey.ID,
			QuestionID:       liked,
			SourceQuestionID: nps,
			Operator:         model.OperatorGreaterThanOrEquals,
			ConditionValue:   "9",
			Action:           model.ActionShow,
			Priority:         0,
			CreatedAt:        now,
		},
		{
			ID:               uuid.NewString(),
			SurveyID:         survey.ID,
			QuestionID:       liked,
			SourceQuestionID: nps,
			Operator:         model.OperatorLessThan,
			ConditionValue:   "7",
			Action:           model.ActionHide,
			Priority:         1,
			CreatedAt:        now.Add(time.Second),
		},
		{
			ID:               uuid.NewString(),
			SurveyID:         survey.ID,
			QuestionID:       wrong,
			SourceQuestionID: nps,
			Operator:         model.OperatorGreaterThan,
			ConditionValue:   "6",
			Action:           model.ActionHide,
			Priority:         0,
			CreatedAt:        now,
		},
		{
			ID:               uuid.NewString(),
			SurveyID:         survey.ID,
			QuestionID:       contact,
			SourceQuestionID: wrong,
			Operator:         model.OperatorIsAnswered,
			Action:           model.ActionShow,
			Priority:         0,
			CreatedAt:        now,
		},
	}

	if _, err := surveyColl.InsertOne(ctx, survey); err != nil {
		log.Fatalf("Failed to insert survey: %v", err)
	}
	for _, rule := range rules {
		if _, err := logicColl.InsertOne(ctx, rule); err != nil {
			log.Fatalf("Failed to insert logic rule: %v", err)
		}
	}

	fmt.Printf("Seeded survey %s with %d questions and %d logic rules\n",
		survey.ID, len(survey.Questions), len(rules))
}
