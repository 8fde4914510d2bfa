package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveyforge/internal/model"
)

// LogicRepo handles MongoDB operations for question logic rules.
// All reads come back in evaluation order: priority ascending, creation
// time breaking ties.
type LogicRepo interface {
	Create(ctx context.Context, rule *model.QuestionLogic) error
	GetByID(ctx context.Context, id string) (*model.QuestionLogic, error)
	GetBySurveyID(ctx context.Context, surveyID string) ([]model.QuestionLogic, error)
	GetByQuestionID(ctx context.Context, surveyID, questionID string) ([]model.QuestionLogic, error)
	MaxPriorityForQuestion(ctx context.Context, surveyID, questionID string) (int, error)
	Update(ctx context.Context, rule *model.QuestionLogic) error
	SetPriority(ctx context.Context, id string, priority int) error
	Delete(ctx context.Context, id string) error
	DeleteBySurveyID(ctx context.Context, surveyID string) error
}

type logicRepo struct {
	collection *mongo.Collection
}

// NewLogicRepo creates a new logic rule repository
func NewLogicRepo(db *mongo.Database) LogicRepo {
	return &logicRepo{
		collection: db.Collection("question_logic"),
	}
}

var evaluationOrder = bson.D{{Key: "priority", Value: 1}, {Key: "createdAt", Value: 1}}

func (r *logicRepo) Create(ctx context.Context, rule *model.QuestionLogic) error {
	rule.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, rule)
	return err
}

func (r *logicRepo) GetByID(ctx context.Context, id string) (*model.QuestionLogic, error) {
	var rule model.QuestionLogic
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rule)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *logicRepo) GetBySurveyID(ctx context.Context, surveyID string) ([]model.QuestionLogic, error) {
	return r.find(ctx, bson.M{"surveyId": surveyID})
}

func (r *logicRepo) GetByQuestionID(ctx context.Context, surveyID, questionID string) ([]model.QuestionLogic, error) {
	return r.find(ctx, bson.M{"surveyId": surveyID, "questionId": questionID})
}

func (r *logicRepo) find(ctx context.Context, filter bson.M) ([]model.QuestionLogic, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(evaluationOrder))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []model.QuestionLogic
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *logicRepo) MaxPriorityForQuestion(ctx context.Context, surveyID, questionID string) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "priority", Value: -1}})
	var rule model.QuestionLogic
	err := r.collection.FindOne(ctx, bson.M{"surveyId": surveyID, "questionId": questionID}, opts).Decode(&rule)
	if err == mongo.ErrNoDocuments {
		return -1, nil
	}
	if err != nil {
		return 0, err
	}
	return rule.Priority, nil
}

func (r *logicRepo) Update(ctx context.Context, rule *model.QuestionLogic) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": rule.ID}, rule)
	return err
}

func (r *logicRepo) SetPriority(ctx context.Context, id string, priority int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"priority": priority}})
	return err
}

func (r *logicRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *logicRepo) DeleteBySurveyID(ctx context.Context, surveyID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"surveyId": surveyID})
	return err
}
