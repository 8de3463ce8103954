package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveypulse/internal/model"
)

// ResponseRepo handles MongoDB operations for survey responses. Insert is
// the only write path for new responses and relies on the (surveyId, userId)
// unique index, so two concurrent submissions for the same pair can never
// both succeed.
type ResponseRepo interface {
	EnsureIndexes(ctx context.Context) error
	Insert(ctx context.Context, response *model.Response) error
	Exists(ctx context.Context, surveyID, userID string) (bool, error)
	ListBySurveyID(ctx context.Context, surveyID string) ([]*model.Response, error)
	CountBySurveyID(ctx context.Context, surveyID string) (int64, error)
	DeleteBySurveyID(ctx context.Context, surveyID string) (int64, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

// EnsureIndexes creates the unique compound index enforcing at most one
// response per (surveyId, userId). Must run before the server accepts
// submissions.
func (r *responseRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "surveyId", Value: 1},
			{Key: "userId", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *responseRepo) Insert(ctx context.Context, response *model.Response) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, response)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		response.ID = oid.Hex()
	}
	return nil
}

func (r *responseRepo) Exists(ctx context.Context, surveyID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{
		"surveyId": surveyID,
		"userId":   userID,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *responseRepo) ListBySurveyID(ctx context.Context, surveyID string) ([]*model.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"surveyId": surveyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) CountBySurveyID(ctx context.Context, surveyID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{"surveyId": surveyID})
}

// DeleteBySurveyID removes all responses for a survey. Called when the
// parent survey is deleted (cascade).
func (r *responseRepo) DeleteBySurveyID(ctx context.Context, surveyID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"surveyId": surveyID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
