package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"surveyhub/internal/model"
)

// ResponseRepo handles MongoDB operations for survey responses
type ResponseRepo interface {
	Create(ctx context.Context, response *model.Response) (string, error)
	GetByID(ctx context.Context, id string) (*model.Response, error)
	GetBySurveyIDs(ctx context.Context, surveyIDs []string) ([]*model.Response, error)
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

func (r *responseRepo) Create(ctx context.Context, response *model.Response) (string, error) {
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, response)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	response.ID = oid.Hex()
	return response.ID, nil
}

func (r *responseRepo) GetByID(ctx context.Context, id string) (*model.Response, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// malformed ids behave like missing documents
		return nil, nil
	}

	var response model.Response
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	response.ID = id
	return &response, nil
}

// GetBySurveyIDs returns every response containing at least one answer to any
// of the given surveys. Returned responses may still carry answers to other
// surveys; callers filter per answer.
func (r *responseRepo) GetBySurveyIDs(ctx context.Context, surveyIDs []string) ([]*model.Response, error) {
	if len(surveyIDs) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"responses.surveyId": bson.M{"$in": surveyIDs}})
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

func (r *responseRepo) DeleteBySurveyID(ctx context.Context, surveyID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"responses.surveyId": surveyID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
