// internal/repository/mongo/plan_repo.go
package mongo

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new Plan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a fully materialised custom plan.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if plan.CoachID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires coachId and name")
	}
	plan.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, plan); err != nil {
		return primitive.NilObjectID, err
	}
	return plan.ID, nil
}

// GetByID retrieves a single plan by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	var plan domain.Plan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByCoachID lists a coach's plans, oldest first.
func (r *mongoPlanRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Plan, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"coachId": coachID}, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Plan](ctx, cursor)
}
