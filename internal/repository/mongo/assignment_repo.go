package mongo

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const assignmentCollectionName = "assignments"

// mongoAssignmentRepository implements repository.AssignmentRepository
type mongoAssignmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssignmentRepository creates a new Assignment repository.
func NewMongoAssignmentRepository(db *mongo.Database) repository.AssignmentRepository {
	return &mongoAssignmentRepository{
		collection: db.Collection(assignmentCollectionName),
	}
}

// Create inserts a new plan assignment.
func (r *mongoAssignmentRepository) Create(ctx context.Context, assignment *domain.PlanAssignment) (primitive.ObjectID, error) {
	if assignment.AthleteID == primitive.NilObjectID || assignment.PlanID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("assignment requires athleteId and planId")
	}
	assignment.ID = primitive.NewObjectID()
	assignment.AssignedAt = time.Now().UTC()
	if _, err := r.collection.InsertOne(ctx, assignment); err != nil {
		return primitive.NilObjectID, err
	}
	return assignment.ID, nil
}

// GetByAthleteID lists an athlete's assignments in the order they were made.
func (r *mongoAssignmentRepository) GetByAthleteID(ctx context.Context, athleteID primitive.ObjectID) ([]domain.PlanAssignment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "assignedAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"athleteId": athleteID}, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.PlanAssignment](ctx, cursor)
}

func assignmentIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "athleteId", Value: 1}, {Key: "assignedAt", Value: 1}}},
		{Keys: bson.D{{Key: "coachId", Value: 1}}},
	}
}
