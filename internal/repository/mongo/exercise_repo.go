// internal/repository/mongo/exercise_repo.go
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

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new custom exercise.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.CoachID == primitive.NilObjectID || exercise.Name == "" {
		return primitive.NilObjectID, errors.New("exercise requires coachId and name")
	}
	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, exercise); err != nil {
		return primitive.NilObjectID, err
	}
	return exercise.ID, nil
}

// GetByID retrieves a single exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// GetByCoachID lists a coach's exercises in creation order.
func (r *mongoExerciseRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"coachId": coachID}, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Exercise](ctx, cursor)
}

// Update replaces the editable fields. Owner, source and createdAt never change.
func (r *mongoExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == primitive.NilObjectID {
		return errors.New("exercise ID is required for update")
	}
	exercise.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":             exercise.Name,
			"category":         exercise.Category,
			"exerciseType":     exercise.ExerciseType,
			"primaryMuscle":    exercise.PrimaryMuscle,
			"secondaryMuscles": exercise.SecondaryMuscles,
			"defaults":         exercise.Defaults,
			"alternativeIds":   exercise.AlternativeIDs,
			"description":      exercise.Description,
			"videoUrl":         exercise.VideoURL,
			"updatedAt":        exercise.UpdatedAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": exercise.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
