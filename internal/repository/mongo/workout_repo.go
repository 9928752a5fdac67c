// internal/repository/mongo/workout_repo.go
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

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.CoachID == primitive.NilObjectID || workout.Name == "" {
		return primitive.NilObjectID, errors.New("workout requires coachId and name")
	}
	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, workout); err != nil {
		return primitive.NilObjectID, err
	}
	return workout.ID, nil
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if workout.Exercises == nil {
		workout.Exercises = []domain.WorkoutExercise{}
	}
	return &workout, nil
}

// GetByCoachID lists a coach's workouts in creation order.
func (r *mongoWorkoutRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Workout, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"coachId": coachID}, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Workout](ctx, cursor)
}

// Update saves the header fields and the full, ordered exercise list.
func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == primitive.NilObjectID {
		return errors.New("workout ID is required for update")
	}
	update := bson.M{
		"$set": bson.M{
			"name":        workout.Name,
			"description": workout.Description,
			"type":        workout.Type,
			"duration":    workout.Duration,
			"exercises":   workout.Exercises,
			"coachNotes":  workout.CoachNotes,
			"lastEdited":  workout.LastEdited,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": workout.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
