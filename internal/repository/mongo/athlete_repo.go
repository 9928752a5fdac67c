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

const athleteCollectionName = "athletes"

// mongoAthleteRepository implements repository.AthleteRepository
type mongoAthleteRepository struct {
	collection *mongo.Collection
}

// NewMongoAthleteRepository creates a new Athlete repository.
func NewMongoAthleteRepository(db *mongo.Database) repository.AthleteRepository {
	return &mongoAthleteRepository{
		collection: db.Collection(athleteCollectionName),
	}
}

// CreateMany inserts a batch of roster entries in one round trip.
func (r *mongoAthleteRepository) CreateMany(ctx context.Context, athletes []domain.Athlete) ([]domain.Athlete, error) {
	if len(athletes) == 0 {
		return []domain.Athlete{}, nil
	}
	created := make([]domain.Athlete, len(athletes))
	docs := make([]interface{}, len(athletes))
	for i, a := range athletes {
		if a.CoachID == primitive.NilObjectID || a.Email == "" {
			return nil, errors.New("athlete requires coachId and email")
		}
		a.ID = primitive.NewObjectID()
		created[i] = a
		docs[i] = a
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a single athlete by its ID.
func (r *mongoAthleteRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Athlete, error) {
	var athlete domain.Athlete
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&athlete)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &athlete, nil
}

// GetByCoachID lists the coach's roster in insertion order.
func (r *mongoAthleteRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Athlete, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"coachId": coachID}, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Athlete](ctx, cursor)
}

func (r *mongoAthleteRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.AthleteStatus) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the athlete only if it belongs to coachID. No tombstone is kept.
func (r *mongoAthleteRepository) Delete(ctx context.Context, id, coachID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "coachId": coachID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		// either missing or owned by another coach
		return repository.ErrNotFound
	}
	return nil
}

func athleteIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "coachId", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "coachId", Value: 1}, {Key: "email", Value: 1}}},
	}
}
