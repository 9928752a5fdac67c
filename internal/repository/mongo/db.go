package mongo

import (
	"alcyxob/coach-platform/internal/repository"
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB connects to MongoDB and pings the primary before returning.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	// the driver connects lazily, so a ping is the real reachability check
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = DisconnectDB(client)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// NewStore wires every repository to its collection in db.
func NewStore(db *mongo.Database) *repository.Store {
	return &repository.Store{
		Users:       NewMongoUserRepository(db),
		Exercises:   NewMongoExerciseRepository(db),
		Workouts:    NewMongoWorkoutRepository(db),
		Plans:       NewMongoPlanRepository(db),
		Athletes:    NewMongoAthleteRepository(db),
		Assignments: NewMongoAssignmentRepository(db),
		Chat:        NewMongoChatRepository(db),
		Posts:       NewMongoPostRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection. Failures are logged,
// not fatal: the service still works without them, only slower.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	ensure := map[string][]mongo.IndexModel{
		userCollectionName:         userIndexes(),
		exerciseCollectionName:     coachIndexes(),
		workoutCollectionName:      coachIndexes(),
		planCollectionName:         coachIndexes(),
		athleteCollectionName:      athleteIndexes(),
		assignmentCollectionName:   assignmentIndexes(),
		conversationCollectionName: conversationIndexes(),
		messageCollectionName:      messageIndexes(),
		postCollectionName:         postIndexes(),
	}
	for name, indexes := range ensure {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			log.Warnf("failed to create indexes for collection %s: %s", name, err)
		}
	}
}

// decodeAll drains a cursor into a non-nil slice.
func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]T, error) {
	defer cursor.Close(ctx)
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, cursor.Err()
}
