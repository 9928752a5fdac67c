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

const postCollectionName = "posts"

// mongoPostRepository implements repository.PostRepository
type mongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new Post repository.
func NewMongoPostRepository(db *mongo.Database) repository.PostRepository {
	return &mongoPostRepository{
		collection: db.Collection(postCollectionName),
	}
}

func (r *mongoPostRepository) Create(ctx context.Context, post *domain.Post) (primitive.ObjectID, error) {
	if post.AuthorID.IsZero() || post.Content == "" {
		return primitive.NilObjectID, errors.New("post requires authorId and content")
	}
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()
	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		return primitive.NilObjectID, err
	}
	return post.ID, nil
}

func (r *mongoPostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	var post domain.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListRecent returns up to limit posts, newest first. A limit <= 0 means no limit.
func (r *mongoPostRepository) ListRecent(ctx context.Context, limit int) ([]domain.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Post](ctx, cursor)
}

// ToggleLike pulls userID when it already liked the post, otherwise adds it.
func (r *mongoPostRepository) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (*domain.Post, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID, "likedBy": userID},
		bson.M{"$pull": bson.M{"likedBy": userID}},
	)
	if err != nil {
		return nil, err
	}
	if result.ModifiedCount == 0 {
		result, err = r.collection.UpdateOne(ctx,
			bson.M{"_id": postID},
			bson.M{"$addToSet": bson.M{"likedBy": userID}},
		)
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 0 {
			return nil, repository.ErrNotFound
		}
	}
	return r.GetByID(ctx, postID)
}

func postIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "authorId", Value: 1}}},
	}
}

func (r *mongoPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
