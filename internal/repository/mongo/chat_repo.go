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

const (
	conversationCollectionName = "conversations"
	messageCollectionName      = "messages"
)

// mongoChatRepository implements repository.ChatRepository over two collections.
type mongoChatRepository struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

// NewMongoChatRepository creates a new Chat repository.
func NewMongoChatRepository(db *mongo.Database) repository.ChatRepository {
	return &mongoChatRepository{
		conversations: db.Collection(conversationCollectionName),
		messages:      db.Collection(messageCollectionName),
	}
}

func (r *mongoChatRepository) CreateConversation(ctx context.Context, conv *domain.Conversation) (primitive.ObjectID, error) {
	if conv.CoachID.IsZero() || conv.AthleteID.IsZero() {
		return primitive.NilObjectID, errors.New("conversation requires coachId and athleteId")
	}
	conv.ID = primitive.NewObjectID()
	conv.CreatedAt = time.Now().UTC()
	if _, err := r.conversations.InsertOne(ctx, conv); err != nil {
		// (coachId, athleteId) carries a unique index
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}
	return conv.ID, nil
}

func (r *mongoChatRepository) GetConversation(ctx context.Context, id primitive.ObjectID) (*domain.Conversation, error) {
	return r.findConversation(ctx, bson.M{"_id": id})
}

func (r *mongoChatRepository) FindConversation(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Conversation, error) {
	return r.findConversation(ctx, bson.M{"coachId": coachID, "athleteId": athleteID})
}

func (r *mongoChatRepository) findConversation(ctx context.Context, filter bson.M) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := r.conversations.FindOne(ctx, filter).Decode(&conv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// ListConversations returns the user's conversations, most recently active first.
func (r *mongoChatRepository) ListConversations(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error) {
	filter := bson.M{"$or": bson.A{bson.M{"coachId": userID}, bson.M{"athleteId": userID}}}
	findOptions := options.Find().SetSort(bson.D{{Key: "lastActivity", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.conversations.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Conversation](ctx, cursor)
}

// AppendMessage inserts the message and then moves the conversation preview forward.
// Seq is taken from the insertion clock, so listing by (seq, _id) keeps append order.
func (r *mongoChatRepository) AppendMessage(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error) {
	if _, err := r.GetConversation(ctx, msg.ConversationID); err != nil {
		return primitive.NilObjectID, err
	}
	now := time.Now().UTC()
	msg.ID = primitive.NewObjectID()
	msg.SentAt = now
	msg.Seq = now.UnixNano()
	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return primitive.NilObjectID, err
	}

	update := bson.M{"$set": bson.M{
		"lastMessage":   msg.Text,
		"lastMessageAt": now,
		"lastActivity":  now,
	}}
	if _, err := r.conversations.UpdateOne(ctx, bson.M{"_id": msg.ConversationID}, update); err != nil {
		return primitive.NilObjectID, err
	}
	return msg.ID, nil
}

func (r *mongoChatRepository) ListMessages(ctx context.Context, conversationID primitive.ObjectID) ([]domain.Message, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"conversationId": conversationID}, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.Message](ctx, cursor)
}

func (r *mongoChatRepository) MarkRead(ctx context.Context, conversationID, readerID primitive.ObjectID) error {
	filter := bson.M{
		"conversationId": conversationID,
		"senderId":       bson.M{"$ne": readerID},
		"read":           false,
	}
	_, err := r.messages.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	return err
}

func conversationIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}, {Key: "athleteId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "athleteId", Value: 1}}},
		{Keys: bson.D{{Key: "lastActivity", Value: -1}}},
	}
}

func messageIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "seq", Value: 1}}},
	}
}
