package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is a one-to-one thread between a coach and an athlete.
type Conversation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID       primitive.ObjectID `bson:"coachId" json:"coachId"`
	AthleteID     primitive.ObjectID `bson:"athleteId" json:"athleteId"`
	LastMessage   string             `bson:"lastMessage,omitempty" json:"lastMessage,omitempty"`
	LastMessageAt *time.Time         `bson:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// HasParticipant reports whether the user takes part in the conversation.
func (c *Conversation) HasParticipant(userID primitive.ObjectID) bool {
	return c.CoachID == userID || c.AthleteID == userID
}

// Message is appended to a conversation; listing order is append order.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID primitive.ObjectID `bson:"conversationId" json:"conversationId"`
	SenderID       primitive.ObjectID `bson:"senderId" json:"senderId"`
	Text           string             `bson:"text" json:"text"`
	Seq            int64              `bson:"seq" json:"-"`
	SentAt         time.Time          `bson:"sentAt" json:"sentAt"`
	Read           bool               `bson:"read" json:"read"`
}
