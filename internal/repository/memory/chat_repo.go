package memory

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type chatRepository struct {
	mu            sync.RWMutex
	conversations map[primitive.ObjectID]domain.Conversation
	messages      map[primitive.ObjectID][]domain.Message
	seq           int64
}

// NewChatRepository creates an in-memory repository.ChatRepository.
func NewChatRepository() repository.ChatRepository {
	return &chatRepository{
		conversations: make(map[primitive.ObjectID]domain.Conversation),
		messages:      make(map[primitive.ObjectID][]domain.Message),
	}
}

func (r *chatRepository) CreateConversation(_ context.Context, conv *domain.Conversation) (primitive.ObjectID, error) {
	if conv.CoachID.IsZero() || conv.AthleteID.IsZero() {
		return primitive.NilObjectID, errors.New("conversation requires coachId and athleteId")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conversations {
		if c.CoachID == conv.CoachID && c.AthleteID == conv.AthleteID {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	conv.ID = primitive.NewObjectID()
	conv.CreatedAt = time.Now().UTC()
	r.conversations[conv.ID] = *conv
	return conv.ID, nil
}

func (r *chatRepository) GetConversation(_ context.Context, id primitive.ObjectID) (*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conversations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *chatRepository) FindConversation(_ context.Context, coachID, athleteID primitive.ObjectID) (*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.conversations {
		if c.CoachID == coachID && c.AthleteID == athleteID {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListConversations returns the user's conversations, most recently active first.
func (r *chatRepository) ListConversations(_ context.Context, userID primitive.ObjectID) ([]domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Conversation{}
	for _, c := range r.conversations {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return lastActivity(out[i]).After(lastActivity(out[j]))
	})
	return out, nil
}

func lastActivity(c domain.Conversation) time.Time {
	if c.LastMessageAt != nil {
		return *c.LastMessageAt
	}
	return c.CreatedAt
}

func (r *chatRepository) AppendMessage(_ context.Context, msg *domain.Message) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.conversations[msg.ConversationID]
	if !ok {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	r.seq++
	msg.ID = primitive.NewObjectID()
	msg.Seq = r.seq
	msg.SentAt = time.Now().UTC()
	r.messages[conv.ID] = append(r.messages[conv.ID], *msg)

	sentAt := msg.SentAt
	conv.LastMessage = msg.Text
	conv.LastMessageAt = &sentAt
	r.conversations[conv.ID] = conv
	return msg.ID, nil
}

func (r *chatRepository) ListMessages(_ context.Context, conversationID primitive.ObjectID) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	msgs := r.messages[conversationID]
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (r *chatRepository) MarkRead(_ context.Context, conversationID, readerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.messages[conversationID]
	for i := range msgs {
		if msgs[i].SenderID != readerID {
			msgs[i].Read = true
		}
	}
	return nil
}
