package service

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("user is not part of this conversation")
)

const maxMessageLength = 4000

type ChatService interface {
	// OpenConversation returns the coach/athlete conversation, creating it on first use.
	OpenConversation(ctx context.Context, userID primitive.ObjectID, role domain.Role, peerID primitive.ObjectID) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error)
	// ListMessages returns messages in send order and marks the peer's ones read.
	ListMessages(ctx context.Context, userID, conversationID primitive.ObjectID) ([]domain.Message, error)
	SendMessage(ctx context.Context, userID, conversationID primitive.ObjectID, text string) (*domain.Message, error)
}

type chatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

func (s *chatService) OpenConversation(ctx context.Context, userID primitive.ObjectID, role domain.Role, peerID primitive.ObjectID) (*domain.Conversation, error) {
	peer, err := s.userRepo.GetByID(ctx, peerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var coachID, athleteID primitive.ObjectID
	switch {
	case role == domain.RoleCoach && peer.IsAthlete():
		coachID, athleteID = userID, peerID
	case role == domain.RoleAthlete && peer.IsCoach():
		coachID, athleteID = peerID, userID
	default:
		return nil, validationError("conversations are between a coach and an athlete")
	}

	conv, err := s.chatRepo.FindConversation(ctx, coachID, athleteID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	conv = &domain.Conversation{CoachID: coachID, AthleteID: athleteID}
	if _, err := s.chatRepo.CreateConversation(ctx, conv); err != nil {
		// created concurrently by the other participant
		if errors.Is(err, repository.ErrDuplicateKey) {
			return s.chatRepo.FindConversation(ctx, coachID, athleteID)
		}
		return nil, err
	}
	return conv, nil
}

func (s *chatService) ListConversations(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error) {
	return s.chatRepo.ListConversations(ctx, userID)
}

func (s *chatService) conversation(ctx context.Context, userID, conversationID primitive.ObjectID) (*domain.Conversation, error) {
	conv, err := s.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return conv, nil
}

func (s *chatService) ListMessages(ctx context.Context, userID, conversationID primitive.ObjectID) ([]domain.Message, error) {
	if _, err := s.conversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	if err := s.chatRepo.MarkRead(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	return s.chatRepo.ListMessages(ctx, conversationID)
}

func (s *chatService) SendMessage(ctx context.Context, userID, conversationID primitive.ObjectID, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validationError("message text is required")
	}
	if len(text) > maxMessageLength {
		return nil, validationError("message longer than %d bytes", maxMessageLength)
	}
	if _, err := s.conversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Text:           text,
	}
	if _, err := s.chatRepo.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
