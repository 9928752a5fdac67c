package repository

import (
	"alcyxob/coach-platform/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with login accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository stores coach-created exercises. Library entries are static.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
}

// WorkoutRepository stores coach-built workouts. Templates are static.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
}

// PlanRepository stores custom plans. Plans are never edited once saved.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Plan, error)
}

// AthleteRepository stores a coach's roster.
type AthleteRepository interface {
	CreateMany(ctx context.Context, athletes []domain.Athlete) ([]domain.Athlete, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Athlete, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Athlete, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.AthleteStatus) error
	Delete(ctx context.Context, id, coachID primitive.ObjectID) error
}

// AssignmentRepository stores plan assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.PlanAssignment) (primitive.ObjectID, error)
	GetByAthleteID(ctx context.Context, athleteID primitive.ObjectID) ([]domain.PlanAssignment, error)
}

// ChatRepository stores conversations and their messages.
type ChatRepository interface {
	CreateConversation(ctx context.Context, conv *domain.Conversation) (primitive.ObjectID, error)
	GetConversation(ctx context.Context, id primitive.ObjectID) (*domain.Conversation, error)
	FindConversation(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error)
	// AppendMessage stores the message after every earlier one of its conversation
	// and updates the conversation preview.
	AppendMessage(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error)
	ListMessages(ctx context.Context, conversationID primitive.ObjectID) ([]domain.Message, error)
	// MarkRead flags messages not sent by readerID as read.
	MarkRead(ctx context.Context, conversationID, readerID primitive.ObjectID) error
}

// PostRepository stores feed posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	// ListRecent returns up to limit posts, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.Post, error)
	// ToggleLike adds or removes userID from the post's likes and returns the post.
	ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (*domain.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Store bundles one repository per aggregate, all backed by the same driver.
type Store struct {
	Users       UserRepository
	Exercises   ExerciseRepository
	Workouts    WorkoutRepository
	Plans       PlanRepository
	Athletes    AthleteRepository
	Assignments AssignmentRepository
	Chat        ChatRepository
	Posts       PostRepository
}
