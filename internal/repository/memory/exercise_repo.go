package memory

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type exerciseRepository struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]*domain.Exercise
	order []primitive.ObjectID
}

// NewExerciseRepository creates an in-memory repository.ExerciseRepository.
func NewExerciseRepository() repository.ExerciseRepository {
	return &exerciseRepository{items: make(map[primitive.ObjectID]*domain.Exercise)}
}

func (r *exerciseRepository) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.CoachID.IsZero() || exercise.Name == "" {
		return primitive.NilObjectID, errors.New("exercise requires coachId and name")
	}
	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[exercise.ID] = exercise.Clone()
	r.order = append(r.order, exercise.ID)
	return exercise.ID, nil
}

func (r *exerciseRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ex, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return ex.Clone(), nil
}

func (r *exerciseRepository) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exercises := []domain.Exercise{}
	for _, id := range r.order {
		if ex := r.items[id]; ex.CoachID == coachID {
			exercises = append(exercises, *ex.Clone())
		}
	}
	return exercises, nil
}

func (r *exerciseRepository) Update(_ context.Context, exercise *domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[exercise.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := exercise.Clone()
	updated.CoachID = existing.CoachID
	updated.Source = existing.Source
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.items[exercise.ID] = updated
	exercise.UpdatedAt = updated.UpdatedAt
	return nil
}
