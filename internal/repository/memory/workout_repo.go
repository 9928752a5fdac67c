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

type workoutRepository struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]*domain.Workout
	order []primitive.ObjectID
}

// NewWorkoutRepository creates an in-memory repository.WorkoutRepository.
func NewWorkoutRepository() repository.WorkoutRepository {
	return &workoutRepository{items: make(map[primitive.ObjectID]*domain.Workout)}
}

func (r *workoutRepository) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.CoachID.IsZero() || workout.Name == "" {
		return primitive.NilObjectID, errors.New("workout requires coachId and name")
	}
	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[workout.ID] = workout.Clone()
	r.order = append(r.order, workout.ID)
	return workout.ID, nil
}

func (r *workoutRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return w.Clone(), nil
}

func (r *workoutRepository) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	workouts := []domain.Workout{}
	for _, id := range r.order {
		if w := r.items[id]; w.CoachID == coachID {
			workouts = append(workouts, *w.Clone())
		}
	}
	return workouts, nil
}

func (r *workoutRepository) Update(_ context.Context, workout *domain.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[workout.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := workout.Clone()
	updated.CoachID = existing.CoachID
	updated.Source = existing.Source
	updated.CreatedAt = existing.CreatedAt
	r.items[workout.ID] = updated
	return nil
}
