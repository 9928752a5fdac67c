package memory

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type athleteRepository struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]domain.Athlete
	order []primitive.ObjectID
}

// NewAthleteRepository creates an in-memory repository.AthleteRepository.
func NewAthleteRepository() repository.AthleteRepository {
	return &athleteRepository{items: make(map[primitive.ObjectID]domain.Athlete)}
}

func (r *athleteRepository) CreateMany(_ context.Context, athletes []domain.Athlete) ([]domain.Athlete, error) {
	for _, a := range athletes {
		if a.CoachID.IsZero() || a.Email == "" {
			return nil, errors.New("athlete requires coachId and email")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	created := make([]domain.Athlete, len(athletes))
	for i, a := range athletes {
		a.ID = primitive.NewObjectID()
		r.items[a.ID] = a
		r.order = append(r.order, a.ID)
		created[i] = a
	}
	return created, nil
}

func (r *athleteRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Athlete, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *athleteRepository) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.Athlete, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	athletes := []domain.Athlete{}
	for _, id := range r.order {
		if a, ok := r.items[id]; ok && a.CoachID == coachID {
			athletes = append(athletes, a)
		}
	}
	return athletes, nil
}

func (r *athleteRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.AthleteStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Status = status
	r.items[id] = a
	return nil
}

func (r *athleteRepository) Delete(_ context.Context, id, coachID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok || a.CoachID != coachID {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
