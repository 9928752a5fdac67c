package memory

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type planRepository struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]*domain.Plan
	order []primitive.ObjectID
}

// NewPlanRepository creates an in-memory repository.PlanRepository.
func NewPlanRepository() repository.PlanRepository {
	return &planRepository{items: make(map[primitive.ObjectID]*domain.Plan)}
}

func (r *planRepository) Create(_ context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if plan.CoachID.IsZero() || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires coachId and name")
	}
	plan.ID = primitive.NewObjectID()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[plan.ID] = plan.Clone()
	r.order = append(r.order, plan.ID)
	return plan.ID, nil
}

func (r *planRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *planRepository) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plans := []domain.Plan{}
	for _, id := range r.order {
		if p := r.items[id]; p.CoachID == coachID {
			plans = append(plans, *p.Clone())
		}
	}
	return plans, nil
}
