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

type assignmentRepository struct {
	mu    sync.RWMutex
	items []domain.PlanAssignment
}

// NewAssignmentRepository creates an in-memory repository.AssignmentRepository.
func NewAssignmentRepository() repository.AssignmentRepository {
	return &assignmentRepository{}
}

func (r *assignmentRepository) Create(_ context.Context, assignment *domain.PlanAssignment) (primitive.ObjectID, error) {
	if assignment.AthleteID.IsZero() || assignment.PlanID.IsZero() {
		return primitive.NilObjectID, errors.New("assignment requires athleteId and planId")
	}
	assignment.ID = primitive.NewObjectID()
	assignment.AssignedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *assignment)
	return assignment.ID, nil
}

func (r *assignmentRepository) GetByAthleteID(_ context.Context, athleteID primitive.ObjectID) ([]domain.PlanAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.PlanAssignment{}
	for _, a := range r.items {
		if a.AthleteID == athleteID {
			out = append(out, a)
		}
	}
	return out, nil
}
