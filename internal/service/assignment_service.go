package service

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentRequest selects a plan and an optional date range. A nil
// StartDate means today; a nil EndDate means start + plan duration.
type AssignmentRequest struct {
	PlanID    primitive.ObjectID
	StartDate *time.Time
	EndDate   *time.Time
}

type AssignmentService interface {
	// AssignPlan binds a template or custom plan to an athlete. The call waits
	// out the configured latency; if ctx ends first nothing is written.
	AssignPlan(ctx context.Context, coachID, athleteID primitive.ObjectID, req AssignmentRequest) (*domain.PlanAssignment, error)
	ListAssignments(ctx context.Context, coachID, athleteID primitive.ObjectID) ([]domain.PlanAssignment, error)
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	athleteRepo    repository.AthleteRepository
	planRepo       repository.PlanRepository
	latency        time.Duration
	now            clock
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	athleteRepo repository.AthleteRepository,
	planRepo repository.PlanRepository,
	latency time.Duration,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		athleteRepo:    athleteRepo,
		planRepo:       planRepo,
		latency:        latency,
		now:            utcNow,
	}
}

// DefaultRange returns [today, today + weeks*7 days].
func DefaultRange(now time.Time, weeks int) (time.Time, time.Time) {
	start := startOfDay(now)
	return start, start.AddDate(0, 0, weeks*domain.DaysPerWeek)
}

func (s *assignmentService) AssignPlan(ctx context.Context, coachID, athleteID primitive.ObjectID, req AssignmentRequest) (*domain.PlanAssignment, error) {
	if _, err := lookupAthlete(ctx, s.athleteRepo, coachID, athleteID); err != nil {
		return nil, err
	}
	plan, err := lookupPlan(ctx, s.planRepo, coachID, req.PlanID)
	if err != nil {
		return nil, err
	}

	start, end := DefaultRange(s.now(), plan.DurationWeeks)
	if req.StartDate != nil {
		start = *req.StartDate
		end = start.AddDate(0, 0, plan.DurationWeeks*domain.DaysPerWeek)
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if end.Before(start) {
		return nil, validationError("end date is before start date")
	}

	if err := s.wait(ctx); err != nil {
		log.Debugf("assignment of plan %s to athlete %s abandoned: %s", plan.ID.Hex(), athleteID.Hex(), err)
		return nil, err
	}

	assignment := &domain.PlanAssignment{
		CoachID:    coachID,
		AthleteID:  athleteID,
		PlanID:     plan.ID,
		PlanSource: plan.Source,
		PlanName:   plan.Name,
		StartDate:  start,
		EndDate:    end,
	}
	if _, err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	log.Infof("plan %s assigned to athlete %s", plan.ID.Hex(), athleteID.Hex())
	return assignment, nil
}

// wait blocks for the configured latency or until ctx is done.
func (s *assignmentService) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *assignmentService) ListAssignments(ctx context.Context, coachID, athleteID primitive.ObjectID) ([]domain.PlanAssignment, error) {
	if _, err := lookupAthlete(ctx, s.athleteRepo, coachID, athleteID); err != nil {
		return nil, err
	}
	return s.assignmentRepo.GetByAthleteID(ctx, athleteID)
}
