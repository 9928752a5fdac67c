package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestAssignmentService(t *testing.T, latency time.Duration) (*assignmentService, *repository.Store, *domain.User, domain.Athlete) {
	t.Helper()
	store := newTestStore()
	svc := NewAssignmentService(store.Assignments, store.Athletes, store.Plans, latency).(*assignmentService)
	svc.now = fixedClock
	coach := createUser(t, store, domain.RoleCoach)
	return svc, store, coach, createAthlete(t, store, coach.ID)
}

func TestDefaultRange(t *testing.T) {
	start, end := DefaultRange(fixedNow, 4)
	assert.Equal(t, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.March, 30, 0, 0, 0, 0, time.UTC), end)
}

func TestAssignmentService_AssignTemplate(t *testing.T) {
	svc, _, coach, athlete := newTestAssignmentService(t, 0)
	ctx := context.Background()
	template := domain.PlanTemplates()[0]

	a, err := svc.AssignPlan(ctx, coach.ID, athlete.ID, AssignmentRequest{PlanID: template.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.PlanSourceTemplate, a.PlanSource)
	assert.Equal(t, template.Name, a.PlanName)
	wantStart, wantEnd := DefaultRange(fixedNow, template.DurationWeeks)
	assert.Equal(t, wantStart, a.StartDate)
	assert.Equal(t, wantEnd, a.EndDate)

	list, err := svc.ListAssignments(ctx, coach.ID, athlete.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)
}

func TestAssignmentService_DateRange(t *testing.T) {
	svc, _, coach, athlete := newTestAssignmentService(t, 0)
	ctx := context.Background()
	template := domain.PlanTemplates()[1]

	start := time.Date(2026, time.April, 6, 0, 0, 0, 0, time.UTC)
	a, err := svc.AssignPlan(ctx, coach.ID, athlete.ID, AssignmentRequest{PlanID: template.ID, StartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, start.AddDate(0, 0, template.DurationWeeks*7), a.EndDate)

	before := start.AddDate(0, 0, -1)
	_, err = svc.AssignPlan(ctx, coach.ID, athlete.ID, AssignmentRequest{PlanID: template.ID, StartDate: &start, EndDate: &before})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.AssignPlan(ctx, coach.ID, athlete.ID, AssignmentRequest{PlanID: primitive.NewObjectID()})
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, err = svc.AssignPlan(ctx, primitive.NewObjectID(), athlete.ID, AssignmentRequest{PlanID: template.ID})
	assert.ErrorIs(t, err, ErrAthleteAccessDenied)
}

func TestAssignmentService_CancelledBeforeLatencyWritesNothing(t *testing.T) {
	svc, store, coach, athlete := newTestAssignmentService(t, time.Minute)
	template := domain.PlanTemplates()[0]

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	started := time.Now()
	_, err := svc.AssignPlan(ctx, coach.ID, athlete.ID, AssignmentRequest{PlanID: template.ID})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), 10*time.Second)

	stored, err := store.Assignments.GetByAthleteID(context.Background(), athlete.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestAssignmentService_WaitsForLatency(t *testing.T) {
	svc, _, coach, athlete := newTestAssignmentService(t, 30*time.Millisecond)
	template := domain.PlanTemplates()[0]

	started := time.Now()
	_, err := svc.AssignPlan(context.Background(), coach.ID, athlete.ID, AssignmentRequest{PlanID: template.ID})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(started), 30*time.Millisecond)
}
