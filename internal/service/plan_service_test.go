package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"alcyxob/coach-platform/internal/builder"
	"alcyxob/coach-platform/internal/config"
	"alcyxob/coach-platform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestPlanService(t *testing.T) (*planService, *domain.User) {
	t.Helper()
	store := newTestStore()
	ps := NewPlanService(store.Plans, store.Workouts, config.MinDraftCacheSizeMB, time.Hour).(*planService)
	ps.now = fixedClock
	return ps, createUser(t, store, domain.RoleCoach)
}

func TestPlanService_WizardToSavedPlan(t *testing.T) {
	ps, coach := newTestPlanService(t)
	ctx := context.Background()
	upperBody := domain.WorkoutTemplates()[0]

	draft, err := ps.StartDraft(ctx, coach.ID)
	require.NoError(t, err)
	assert.Equal(t, builder.StepBasicInfo, draft.Step)

	_, err = ps.NextStep(ctx, coach.ID, draft.ID)
	assert.ErrorIs(t, err, builder.ErrMissingRequiredFields)

	_, err = ps.SetBasicInfo(ctx, coach.ID, draft.ID, builder.BasicInfo{Name: "Test Plan", Goal: "Strength", DurationWeeks: 1})
	require.NoError(t, err)
	draft, err = ps.NextStep(ctx, coach.ID, draft.ID)
	require.NoError(t, err)
	require.Equal(t, builder.StepStructure, draft.Step)

	for day := 0; day < domain.DaysPerWeek; day++ {
		_, err = ps.SetRestDay(ctx, coach.ID, draft.ID, 0, day)
		require.NoError(t, err)
	}
	draft, err = ps.AssignWorkout(ctx, coach.ID, draft.ID, 0, 0, upperBody.ID)
	require.NoError(t, err)
	monday := draft.Weeks[0].Days[0]
	assert.Equal(t, "Upper Body Strength", monday.WorkoutName)
	assert.False(t, monday.IsRest)

	draft, err = ps.CloneWeek(ctx, coach.ID, draft.ID, 0)
	require.NoError(t, err)
	require.Len(t, draft.Weeks, 2)
	assert.Equal(t, 2, draft.Weeks[1].WeekNumber)
	assert.Equal(t, "Upper Body Strength", draft.Weeks[1].Days[0].WorkoutName)
	assert.NotEqual(t, draft.Weeks[0].Days[0].ID, draft.Weeks[1].Days[0].ID)

	_, err = ps.SaveDraft(ctx, coach.ID, draft.ID)
	assert.ErrorIs(t, err, builder.ErrInvalidStep)

	_, err = ps.NextStep(ctx, coach.ID, draft.ID)
	require.NoError(t, err)
	plan, err := ps.SaveDraft(ctx, coach.ID, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanSourceCustom, plan.Source)
	assert.Equal(t, 2, plan.TotalWorkouts)
	assert.Equal(t, 2, plan.DurationWeeks)
	assert.Equal(t, fixedNow, plan.CreatedAt)

	// the draft is gone once saved
	_, err = ps.GetDraft(ctx, coach.ID, draft.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	plans, err := ps.ListPlans(ctx, coach.ID)
	require.NoError(t, err)
	templates := domain.PlanTemplates()
	require.Len(t, plans, len(templates)+1)
	assert.Equal(t, domain.PlanSourceTemplate, plans[0].Source)
	assert.Equal(t, plan.ID, plans[len(plans)-1].ID)

	got, err := ps.GetPlan(ctx, coach.ID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.Name, got.Name)
}

func TestPlanService_DraftIsolation(t *testing.T) {
	ps, coach := newTestPlanService(t)
	ctx := context.Background()

	draft, err := ps.StartDraft(ctx, coach.ID)
	require.NoError(t, err)

	_, err = ps.GetDraft(ctx, primitive.NewObjectID(), draft.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	_, err = ps.GetDraft(ctx, coach.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestPlanService_StructureGuards(t *testing.T) {
	ps, coach := newTestPlanService(t)
	ctx := context.Background()

	draft, err := ps.StartDraft(ctx, coach.ID)
	require.NoError(t, err)

	_, err = ps.AddWeek(ctx, coach.ID, draft.ID)
	assert.ErrorIs(t, err, builder.ErrInvalidStep)

	_, err = ps.SetBasicInfo(ctx, coach.ID, draft.ID, builder.BasicInfo{Name: "P", Goal: "G"})
	require.NoError(t, err)
	_, err = ps.NextStep(ctx, coach.ID, draft.ID)
	require.NoError(t, err)

	// deleting the only week leaves the draft unchanged
	_, err = ps.DeleteWeek(ctx, coach.ID, draft.ID, 0)
	assert.ErrorIs(t, err, builder.ErrLastWeek)
	stored, err := ps.GetDraft(ctx, coach.ID, draft.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Weeks, 1)

	_, err = ps.AssignWorkout(ctx, coach.ID, draft.ID, 0, 0, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	_, err = ps.SetRestDay(ctx, coach.ID, draft.ID, 3, 0)
	assert.ErrorIs(t, err, builder.ErrSlotOutOfRange)

	draft, err = ps.PreviousStep(ctx, coach.ID, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, builder.StepBasicInfo, draft.Step)
}

func startStructureDraft(t *testing.T, ps *planService, coachID primitive.ObjectID) *builder.PlanWizard {
	t.Helper()
	ctx := context.Background()
	draft, err := ps.StartDraft(ctx, coachID)
	require.NoError(t, err)
	_, err = ps.SetBasicInfo(ctx, coachID, draft.ID, builder.BasicInfo{Name: "Year Plan", Goal: "Strength"})
	require.NoError(t, err)
	draft, err = ps.NextStep(ctx, coachID, draft.ID)
	require.NoError(t, err)
	return draft
}

func TestPlanService_FullYearScheduledPlan(t *testing.T) {
	ps, coach := newTestPlanService(t)
	ctx := context.Background()
	templates := domain.WorkoutTemplates()
	draft := startStructureDraft(t, ps, coach.ID)

	var err error
	for day := 0; day < domain.DaysPerWeek; day++ {
		_, err = ps.AssignWorkout(ctx, coach.ID, draft.ID, 0, day, templates[day%len(templates)].ID)
		require.NoError(t, err)
	}
	for len(draft.Weeks) < builder.MaxWeeks {
		draft, err = ps.CloneWeek(ctx, coach.ID, draft.ID, len(draft.Weeks)-1)
		require.NoError(t, err, "cloning into week %d", len(draft.Weeks)+1)
	}
	require.Len(t, draft.Weeks, builder.MaxWeeks)

	_, err = ps.CloneWeek(ctx, coach.ID, draft.ID, 0)
	assert.ErrorIs(t, err, builder.ErrTooManyWeeks)
	_, err = ps.AddWeek(ctx, coach.ID, draft.ID)
	assert.ErrorIs(t, err, builder.ErrTooManyWeeks)

	// edits on the last week still fit the cache
	draft, err = ps.SetRestDay(ctx, coach.ID, draft.ID, builder.MaxWeeks-1, 6)
	require.NoError(t, err)
	draft, err = ps.AssignWorkout(ctx, coach.ID, draft.ID, builder.MaxWeeks-1, 6, templates[0].ID)
	require.NoError(t, err)

	_, err = ps.NextStep(ctx, coach.ID, draft.ID)
	require.NoError(t, err)
	plan, err := ps.SaveDraft(ctx, coach.ID, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, builder.MaxWeeks, plan.DurationWeeks)
	assert.Equal(t, builder.MaxWeeks*domain.DaysPerWeek, plan.TotalWorkouts)
	assert.Equal(t, "w52-d7", plan.Weeks[builder.MaxWeeks-1].Days[6].ID)
}

func TestPlanService_OversizedDraftIsRejected(t *testing.T) {
	ps, coach := newTestPlanService(t)
	ctx := context.Background()
	draft := startStructureDraft(t, ps, coach.ID)

	huge := &domain.Workout{
		CoachID: coach.ID,
		Source:  domain.WorkoutSourceCustom,
		Name:    strings.Repeat("x", config.MinDraftCacheSizeMB*1024),
	}
	id, err := ps.workoutRepo.Create(ctx, huge)
	require.NoError(t, err)

	_, err = ps.AssignWorkout(ctx, coach.ID, draft.ID, 0, 0, id)
	assert.ErrorIs(t, err, ErrDraftTooLarge)

	// the stored draft is unchanged
	stored, err := ps.GetDraft(ctx, coach.ID, draft.ID)
	require.NoError(t, err)
	assert.False(t, stored.Weeks[0].Days[0].HasWorkout())
}

func TestNewPlanService_RaisesSmallCache(t *testing.T) {
	store := newTestStore()
	ps := NewPlanService(store.Plans, store.Workouts, 1, time.Hour).(*planService)
	// a 1 MB cache would cap entries at about 1 KB
	assert.NoError(t, ps.drafts.Set([]byte("large"), make([]byte, 100*1024), 0))
}
