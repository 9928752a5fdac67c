package service

import (
	"context"
	"testing"

	"alcyxob/coach-platform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestAthleteService(t *testing.T) (AthleteService, *domain.User) {
	t.Helper()
	store := newTestStore()
	as := NewAthleteService(store.Athletes).(*athleteService)
	as.now = fixedClock
	return as, createUser(t, store, domain.RoleCoach)
}

func TestAthleteService_BulkAdd(t *testing.T) {
	as, coach := newTestAthleteService(t)
	ctx := context.Background()

	result, err := as.AddAthletes(ctx, coach.ID, "a@x.com, bad-email, b@x.com", domain.CategoryHybrid)
	require.NoError(t, err)
	require.Len(t, result.Created, 2)
	assert.Equal(t, []string{"bad-email"}, result.Rejected)

	for i, email := range []string{"a@x.com", "b@x.com"} {
		a := result.Created[i]
		assert.Equal(t, email, a.Email)
		assert.Equal(t, domain.AthletePending, a.Status)
		assert.Equal(t, domain.CategoryHybrid, a.Category)
		assert.Equal(t, fixedNow, a.JoinedDate)
	}

	roster, err := as.ListAthletes(ctx, coach.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 2)
}

func TestAthleteService_BulkAddTokenizing(t *testing.T) {
	as, coach := newTestAthleteService(t)
	ctx := context.Background()

	result, err := as.AddAthletes(ctx, coach.ID, "c@x.com\nd@x.com,\r\n C@X.com ,,", "")
	require.NoError(t, err)
	require.Len(t, result.Created, 2)
	assert.Equal(t, "c@x.com", result.Created[0].Email)
	assert.Equal(t, "d@x.com", result.Created[1].Email)
	assert.Equal(t, domain.CategoryOnline, result.Created[0].Category)

	mixed, err := as.AddAthletes(ctx, coach.ID, "Jane.Doe@Example.com, jane.doe@example.COM", "")
	require.NoError(t, err)
	require.Len(t, mixed.Created, 1)
	assert.Equal(t, "Jane.Doe@Example.com", mixed.Created[0].Email)

	_, err = as.AddAthletes(ctx, coach.ID, "nope, still nope", domain.CategoryOnline)
	assert.ErrorIs(t, err, ErrNoValidEmails)

	_, err = as.AddAthletes(ctx, coach.ID, "e@x.com", domain.AthleteCategory("Remote"))
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestAthleteService_FreezeUnfreeze(t *testing.T) {
	as, coach := newTestAthleteService(t)
	ctx := context.Background()

	result, err := as.AddAthletes(ctx, coach.ID, "pending@x.com", domain.CategoryOnline)
	require.NoError(t, err)
	id := result.Created[0].ID

	_, err = as.UnfreezeAthlete(ctx, coach.ID, id)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	frozen, err := as.FreezeAthlete(ctx, coach.ID, id)
	require.NoError(t, err)
	assert.Equal(t, domain.AthleteFrozen, frozen.Status)

	_, err = as.FreezeAthlete(ctx, coach.ID, id)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// unfreezing never restores Pending
	thawed, err := as.UnfreezeAthlete(ctx, coach.ID, id)
	require.NoError(t, err)
	assert.Equal(t, domain.AthleteConnected, thawed.Status)

	stored, err := as.GetAthlete(ctx, coach.ID, id)
	require.NoError(t, err)
	assert.Equal(t, domain.AthleteConnected, stored.Status)
}

func TestAthleteService_Delete(t *testing.T) {
	as, coach := newTestAthleteService(t)
	ctx := context.Background()

	result, err := as.AddAthletes(ctx, coach.ID, "gone@x.com, stays@x.com", domain.CategoryInPerson)
	require.NoError(t, err)
	gone := result.Created[0].ID

	assert.ErrorIs(t, as.DeleteAthlete(ctx, primitive.NewObjectID(), gone), ErrAthleteAccessDenied)

	require.NoError(t, as.DeleteAthlete(ctx, coach.ID, gone))
	assert.ErrorIs(t, as.DeleteAthlete(ctx, coach.ID, gone), ErrAthleteNotFound)

	roster, err := as.ListAthletes(ctx, coach.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "stays@x.com", roster[0].Email)
}
