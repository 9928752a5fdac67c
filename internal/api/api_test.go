package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alcyxob/coach-platform/internal/builder"
	"alcyxob/coach-platform/internal/config"
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository/memory"
	"alcyxob/coach-platform/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct-horse-battery"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	router := gin.New()
	SetupRoutes(router, Services{
		Auth:       service.NewAuthService(store.Users, "test-secret", time.Hour),
		Exercises:  service.NewExerciseService(store.Exercises),
		Workouts:   service.NewWorkoutService(store.Workouts, store.Exercises),
		Plans:      service.NewPlanService(store.Plans, store.Workouts, config.MinDraftCacheSizeMB, time.Hour),
		Athletes:   service.NewAthleteService(store.Athletes),
		Assignment: service.NewAssignmentService(store.Assignments, store.Athletes, store.Plans, 0),
		Chat:       service.NewChatService(store.Chat, store.Users),
		Feed:       service.NewFeedService(store.Posts, store.Users, nil),
	})
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// signUp registers a user with the given role and returns a token for it.
func signUp(t *testing.T, router *gin.Engine, role domain.Role) (string, UserResponse) {
	t.Helper()
	email := gofakeit.Email()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: testPassword,
		Role:     role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: email, Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[LoginResponse](t, rec)
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User
}

func TestPing(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	router := newTestRouter(t)
	token, user := signUp(t, router, domain.RoleCoach)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[UserResponse](t, rec)
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, domain.RoleCoach, me.Role)

	t.Run("duplicate email", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
			Name: "Again", Email: user.Email, Password: testPassword, Role: domain.RoleAthlete,
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"name": "X", "email": gofakeit.Email(), "password": testPassword, "role": "trainer",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: user.Email, Password: "not-the-password"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing or bad token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doJSON(t, router, http.MethodGet, "/api/v1/me", "", nil).Code)
		assert.Equal(t, http.StatusUnauthorized, doJSON(t, router, http.MethodGet, "/api/v1/me", "garbage", nil).Code)
	})
}

func TestCoachRoutesRejectAthletes(t *testing.T) {
	router := newTestRouter(t)
	athleteToken, _ := signUp(t, router, domain.RoleAthlete)

	for _, path := range []string{"/api/v1/exercises", "/api/v1/workouts", "/api/v1/plans", "/api/v1/athletes"} {
		rec := doJSON(t, router, http.MethodGet, path, athleteToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}

	// shared routes stay open
	rec := doJSON(t, router, http.MethodGet, "/api/v1/feed", athleteToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExerciseRoutes(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signUp(t, router, domain.RoleCoach)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/exercises", token, ExerciseRequest{
		Name:          "Sled Push",
		Category:      "Conditioning",
		ExerciseType:  "Compound",
		PrimaryMuscle: "Quads",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[ExerciseResponse](t, rec)
	assert.Equal(t, domain.ExerciseSourceCustom, created.Source)
	assert.False(t, created.ReadOnly)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/exercises", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]ExerciseResponse](t, rec)
	assert.Len(t, all, len(domain.LibraryExercises())+1)
	assert.Equal(t, created.ID, all[len(all)-1].ID)

	library := domain.LibraryExercises()[0]
	rec = doJSON(t, router, http.MethodPut, "/api/v1/exercises/"+library.ID.Hex(), token, ExerciseRequest{
		Name: "Renamed", Category: "Strength", ExerciseType: "Compound", PrimaryMuscle: "Quads",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/exercises/not-an-id", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkoutRoutes(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signUp(t, router, domain.RoleCoach)
	template := domain.WorkoutTemplates()[0]

	rec := doJSON(t, router, http.MethodPost, "/api/v1/workouts/"+template.ID.Hex()+"/copy", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	copied := decode[domain.Workout](t, rec)
	require.Len(t, copied.Exercises, len(template.Exercises))
	base := "/api/v1/workouts/" + copied.ID.Hex()

	rec = doJSON(t, router, http.MethodPost, base+"/exercises/move", token, MoveRowRequest{From: intPtr(0), To: intPtr(1)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	moved := decode[domain.Workout](t, rec)
	assert.Equal(t, copied.Exercises[0].ID, moved.Exercises[1].ID)

	rec = doJSON(t, router, http.MethodPatch, base+"/exercises/"+moved.Exercises[0].ID.Hex(), token, map[string]any{"sets": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, base+"/exercises/"+moved.Exercises[0].ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[domain.Workout](t, rec).Exercises, len(template.Exercises)-1)

	// templates are read-only
	rec = doJSON(t, router, http.MethodPut, "/api/v1/workouts/"+template.ID.Hex(), token, WorkoutRequest{Name: "Mine now"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPlanWizardFlow(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signUp(t, router, domain.RoleCoach)
	workout := domain.WorkoutTemplates()[0]

	rec := doJSON(t, router, http.MethodPost, "/api/v1/plans/drafts", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	draft := decode[DraftResponse](t, rec)
	assert.Equal(t, builder.StepBasicInfo.String(), draft.Step)
	base := "/api/v1/plans/drafts/" + draft.ID

	// structure edits are refused on the first page
	rec = doJSON(t, router, http.MethodPost, base+"/weeks", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/next", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "name and goal are required")

	rec = doJSON(t, router, http.MethodPut, base+"/basic-info", token, builder.BasicInfo{
		Name: "Off-season", Goal: "Strength", DurationWeeks: 2, WorkoutsPerWeek: 3,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, base+"/next", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, builder.StepStructure.String(), decode[DraftResponse](t, rec).Step)

	rec = doJSON(t, router, http.MethodPut, base+"/weeks/1/days/1", token, AssignDayRequest{WorkoutID: workout.ID.Hex()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	draft = decode[DraftResponse](t, rec)
	require.Len(t, draft.Weeks, 1)
	assert.Equal(t, workout.Name, draft.Weeks[0].Days[0].WorkoutName)
	assert.Equal(t, 1, draft.TotalWorkouts)

	rec = doJSON(t, router, http.MethodPost, base+"/weeks/1/clone", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	draft = decode[DraftResponse](t, rec)
	require.Len(t, draft.Weeks, 2)
	assert.Equal(t, 2, draft.TotalWorkouts)

	rec = doJSON(t, router, http.MethodPost, base+"/weeks/2/days/8/rest", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/save", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "saving is only allowed on review")

	rec = doJSON(t, router, http.MethodPost, base+"/next", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/save", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	plan := decode[domain.Plan](t, rec)
	assert.Equal(t, domain.PlanSourceCustom, plan.Source)
	assert.Equal(t, 2, plan.TotalWorkouts)

	rec = doJSON(t, router, http.MethodGet, base, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "saved drafts are discarded")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/plans/"+plan.ID.Hex(), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/plans", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Plan](t, rec), len(domain.PlanTemplates())+1)

	t.Run("another coach cannot see the plan", func(t *testing.T) {
		other, _ := signUp(t, router, domain.RoleCoach)
		rec := doJSON(t, router, http.MethodGet, "/api/v1/plans/"+plan.ID.Hex(), other, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestPlanWizardWeekLimit(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signUp(t, router, domain.RoleCoach)
	templates := domain.WorkoutTemplates()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/plans/drafts", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	base := "/api/v1/plans/drafts/" + decode[DraftResponse](t, rec).ID

	rec = doJSON(t, router, http.MethodPut, base+"/basic-info", token, builder.BasicInfo{Name: "Year", Goal: "Strength"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = doJSON(t, router, http.MethodPost, base+"/next", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for day := 1; day <= domain.DaysPerWeek; day++ {
		workout := templates[(day-1)%len(templates)]
		rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("%s/weeks/1/days/%d", base, day), token, AssignDayRequest{WorkoutID: workout.ID.Hex()})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	for week := 1; week < builder.MaxWeeks; week++ {
		rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("%s/weeks/%d/clone", base, week), token, nil)
		require.Equal(t, http.StatusOK, rec.Code, "cloning week %d: %s", week, rec.Body.String())
	}
	draft := decode[DraftResponse](t, rec)
	require.Len(t, draft.Weeks, builder.MaxWeeks)
	assert.Equal(t, builder.MaxWeeks*domain.DaysPerWeek, draft.TotalWorkouts)

	rec = doJSON(t, router, http.MethodPost, base+"/weeks/1/clone", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doJSON(t, router, http.MethodPost, base+"/weeks", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/next", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPost, base+"/save", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, builder.MaxWeeks, decode[domain.Plan](t, rec).DurationWeeks)
}

func TestAthleteRoutes(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signUp(t, router, domain.RoleCoach)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/athletes", token, AddAthletesRequest{
		Emails:   "ann@example.com, not-an-email\nbob@example.com",
		Category: domain.CategoryHybrid,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	result := decode[service.BulkAddResult](t, rec)
	require.Len(t, result.Created, 2)
	assert.Equal(t, []string{"not-an-email"}, result.Rejected)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/athletes", token, AddAthletesRequest{Emails: "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	athlete := result.Created[0]
	base := "/api/v1/athletes/" + athlete.ID.Hex()

	rec = doJSON(t, router, http.MethodPost, base+"/freeze", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.AthleteFrozen, decode[domain.Athlete](t, rec).Status)

	rec = doJSON(t, router, http.MethodPost, base+"/freeze", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/unfreeze", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.AthleteConnected, decode[domain.Athlete](t, rec).Status)

	plan := domain.PlanTemplates()[0]
	rec = doJSON(t, router, http.MethodPost, base+"/assignments", token, AssignPlanRequest{PlanID: plan.ID.Hex()})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assignment := decode[domain.PlanAssignment](t, rec)
	assert.Equal(t, plan.Name, assignment.PlanName)
	assert.Equal(t, plan.DurationWeeks*domain.DaysPerWeek, int(assignment.EndDate.Sub(assignment.StartDate).Hours()/24))

	rec = doJSON(t, router, http.MethodGet, base+"/assignments", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.PlanAssignment](t, rec), 1)

	rec = doJSON(t, router, http.MethodDelete, base, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, router, http.MethodGet, base, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatRoutes(t *testing.T) {
	router := newTestRouter(t)
	coachToken, coach := signUp(t, router, domain.RoleCoach)
	athleteToken, athlete := signUp(t, router, domain.RoleAthlete)
	outsiderToken, _ := signUp(t, router, domain.RoleAthlete)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/conversations", coachToken, OpenConversationRequest{PeerID: athlete.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	conv := decode[domain.Conversation](t, rec)

	// the athlete opening the same pair gets the same conversation
	rec = doJSON(t, router, http.MethodPost, "/api/v1/conversations", athleteToken, OpenConversationRequest{PeerID: coach.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, conv.ID, decode[domain.Conversation](t, rec).ID)

	path := fmt.Sprintf("/api/v1/conversations/%s/messages", conv.ID.Hex())
	rec = doJSON(t, router, http.MethodPost, path, coachToken, SendMessageRequest{Text: "How did the squats feel?"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, path, athleteToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	msgs := decode[[]domain.Message](t, rec)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Read)

	rec = doJSON(t, router, http.MethodGet, path, outsiderToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestFeedRoutes(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signUp(t, router, domain.RoleAthlete)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/feed", token, CreatePostRequest{Content: "New deadlift PR"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decode[service.PostView](t, rec)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/feed/"+post.ID.Hex()+"/like", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	liked := decode[service.PostView](t, rec)
	assert.Equal(t, 1, liked.LikeCount)
	assert.True(t, liked.LikedByMe)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/feed?limit=0", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	other, _ := signUp(t, router, domain.RoleCoach)
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/feed/"+post.ID.Hex(), other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/feed/"+post.ID.Hex(), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// no object storage configured
	rec = doJSON(t, router, http.MethodPost, "/api/v1/feed/upload-url", token, UploadURLRequest{ContentType: "image/png"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: name is required", service.ErrValidationFailed), http.StatusBadRequest},
		{builder.ErrSlotOutOfRange, http.StatusBadRequest},
		{builder.ErrTooManyWeeks, http.StatusBadRequest},
		{fmt.Errorf("cache draft x: %w", service.ErrDraftTooLarge), http.StatusBadRequest},
		{service.ErrAuthenticationFailed, http.StatusUnauthorized},
		{service.ErrWorkoutReadOnly, http.StatusForbidden},
		{service.ErrDraftNotFound, http.StatusNotFound},
		{builder.ErrLastWeek, http.StatusConflict},
		{service.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{context.Canceled, http.StatusRequestTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), tt.err.Error())
	}
}

func intPtr(n int) *int {
	return &n
}
