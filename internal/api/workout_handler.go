package api

import (
	"alcyxob/coach-platform/internal/builder"
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler serves the workout editor.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// WorkoutRequest is a full workout as submitted by the editor.
// Rows without an id are new.
type WorkoutRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Description string                   `json:"description"`
	Type        string                   `json:"type"`
	Duration    string                   `json:"duration"`
	CoachNotes  string                   `json:"coachNotes"`
	Exercises   []domain.WorkoutExercise `json:"exercises"`
}

type AddExercisesRequest struct {
	ExerciseIDs []string `json:"exerciseIds" binding:"required,min=1"`
}

type MoveRowRequest struct {
	From *int `json:"from" binding:"required,min=0"`
	To   *int `json:"to" binding:"required,min=0"`
}

func (r WorkoutRequest) toInput() service.WorkoutInput {
	return service.WorkoutInput{
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		Duration:    r.Duration,
		CoachNotes:  r.CoachNotes,
		Exercises:   r.Exercises,
	}
}

// ListWorkouts godoc
// @Summary List workouts
// @Description Templates followed by the coach's own workouts.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Workout
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), coachID)
	if err != nil {
		respondWithServiceError(c, err, "list workouts")
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// GetWorkout godoc
// @Summary Get a workout
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 200 {object} domain.Workout
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	workout, err := h.workoutService.GetWorkout(c.Request.Context(), coachID, workoutID)
	if err != nil {
		respondWithServiceError(c, err, "load workout")
		return
	}
	c.JSON(http.StatusOK, workout)
}

// CreateWorkout godoc
// @Summary Create a custom workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body WorkoutRequest true "Workout"
// @Success 201 {object} domain.Workout
// @Failure 400 {object} gin.H "Invalid input"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	workout, err := h.workoutService.SaveWorkout(c.Request.Context(), coachID, primitive.NilObjectID, req.toInput())
	if err != nil {
		respondWithServiceError(c, err, "create workout")
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// UpdateWorkout godoc
// @Summary Replace a custom workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Param workout body WorkoutRequest true "Workout"
// @Success 200 {object} domain.Workout
// @Failure 403 {object} gin.H "Template or owned by another coach"
// @Router /workouts/{id} [put]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	workout, err := h.workoutService.SaveWorkout(c.Request.Context(), coachID, workoutID, req.toInput())
	if err != nil {
		respondWithServiceError(c, err, "update workout")
		return
	}
	c.JSON(http.StatusOK, workout)
}

// CopyWorkout godoc
// @Summary Copy a workout into the coach's library
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 201 {object} domain.Workout
// @Router /workouts/{id}/copy [post]
func (h *WorkoutHandler) CopyWorkout(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	workout, err := h.workoutService.CopyWorkout(c.Request.Context(), coachID, workoutID)
	if err != nil {
		respondWithServiceError(c, err, "copy workout")
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// AddExercises appends one row per exercise id, in request order.
func (h *WorkoutHandler) AddExercises(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req AddExercisesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	exerciseIDs, err := parseObjectIDs(req.ExerciseIDs)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	workout, err := h.workoutService.AddExercises(c.Request.Context(), coachID, workoutID, exerciseIDs)
	if err != nil {
		respondWithServiceError(c, err, "add exercises")
		return
	}
	c.JSON(http.StatusOK, workout)
}

// UpdateRow applies a partial prescription change to one row.
func (h *WorkoutHandler) UpdateRow(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	rowID, ok := pathObjectID(c, "rowId")
	if !ok {
		return
	}
	var patch builder.RowPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	row, err := h.workoutService.UpdateRow(c.Request.Context(), coachID, workoutID, rowID, patch)
	if err != nil {
		respondWithServiceError(c, err, "update row")
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *WorkoutHandler) RemoveRow(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	rowID, ok := pathObjectID(c, "rowId")
	if !ok {
		return
	}
	workout, err := h.workoutService.RemoveRow(c.Request.Context(), coachID, workoutID, rowID)
	if err != nil {
		respondWithServiceError(c, err, "remove row")
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *WorkoutHandler) MoveRow(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req MoveRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	workout, err := h.workoutService.MoveRow(c.Request.Context(), coachID, workoutID, *req.From, *req.To)
	if err != nil {
		respondWithServiceError(c, err, "move row")
		return
	}
	c.JSON(http.StatusOK, workout)
}
