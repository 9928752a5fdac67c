package api

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/service"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseRequest is the body of both create and update.
type ExerciseRequest struct {
	Name             string                   `json:"name" binding:"required"`
	Category         string                   `json:"category" binding:"required"`
	ExerciseType     string                   `json:"exerciseType" binding:"required"`
	PrimaryMuscle    string                   `json:"primaryMuscle" binding:"required"`
	SecondaryMuscles []string                 `json:"secondaryMuscles"`
	Defaults         *domain.ExerciseDefaults `json:"defaults"`
	AlternativeIDs   []string                 `json:"alternativeIds"`
	Description      string                   `json:"description"`
	VideoURL         string                   `json:"videoUrl" binding:"omitempty,url"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID               string                   `json:"id"`
	CoachID          string                   `json:"coachId,omitempty"`
	Source           domain.ExerciseSource    `json:"source"`
	ReadOnly         bool                     `json:"readOnly"`
	Name             string                   `json:"name"`
	Category         string                   `json:"category"`
	ExerciseType     string                   `json:"exerciseType"`
	PrimaryMuscle    string                   `json:"primaryMuscle"`
	SecondaryMuscles []string                 `json:"secondaryMuscles,omitempty"`
	Defaults         *domain.ExerciseDefaults `json:"defaults,omitempty"`
	AlternativeIDs   []string                 `json:"alternativeIds,omitempty"`
	Description      string                   `json:"description,omitempty"`
	VideoURL         string                   `json:"videoUrl,omitempty"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	resp := ExerciseResponse{
		ID:               ex.ID.Hex(),
		Source:           ex.Source,
		ReadOnly:         ex.IsReadOnly(),
		Name:             ex.Name,
		Category:         ex.Category,
		ExerciseType:     ex.ExerciseType,
		PrimaryMuscle:    ex.PrimaryMuscle,
		SecondaryMuscles: ex.SecondaryMuscles,
		Defaults:         ex.Defaults,
		AlternativeIDs:   hexIDs(ex.AlternativeIDs),
		Description:      ex.Description,
		VideoURL:         ex.VideoURL,
		CreatedAt:        ex.CreatedAt,
		UpdatedAt:        ex.UpdatedAt,
	}
	if !ex.CoachID.IsZero() {
		resp.CoachID = ex.CoachID.Hex()
	}
	return resp
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

func (r ExerciseRequest) toInput() (service.ExerciseInput, error) {
	alternatives, err := parseObjectIDs(r.AlternativeIDs)
	if err != nil {
		return service.ExerciseInput{}, err
	}
	return service.ExerciseInput{
		Name:             r.Name,
		Category:         r.Category,
		ExerciseType:     r.ExerciseType,
		PrimaryMuscle:    r.PrimaryMuscle,
		SecondaryMuscles: r.SecondaryMuscles,
		Defaults:         r.Defaults,
		AlternativeIDs:   alternatives,
		Description:      r.Description,
		VideoURL:         r.VideoURL,
	}, nil
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Create a new exercise
// @Description Creates a custom exercise for the authenticated coach.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden (not a coach)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	in, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), coachID, in)
	if err != nil {
		respondWithServiceError(c, err, "create exercise")
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ListExercises godoc
// @Summary List exercises
// @Description Library exercises followed by the coach's own.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ExerciseResponse "List of exercises"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), coachID)
	if err != nil {
		respondWithServiceError(c, err, "list exercises")
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExercise godoc
// @Summary Get an exercise
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 403 {object} gin.H "Owned by another coach"
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), coachID, exerciseID)
	if err != nil {
		respondWithServiceError(c, err, "load exercise")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// UpdateExercise godoc
// @Summary Update a custom exercise
// @Description Library exercises are read-only.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 200 {object} ExerciseResponse
// @Failure 403 {object} gin.H "Read-only or owned by another coach"
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), coachID, exerciseID, in)
	if err != nil {
		respondWithServiceError(c, err, "update exercise")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

func hexIDs(ids []primitive.ObjectID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", h)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
