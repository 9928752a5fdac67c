package api

import (
	"alcyxob/coach-platform/internal/builder"
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/service"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler serves saved plans and the plan wizard.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// DraftResponse is the wizard state as shown to the client.
type DraftResponse struct {
	ID            string            `json:"id"`
	Step          string            `json:"step"`
	Info          builder.BasicInfo `json:"info"`
	Weeks         []domain.Week     `json:"weeks"`
	TotalWorkouts int               `json:"totalWorkouts"`
	StartedAt     time.Time         `json:"startedAt"`
}

type AssignDayRequest struct {
	WorkoutID string `json:"workoutId" binding:"required"`
}

// MapDraftToResponse converts wizard state into its DTO.
func MapDraftToResponse(w *builder.PlanWizard) DraftResponse {
	return DraftResponse{
		ID:            w.ID.Hex(),
		Step:          w.Step.String(),
		Info:          w.Info,
		Weeks:         w.Weeks,
		TotalWorkouts: domain.CountWorkouts(w.Weeks),
		StartedAt:     w.StartedAt,
	}
}

// ListPlans godoc
// @Summary List plans
// @Description Templates followed by the coach's saved plans.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Plan
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	plans, err := h.planService.ListPlans(c.Request.Context(), coachID)
	if err != nil {
		respondWithServiceError(c, err, "list plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlan godoc
// @Summary Get a plan
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} domain.Plan
// @Router /plans/{id} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	plan, err := h.planService.GetPlan(c.Request.Context(), coachID, planID)
	if err != nil {
		respondWithServiceError(c, err, "load plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// StartDraft godoc
// @Summary Start the plan wizard
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 201 {object} DraftResponse
// @Router /plans/drafts [post]
func (h *PlanHandler) StartDraft(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	draft, err := h.planService.StartDraft(c.Request.Context(), coachID)
	if err != nil {
		respondWithServiceError(c, err, "start plan")
		return
	}
	c.JSON(http.StatusCreated, MapDraftToResponse(draft))
}

func (h *PlanHandler) GetDraft(c *gin.Context) {
	h.draftAction(c, "load plan draft", func(coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
		return h.planService.GetDraft(c.Request.Context(), coachID, draftID)
	})
}

// SetBasicInfo godoc
// @Summary Fill the first wizard page
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Param info body builder.BasicInfo true "Basic info"
// @Success 200 {object} DraftResponse
// @Failure 409 {object} gin.H "Wizard is past the first page"
// @Router /plans/drafts/{id}/basic-info [put]
func (h *PlanHandler) SetBasicInfo(c *gin.Context) {
	var info builder.BasicInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.draftAction(c, "update plan draft", func(coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
		return h.planService.SetBasicInfo(c.Request.Context(), coachID, draftID, info)
	})
}

func (h *PlanHandler) NextStep(c *gin.Context) {
	h.draftAction(c, "advance plan draft", func(coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
		return h.planService.NextStep(c.Request.Context(), coachID, draftID)
	})
}

func (h *PlanHandler) PreviousStep(c *gin.Context) {
	h.draftAction(c, "go back in plan draft", func(coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
		return h.planService.PreviousStep(c.Request.Context(), coachID, draftID)
	})
}

// AssignWorkout godoc
// @Summary Put a workout on a day
// @Description Week and day are 1-based; day 1 is Monday.
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Param week path int true "Week number"
// @Param day path int true "Day number"
// @Param body body AssignDayRequest true "Workout"
// @Success 200 {object} DraftResponse
// @Router /plans/drafts/{id}/weeks/{week}/days/{day} [put]
func (h *PlanHandler) AssignWorkout(c *gin.Context) {
	week, day, ok := pathSlot(c)
	if !ok {
		return
	}
	var req AssignDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(req.WorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workoutId format.")
		return
	}
	h.draftAction(c, "assign workout", func(coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
		return h.planService.AssignWorkout(c.Request.Context(), coachID, draftID, week, day, workoutID)
	})
}

func (h *PlanHandler) RemoveWorkout(c *gin.Context) {
	week, day, ok := pathSlot(c)
	if !ok {
		return
	}
	h.draftAction(c, "remove workout", func(coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
		return h.planService.RemoveWorkout(c.Request.Context(), coachID, draftID, week, day)
	})
}

func (h *PlanHandler) SetRestDay(c *gin.Context) {
	week, day, ok := pathSlot(c)
	if !ok {
		return
	}
	h.draftAction(c, "set rest day", func(coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
		return h.planService.SetRestDay(c.Request.Context(), coachID, draftID, week, day)
	})
}

func (h *PlanHandler) AddWeek(c *gin.Context) {
	h.draftAction(c, "add week", func(coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
		return h.planService.AddWeek(c.Request.Context(), coachID, draftID)
	})
}

func (h *PlanHandler) CloneWeek(c *gin.Context) {
	week, ok := pathIndex(c, "week")
	if !ok {
		return
	}
	h.draftAction(c, "clone week", func(coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
		return h.planService.CloneWeek(c.Request.Context(), coachID, draftID, week)
	})
}

func (h *PlanHandler) DeleteWeek(c *gin.Context) {
	week, ok := pathIndex(c, "week")
	if !ok {
		return
	}
	h.draftAction(c, "delete week", func(coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
		return h.planService.DeleteWeek(c.Request.Context(), coachID, draftID, week)
	})
}

// SaveDraft godoc
// @Summary Save the wizard as a plan
// @Description Allowed on the review page only. The draft is discarded.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Success 201 {object} domain.Plan
// @Failure 409 {object} gin.H "Wizard is not on the review page"
// @Router /plans/drafts/{id}/save [post]
func (h *PlanHandler) SaveDraft(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	draftID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	plan, err := h.planService.SaveDraft(c.Request.Context(), coachID, draftID)
	if err != nil {
		respondWithServiceError(c, err, "save plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// draftAction resolves the caller and draft id, runs fn and writes the draft.
func (h *PlanHandler) draftAction(c *gin.Context, what string, fn func(coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error)) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	draftID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	draft, err := fn(coachID, draftID)
	if err != nil {
		respondWithServiceError(c, err, what)
		return
	}
	c.JSON(http.StatusOK, MapDraftToResponse(draft))
}

// pathIndex reads a 1-based path number and returns it 0-based.
func pathIndex(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s number.", name))
		return 0, false
	}
	return n - 1, true
}

func pathSlot(c *gin.Context) (week, day int, ok bool) {
	if week, ok = pathIndex(c, "week"); !ok {
		return 0, 0, false
	}
	if day, ok = pathIndex(c, "day"); !ok {
		return 0, 0, false
	}
	return week, day, true
}
