package api

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/service"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AthleteHandler serves the coach's roster and plan assignments.
type AthleteHandler struct {
	athleteService    service.AthleteService
	assignmentService service.AssignmentService
}

func NewAthleteHandler(athleteService service.AthleteService, assignmentService service.AssignmentService) *AthleteHandler {
	return &AthleteHandler{
		athleteService:    athleteService,
		assignmentService: assignmentService,
	}
}

// AddAthletesRequest carries the raw email field of the invite form.
// Addresses may be separated by commas or newlines.
type AddAthletesRequest struct {
	Emails   string                 `json:"emails" binding:"required"`
	Category domain.AthleteCategory `json:"category"`
}

type AssignPlanRequest struct {
	PlanID    string     `json:"planId" binding:"required"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// AddAthletes godoc
// @Summary Invite athletes in bulk
// @Description Creates one pending athlete per valid address. Invalid entries are reported back.
// @Tags Athletes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddAthletesRequest true "Email list"
// @Success 201 {object} service.BulkAddResult
// @Failure 400 {object} gin.H "No valid address"
// @Router /athletes [post]
func (h *AthleteHandler) AddAthletes(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req AddAthletesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	result, err := h.athleteService.AddAthletes(c.Request.Context(), coachID, req.Emails, req.Category)
	if err != nil {
		respondWithServiceError(c, err, "add athletes")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ListAthletes godoc
// @Summary List the coach's athletes
// @Tags Athletes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Athlete
// @Router /athletes [get]
func (h *AthleteHandler) ListAthletes(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	athletes, err := h.athleteService.ListAthletes(c.Request.Context(), coachID)
	if err != nil {
		respondWithServiceError(c, err, "list athletes")
		return
	}
	c.JSON(http.StatusOK, athletes)
}

func (h *AthleteHandler) GetAthlete(c *gin.Context) {
	h.athleteAction(c, "load athlete", h.athleteService.GetAthlete)
}

func (h *AthleteHandler) FreezeAthlete(c *gin.Context) {
	h.athleteAction(c, "freeze athlete", h.athleteService.FreezeAthlete)
}

func (h *AthleteHandler) UnfreezeAthlete(c *gin.Context) {
	h.athleteAction(c, "unfreeze athlete", h.athleteService.UnfreezeAthlete)
}

func (h *AthleteHandler) DeleteAthlete(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	athleteID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.athleteService.DeleteAthlete(c.Request.Context(), coachID, athleteID); err != nil {
		respondWithServiceError(c, err, "delete athlete")
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignPlan godoc
// @Summary Assign a plan to an athlete
// @Description Dates default to today and today plus the plan length.
// @Tags Athletes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Athlete ID"
// @Param body body AssignPlanRequest true "Plan and dates"
// @Success 201 {object} domain.PlanAssignment
// @Failure 404 {object} gin.H "Athlete or plan not found"
// @Router /athletes/{id}/assignments [post]
func (h *AthleteHandler) AssignPlan(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	athleteID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid planId format.")
		return
	}

	assignment, err := h.assignmentService.AssignPlan(c.Request.Context(), coachID, athleteID, service.AssignmentRequest{
		PlanID:    planID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		respondWithServiceError(c, err, "assign plan")
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (h *AthleteHandler) ListAssignments(c *gin.Context) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	athleteID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	assignments, err := h.assignmentService.ListAssignments(c.Request.Context(), coachID, athleteID)
	if err != nil {
		respondWithServiceError(c, err, "list assignments")
		return
	}
	c.JSON(http.StatusOK, assignments)
}

type athleteOp func(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Athlete, error)

func (h *AthleteHandler) athleteAction(c *gin.Context, what string, op athleteOp) {
	coachID, ok := mustUserID(c)
	if !ok {
		return
	}
	athleteID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	athlete, err := op(c.Request.Context(), coachID, athleteID)
	if err != nil {
		respondWithServiceError(c, err, what)
		return
	}
	c.JSON(http.StatusOK, athlete)
}
