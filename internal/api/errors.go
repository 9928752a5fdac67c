package api

import (
	"alcyxob/coach-platform/internal/builder"
	"alcyxob/coach-platform/internal/service"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var errorStatuses = []struct {
	status int
	errs   []error
}{
	{http.StatusBadRequest, []error{
		service.ErrValidationFailed,
		service.ErrNoValidEmails,
		service.ErrUnsupportedImageType,
		service.ErrInvalidImageKey,
		builder.ErrMissingRequiredFields,
		builder.ErrSlotOutOfRange,
		builder.ErrInvalidPosition,
		builder.ErrInvalidSets,
		builder.ErrWorkoutNameEmpty,
		builder.ErrWorkoutWithoutIdentity,
		builder.ErrTooManyWeeks,
		service.ErrDraftTooLarge,
	}},
	{http.StatusUnauthorized, []error{
		service.ErrAuthenticationFailed,
		service.ErrInvalidToken,
	}},
	{http.StatusForbidden, []error{
		service.ErrExerciseAccessDenied,
		service.ErrExerciseReadOnly,
		service.ErrWorkoutAccessDenied,
		service.ErrWorkoutReadOnly,
		service.ErrPlanAccessDenied,
		service.ErrAthleteAccessDenied,
		service.ErrNotParticipant,
		service.ErrPostAccessDenied,
	}},
	{http.StatusNotFound, []error{
		service.ErrUserNotFound,
		service.ErrExerciseNotFound,
		service.ErrWorkoutNotFound,
		service.ErrPlanNotFound,
		service.ErrDraftNotFound,
		service.ErrAthleteNotFound,
		service.ErrConversationNotFound,
		service.ErrPostNotFound,
		builder.ErrRowNotFound,
	}},
	{http.StatusConflict, []error{
		service.ErrUserAlreadyExists,
		service.ErrInvalidTransition,
		builder.ErrInvalidStep,
		builder.ErrLastWeek,
	}},
	{http.StatusServiceUnavailable, []error{
		service.ErrStorageUnavailable,
	}},
}

// statusForError maps a service error to its HTTP status; unknown errors are 500.
func statusForError(err error) int {
	for _, group := range errorStatuses {
		for _, target := range group.errs {
			if errors.Is(err, target) {
				return group.status
			}
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

// respondWithServiceError writes err as JSON. Internal errors are logged and
// replaced by a generic message.
func respondWithServiceError(c *gin.Context, err error, what string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Errorf("%s %s: %s: %s", c.Request.Method, c.Request.URL.Path, what, err)
		abortWithError(c, status, "Failed to "+what+".")
		return
	}
	abortWithError(c, status, err.Error())
}
