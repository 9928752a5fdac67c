// Package builder holds the form-state logic behind the plan wizard and the
// workout editor. Nothing here touches storage; services load, mutate and save.
package builder

import (
	"errors"
	"strings"
	"time"

	"alcyxob/coach-platform/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidStep            = errors.New("operation not allowed at the current wizard step")
	ErrMissingRequiredFields  = errors.New("plan name and goal are required")
	ErrSlotOutOfRange         = errors.New("week or day index out of range")
	ErrLastWeek               = errors.New("a plan must keep at least one week")
	ErrWorkoutWithoutIdentity = errors.New("workout has no id")
	ErrTooManyWeeks           = errors.New("a plan cannot have more than 52 weeks")
)

// MaxWeeks caps the length of a plan.
const MaxWeeks = 52

// WizardStep is a stage of the plan wizard. Steps only move one at a time.
type WizardStep int

const (
	StepBasicInfo WizardStep = iota + 1
	StepStructure
	StepReview
)

func (s WizardStep) String() string {
	switch s {
	case StepBasicInfo:
		return "basic-info"
	case StepStructure:
		return "structure"
	case StepReview:
		return "review"
	}
	return "unknown"
}

// BasicInfo is the first wizard page.
type BasicInfo struct {
	Name            string `json:"name"`
	Goal            string `json:"goal"`
	Description     string `json:"description,omitempty"`
	DurationWeeks   int    `json:"durationWeeks"`
	WorkoutsPerWeek int    `json:"workoutsPerWeek"`
	Difficulty      string `json:"difficulty,omitempty"`
}

// PlanWizard is the in-progress state of a plan being built.
// It is a plain value so it can be serialised between requests.
type PlanWizard struct {
	ID        primitive.ObjectID `json:"id"`
	CoachID   primitive.ObjectID `json:"coachId"`
	Step      WizardStep         `json:"step"`
	Info      BasicInfo          `json:"info"`
	Weeks     []domain.Week      `json:"weeks"`
	StartedAt time.Time          `json:"startedAt"`
}

// NewPlanWizard starts a wizard at the first step with one empty week.
func NewPlanWizard(coachID primitive.ObjectID, now time.Time) *PlanWizard {
	return &PlanWizard{
		ID:        primitive.NewObjectID(),
		CoachID:   coachID,
		Step:      StepBasicInfo,
		Info:      BasicInfo{DurationWeeks: 1},
		Weeks:     []domain.Week{domain.NewEmptyWeek(1)},
		StartedAt: now,
	}
}

// SetBasicInfo replaces the first page fields. Allowed only on that page.
func (w *PlanWizard) SetBasicInfo(info BasicInfo) error {
	if w.Step != StepBasicInfo {
		return ErrInvalidStep
	}
	info.Name = strings.TrimSpace(info.Name)
	info.Goal = strings.TrimSpace(info.Goal)
	w.Info = info
	return nil
}

// Next advances one step. Leaving BasicInfo requires a name and a goal.
func (w *PlanWizard) Next() error {
	switch w.Step {
	case StepBasicInfo:
		if w.Info.Name == "" || w.Info.Goal == "" {
			return ErrMissingRequiredFields
		}
		w.Step = StepStructure
	case StepStructure:
		w.Step = StepReview
	default:
		return ErrInvalidStep
	}
	return nil
}

// Back returns to the previous step.
func (w *PlanWizard) Back() error {
	if w.Step <= StepBasicInfo {
		return ErrInvalidStep
	}
	w.Step--
	return nil
}

// Build materialises the custom plan. Only allowed at the review step.
func (w *PlanWizard) Build(now time.Time) (*domain.Plan, error) {
	if w.Step != StepReview {
		return nil, ErrInvalidStep
	}
	weeks := make([]domain.Week, len(w.Weeks))
	for i, week := range w.Weeks {
		weeks[i] = week.Clone()
	}
	duration := w.Info.DurationWeeks
	if duration < len(weeks) {
		duration = len(weeks)
	}
	return &domain.Plan{
		CoachID:         w.CoachID,
		Source:          domain.PlanSourceCustom,
		Name:            w.Info.Name,
		Goal:            w.Info.Goal,
		Description:     w.Info.Description,
		DurationWeeks:   duration,
		WorkoutsPerWeek: w.Info.WorkoutsPerWeek,
		Difficulty:      w.Info.Difficulty,
		Weeks:           weeks,
		TotalWorkouts:   domain.CountWorkouts(weeks),
		CreatedAt:       now,
	}, nil
}
