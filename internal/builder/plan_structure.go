package builder

import (
	"alcyxob/coach-platform/internal/domain"
)

// Week/day-slot operations. Each returns a new slice and leaves its input
// untouched; indices are 0-based.

func copyWeeks(weeks []domain.Week) []domain.Week {
	out := make([]domain.Week, len(weeks))
	for i, w := range weeks {
		out[i] = w.Clone()
	}
	return out
}

func checkSlot(weeks []domain.Week, week, day int) error {
	if week < 0 || week >= len(weeks) || day < 0 || day >= len(weeks[week].Days) {
		return ErrSlotOutOfRange
	}
	return nil
}

// SetRestDay clears the slot's workout fields and marks it as rest.
func SetRestDay(weeks []domain.Week, week, day int) ([]domain.Week, error) {
	if err := checkSlot(weeks, week, day); err != nil {
		return nil, err
	}
	out := copyWeeks(weeks)
	slot := &out[week].Days[day]
	slot.ClearWorkout()
	slot.IsRest = true
	return out, nil
}

// RemoveWorkout clears the slot's workout fields. A rest day stays as is.
func RemoveWorkout(weeks []domain.Week, week, day int) ([]domain.Week, error) {
	if err := checkSlot(weeks, week, day); err != nil {
		return nil, err
	}
	out := copyWeeks(weeks)
	out[week].Days[day].ClearWorkout()
	return out, nil
}

// AssignWorkout caches the workout's display fields on the slot and clears isRest.
func AssignWorkout(weeks []domain.Week, week, day int, workout *domain.Workout) ([]domain.Week, error) {
	if err := checkSlot(weeks, week, day); err != nil {
		return nil, err
	}
	if workout == nil || workout.ID.IsZero() {
		return nil, ErrWorkoutWithoutIdentity
	}
	out := copyWeeks(weeks)
	slot := &out[week].Days[day]
	id := workout.ID
	slot.WorkoutID = &id
	slot.WorkoutName = workout.Name
	slot.WorkoutType = workout.Type
	slot.ExerciseCount = len(workout.Exercises)
	slot.Duration = workout.Duration
	slot.IsRest = false
	return out, nil
}

// AddWeek appends an empty week.
func AddWeek(weeks []domain.Week) ([]domain.Week, error) {
	if len(weeks) >= MaxWeeks {
		return nil, ErrTooManyWeeks
	}
	out := copyWeeks(weeks)
	return append(out, domain.NewEmptyWeek(len(out)+1)), nil
}

// CloneWeek appends a deep copy of weeks[source]. The copy is always numbered
// len(weeks)+1, whichever week it was cloned from.
func CloneWeek(weeks []domain.Week, source int) ([]domain.Week, error) {
	if source < 0 || source >= len(weeks) {
		return nil, ErrSlotOutOfRange
	}
	if len(weeks) >= MaxWeeks {
		return nil, ErrTooManyWeeks
	}
	out := copyWeeks(weeks)
	clone := weeks[source].Clone()
	clone.Renumber(len(out) + 1)
	return append(out, clone), nil
}

// DeleteWeek removes weeks[index] and renumbers the weeks after it.
// The last remaining week cannot be deleted.
func DeleteWeek(weeks []domain.Week, index int) ([]domain.Week, error) {
	if index < 0 || index >= len(weeks) {
		return nil, ErrSlotOutOfRange
	}
	if len(weeks) == 1 {
		return nil, ErrLastWeek
	}
	out := make([]domain.Week, 0, len(weeks)-1)
	for i, w := range weeks {
		if i == index {
			continue
		}
		c := w.Clone()
		if i > index {
			c.Renumber(i)
		}
		out = append(out, c)
	}
	return out, nil
}

// Structure-step wrappers on the wizard.

func (w *PlanWizard) apply(weeks []domain.Week, err error) error {
	if err != nil {
		return err
	}
	w.Weeks = weeks
	return nil
}

func (w *PlanWizard) checkStructureStep() error {
	if w.Step != StepStructure {
		return ErrInvalidStep
	}
	return nil
}

func (w *PlanWizard) SetRestDay(week, day int) error {
	if err := w.checkStructureStep(); err != nil {
		return err
	}
	return w.apply(SetRestDay(w.Weeks, week, day))
}

func (w *PlanWizard) RemoveWorkout(week, day int) error {
	if err := w.checkStructureStep(); err != nil {
		return err
	}
	return w.apply(RemoveWorkout(w.Weeks, week, day))
}

func (w *PlanWizard) AssignWorkout(week, day int, workout *domain.Workout) error {
	if err := w.checkStructureStep(); err != nil {
		return err
	}
	return w.apply(AssignWorkout(w.Weeks, week, day, workout))
}

func (w *PlanWizard) AddWeek() error {
	if err := w.checkStructureStep(); err != nil {
		return err
	}
	return w.apply(AddWeek(w.Weeks))
}

func (w *PlanWizard) CloneWeek(source int) error {
	if err := w.checkStructureStep(); err != nil {
		return err
	}
	return w.apply(CloneWeek(w.Weeks, source))
}

func (w *PlanWizard) DeleteWeek(index int) error {
	if err := w.checkStructureStep(); err != nil {
		return err
	}
	return w.apply(DeleteWeek(w.Weeks, index))
}
