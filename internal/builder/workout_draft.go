package builder

import (
	"errors"
	"strings"
	"time"

	"alcyxob/coach-platform/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrRowNotFound      = errors.New("workout row not found")
	ErrInvalidPosition  = errors.New("row position out of range")
	ErrWorkoutNameEmpty = errors.New("workout name is required")
	ErrInvalidSets      = errors.New("sets must be positive")
)

// RowPatch carries the per-row fields a coach edited. Nil means unchanged.
type RowPatch struct {
	Sets    *int    `json:"sets,omitempty"`
	Reps    *string `json:"reps,omitempty"`
	Weight  *string `json:"weight,omitempty"`
	Tempo   *string `json:"tempo,omitempty"`
	Rest    *string `json:"rest,omitempty"`
	GroupID *string `json:"groupId,omitempty"`
}

// WorkoutDraft is an editable copy of a workout.
type WorkoutDraft struct {
	workout *domain.Workout
}

// NewWorkoutDraft starts editing a copy of w; the caller's value is never touched.
func NewWorkoutDraft(w *domain.Workout) *WorkoutDraft {
	if w == nil {
		w = &domain.Workout{Source: domain.WorkoutSourceCustom}
	}
	c := w.Clone()
	if c.Exercises == nil {
		c.Exercises = []domain.WorkoutExercise{}
	}
	return &WorkoutDraft{workout: c}
}

// Rows returns a copy of the current rows.
func (d *WorkoutDraft) Rows() []domain.WorkoutExercise {
	out := make([]domain.WorkoutExercise, len(d.workout.Exercises))
	copy(out, d.workout.Exercises)
	return out
}

func (d *WorkoutDraft) indexOf(rowID primitive.ObjectID) int {
	for i, row := range d.workout.Exercises {
		if row.ID == rowID {
			return i
		}
	}
	return -1
}

// SetDetails replaces the header fields of the workout.
func (d *WorkoutDraft) SetDetails(name, description, workoutType, duration, coachNotes string) {
	d.workout.Name = strings.TrimSpace(name)
	d.workout.Description = description
	d.workout.Type = workoutType
	d.workout.Duration = duration
	d.workout.CoachNotes = coachNotes
}

// AddExercises appends one row per selected exercise in selection order,
// seeded from each exercise's defaults. Existing rows are left alone.
func (d *WorkoutDraft) AddExercises(selection []*domain.Exercise) []domain.WorkoutExercise {
	added := make([]domain.WorkoutExercise, 0, len(selection))
	for _, ex := range selection {
		if ex == nil {
			continue
		}
		defaults := ex.PrescriptionDefaults()
		row := domain.WorkoutExercise{
			ID:         primitive.NewObjectID(),
			ExerciseID: ex.ID,
			Sets:       defaults.Sets,
			Reps:       defaults.Reps,
			Tempo:      defaults.Tempo,
			Rest:       defaults.Rest,
		}
		added = append(added, row)
	}
	d.workout.Exercises = append(d.workout.Exercises, added...)
	return added
}

// UpdateRow replaces the patched fields of one row.
func (d *WorkoutDraft) UpdateRow(rowID primitive.ObjectID, patch RowPatch) (*domain.WorkoutExercise, error) {
	i := d.indexOf(rowID)
	if i < 0 {
		return nil, ErrRowNotFound
	}
	row := d.workout.Exercises[i]
	if patch.Sets != nil {
		if *patch.Sets <= 0 {
			return nil, ErrInvalidSets
		}
		row.Sets = *patch.Sets
	}
	if patch.Reps != nil {
		row.Reps = *patch.Reps
	}
	if patch.Weight != nil {
		row.Weight = *patch.Weight
	}
	if patch.Tempo != nil {
		row.Tempo = *patch.Tempo
	}
	if patch.Rest != nil {
		row.Rest = *patch.Rest
	}
	if patch.GroupID != nil {
		row.GroupID = *patch.GroupID
	}
	d.workout.Exercises[i] = row
	return &row, nil
}

// RemoveRow deletes one row by id.
func (d *WorkoutDraft) RemoveRow(rowID primitive.ObjectID) error {
	i := d.indexOf(rowID)
	if i < 0 {
		return ErrRowNotFound
	}
	d.workout.Exercises = append(d.workout.Exercises[:i], d.workout.Exercises[i+1:]...)
	return nil
}

// Move takes the row at position from out of the list and reinserts it at to.
func (d *WorkoutDraft) Move(from, to int) error {
	n := len(d.workout.Exercises)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrInvalidPosition
	}
	if from == to {
		return nil
	}
	row := d.workout.Exercises[from]
	rows := append(d.workout.Exercises[:from:from], d.workout.Exercises[from+1:]...)
	rows = append(rows[:to], append([]domain.WorkoutExercise{row}, rows[to:]...)...)
	d.workout.Exercises = rows
	return nil
}

// Workout returns the finished workout stamped with lastEdited.
func (d *WorkoutDraft) Workout(now time.Time) (*domain.Workout, error) {
	if d.workout.Name == "" {
		return nil, ErrWorkoutNameEmpty
	}
	w := d.workout.Clone()
	w.LastEdited = now
	return w, nil
}
