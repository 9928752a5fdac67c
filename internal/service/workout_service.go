package service

import (
	"alcyxob/coach-platform/internal/builder"
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrWorkoutAccessDenied = errors.New("access denied to this workout")
	ErrWorkoutReadOnly     = errors.New("workout templates cannot be modified")
)

// WorkoutInput is a full workout as submitted by the editor.
type WorkoutInput struct {
	Name        string
	Description string
	Type        string
	Duration    string
	CoachNotes  string
	Exercises   []domain.WorkoutExercise
}

type WorkoutService interface {
	// ListWorkouts returns the templates followed by the coach's own workouts.
	ListWorkouts(ctx context.Context, coachID primitive.ObjectID) ([]domain.Workout, error)
	GetWorkout(ctx context.Context, coachID, workoutID primitive.ObjectID) (*domain.Workout, error)
	// SaveWorkout adds a new workout when workoutID is nil, otherwise updates it.
	SaveWorkout(ctx context.Context, coachID, workoutID primitive.ObjectID, in WorkoutInput) (*domain.Workout, error)
	// CopyWorkout stores an editable copy of a template or custom workout.
	CopyWorkout(ctx context.Context, coachID, workoutID primitive.ObjectID) (*domain.Workout, error)
	AddExercises(ctx context.Context, coachID, workoutID primitive.ObjectID, exerciseIDs []primitive.ObjectID) (*domain.Workout, error)
	UpdateRow(ctx context.Context, coachID, workoutID, rowID primitive.ObjectID, patch builder.RowPatch) (*domain.WorkoutExercise, error)
	RemoveRow(ctx context.Context, coachID, workoutID, rowID primitive.ObjectID) (*domain.Workout, error)
	MoveRow(ctx context.Context, coachID, workoutID primitive.ObjectID, from, to int) (*domain.Workout, error)
}

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	// serialises read-modify-write on stored workouts
	editMu sync.Mutex
	now    clock
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		now:          utcNow,
	}
}

// lookupWorkout resolves a template or one of the coach's own workouts.
func lookupWorkout(ctx context.Context, repo repository.WorkoutRepository, coachID, id primitive.ObjectID) (*domain.Workout, error) {
	if w, ok := domain.WorkoutTemplate(id); ok {
		return w, nil
	}
	w, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if w.CoachID != coachID {
		return nil, ErrWorkoutAccessDenied
	}
	return w, nil
}

func (s *workoutService) ListWorkouts(ctx context.Context, coachID primitive.ObjectID) ([]domain.Workout, error) {
	custom, err := s.workoutRepo.GetByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	return append(domain.WorkoutTemplates(), custom...), nil
}

func (s *workoutService) GetWorkout(ctx context.Context, coachID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	return lookupWorkout(ctx, s.workoutRepo, coachID, workoutID)
}

// editable loads a custom workout the coach may change.
func (s *workoutService) editable(ctx context.Context, coachID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	w, err := lookupWorkout(ctx, s.workoutRepo, coachID, workoutID)
	if err != nil {
		return nil, err
	}
	if w.IsTemplate() {
		return nil, ErrWorkoutReadOnly
	}
	return w, nil
}

func (s *workoutService) checkRows(ctx context.Context, coachID primitive.ObjectID, rows []domain.WorkoutExercise) ([]domain.WorkoutExercise, error) {
	out := make([]domain.WorkoutExercise, len(rows))
	for i, row := range rows {
		if row.Sets <= 0 {
			return nil, validationError("row %d: %s", i+1, builder.ErrInvalidSets)
		}
		if _, err := lookupExercise(ctx, s.exerciseRepo, coachID, row.ExerciseID); err != nil {
			if errors.Is(err, ErrExerciseNotFound) || errors.Is(err, ErrExerciseAccessDenied) {
				return nil, validationError("row %d: unknown exercise %s", i+1, row.ExerciseID.Hex())
			}
			return nil, err
		}
		if row.ID.IsZero() {
			row.ID = primitive.NewObjectID()
		}
		out[i] = row
	}
	return out, nil
}

func (s *workoutService) SaveWorkout(ctx context.Context, coachID, workoutID primitive.ObjectID, in WorkoutInput) (*domain.Workout, error) {
	rows, err := s.checkRows(ctx, coachID, in.Exercises)
	if err != nil {
		return nil, err
	}

	var base *domain.Workout
	if !workoutID.IsZero() {
		s.editMu.Lock()
		defer s.editMu.Unlock()
		if base, err = s.editable(ctx, coachID, workoutID); err != nil {
			return nil, err
		}
	}

	draft := builder.NewWorkoutDraft(base)
	draft.SetDetails(in.Name, in.Description, in.Type, in.Duration, in.CoachNotes)
	w, err := draft.Workout(s.now())
	if err != nil {
		return nil, validationError("%s", err)
	}
	w.Exercises = rows

	if base == nil {
		w.CoachID = coachID
		w.Source = domain.WorkoutSourceCustom
		if _, err := s.workoutRepo.Create(ctx, w); err != nil {
			return nil, err
		}
		return w, nil
	}
	return w, s.update(ctx, w)
}

func (s *workoutService) update(ctx context.Context, w *domain.Workout) error {
	if err := s.workoutRepo.Update(ctx, w); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

func (s *workoutService) CopyWorkout(ctx context.Context, coachID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	src, err := lookupWorkout(ctx, s.workoutRepo, coachID, workoutID)
	if err != nil {
		return nil, err
	}
	c := src.Clone()
	c.ID = primitive.NilObjectID
	c.CoachID = coachID
	c.Source = domain.WorkoutSourceCustom
	c.LastEdited = s.now()
	if !src.IsTemplate() {
		c.Name = src.Name + " (copy)"
	}
	// the copy owns fresh rows
	for i := range c.Exercises {
		c.Exercises[i].ID = primitive.NewObjectID()
	}
	if _, err := s.workoutRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// edit runs fn against a draft of the stored workout and saves the result.
func (s *workoutService) edit(ctx context.Context, coachID, workoutID primitive.ObjectID, fn func(*builder.WorkoutDraft) error) (*domain.Workout, error) {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	w, err := s.editable(ctx, coachID, workoutID)
	if err != nil {
		return nil, err
	}
	draft := builder.NewWorkoutDraft(w)
	if err := fn(draft); err != nil {
		return nil, err
	}
	updated, err := draft.Workout(s.now())
	if err != nil {
		return nil, err
	}
	return updated, s.update(ctx, updated)
}

// AddExercises appends one row per id in the given order.
func (s *workoutService) AddExercises(ctx context.Context, coachID, workoutID primitive.ObjectID, exerciseIDs []primitive.ObjectID) (*domain.Workout, error) {
	if len(exerciseIDs) == 0 {
		return nil, validationError("no exercises selected")
	}
	selection := make([]*domain.Exercise, 0, len(exerciseIDs))
	for _, id := range exerciseIDs {
		e, err := lookupExercise(ctx, s.exerciseRepo, coachID, id)
		if err != nil {
			return nil, err
		}
		selection = append(selection, e)
	}
	return s.edit(ctx, coachID, workoutID, func(d *builder.WorkoutDraft) error {
		d.AddExercises(selection)
		return nil
	})
}

func (s *workoutService) UpdateRow(ctx context.Context, coachID, workoutID, rowID primitive.ObjectID, patch builder.RowPatch) (*domain.WorkoutExercise, error) {
	var row *domain.WorkoutExercise
	_, err := s.edit(ctx, coachID, workoutID, func(d *builder.WorkoutDraft) error {
		var err error
		row, err = d.UpdateRow(rowID, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *workoutService) RemoveRow(ctx context.Context, coachID, workoutID, rowID primitive.ObjectID) (*domain.Workout, error) {
	return s.edit(ctx, coachID, workoutID, func(d *builder.WorkoutDraft) error {
		return d.RemoveRow(rowID)
	})
}

func (s *workoutService) MoveRow(ctx context.Context, coachID, workoutID primitive.ObjectID, from, to int) (*domain.Workout, error) {
	return s.edit(ctx, coachID, workoutID, func(d *builder.WorkoutDraft) error {
		return d.Move(from, to)
	})
}
