package service

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("access denied to this exercise")
	ErrExerciseReadOnly     = errors.New("library exercises cannot be modified")
)

// ExerciseInput carries the editable fields of a custom exercise.
type ExerciseInput struct {
	Name             string
	Category         string
	ExerciseType     string
	PrimaryMuscle    string
	SecondaryMuscles []string
	Defaults         *domain.ExerciseDefaults
	AlternativeIDs   []primitive.ObjectID
	Description      string
	VideoURL         string
}

type ExerciseService interface {
	CreateExercise(ctx context.Context, coachID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error)
	GetExercise(ctx context.Context, coachID, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	// ListExercises returns the library followed by the coach's own exercises.
	ListExercises(ctx context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, coachID, exerciseID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// lookupExercise resolves an id visible to the coach: a library entry or one
// of the coach's own custom exercises.
func lookupExercise(ctx context.Context, repo repository.ExerciseRepository, coachID, id primitive.ObjectID) (*domain.Exercise, error) {
	if e, ok := domain.LibraryExercise(id); ok {
		return e, nil
	}
	e, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if e.CoachID != coachID {
		return nil, ErrExerciseAccessDenied
	}
	return e, nil
}

func (s *exerciseService) validate(ctx context.Context, coachID, selfID primitive.ObjectID, in *ExerciseInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.PrimaryMuscle = strings.TrimSpace(in.PrimaryMuscle)
	if in.Name == "" || in.Category == "" || in.PrimaryMuscle == "" {
		return validationError("name, category and primary muscle are required")
	}
	if in.Defaults != nil && in.Defaults.Sets < 0 {
		return validationError("default sets cannot be negative")
	}

	// secondary muscles form a set
	seen := make(map[string]bool, len(in.SecondaryMuscles))
	muscles := make([]string, 0, len(in.SecondaryMuscles))
	for _, m := range in.SecondaryMuscles {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		muscles = append(muscles, m)
	}
	in.SecondaryMuscles = muscles

	for _, altID := range in.AlternativeIDs {
		if altID == selfID {
			return validationError("an exercise cannot be its own alternative")
		}
		if _, err := lookupExercise(ctx, s.exerciseRepo, coachID, altID); err != nil {
			if errors.Is(err, ErrExerciseNotFound) || errors.Is(err, ErrExerciseAccessDenied) {
				return validationError("unknown alternative exercise %s", altID.Hex())
			}
			return err
		}
	}
	return nil
}

func (s *exerciseService) CreateExercise(ctx context.Context, coachID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error) {
	if coachID.IsZero() {
		return nil, validationError("coach id is required")
	}
	if err := s.validate(ctx, coachID, primitive.NilObjectID, &in); err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		CoachID: coachID,
		Source:  domain.ExerciseSourceCustom,
	}
	applyExerciseInput(exercise, in)

	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func applyExerciseInput(e *domain.Exercise, in ExerciseInput) {
	e.Name = in.Name
	e.Category = in.Category
	e.ExerciseType = in.ExerciseType
	e.PrimaryMuscle = in.PrimaryMuscle
	e.SecondaryMuscles = in.SecondaryMuscles
	e.Defaults = in.Defaults
	e.AlternativeIDs = in.AlternativeIDs
	e.Description = in.Description
	e.VideoURL = in.VideoURL
}

func (s *exerciseService) GetExercise(ctx context.Context, coachID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	return lookupExercise(ctx, s.exerciseRepo, coachID, exerciseID)
}

func (s *exerciseService) ListExercises(ctx context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error) {
	custom, err := s.exerciseRepo.GetByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	return append(domain.LibraryExercises(), custom...), nil
}

// UpdateExercise edits a custom exercise owned by the coach.
func (s *exerciseService) UpdateExercise(ctx context.Context, coachID, exerciseID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error) {
	if _, ok := domain.LibraryExercise(exerciseID); ok {
		return nil, ErrExerciseReadOnly
	}
	exercise, err := lookupExercise(ctx, s.exerciseRepo, coachID, exerciseID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, coachID, exerciseID, &in); err != nil {
		return nil, err
	}

	applyExerciseInput(exercise, in)
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}
