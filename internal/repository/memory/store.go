package memory

import "alcyxob/coach-platform/internal/repository"

// NewStore returns a fresh, empty in-memory store.
func NewStore() *repository.Store {
	return &repository.Store{
		Users:       NewUserRepository(),
		Exercises:   NewExerciseRepository(),
		Workouts:    NewWorkoutRepository(),
		Plans:       NewPlanRepository(),
		Athletes:    NewAthleteRepository(),
		Assignments: NewAssignmentRepository(),
		Chat:        NewChatRepository(),
		Posts:       NewPostRepository(),
	}
}
