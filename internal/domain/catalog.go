package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The shipped catalogue: library exercises, workout templates and plan
// templates. They are never mutated; accessors hand out deep copies.

var catalogTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func mustObjectID(hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		panic(err)
	}
	return id
}

var (
	exBackSquat     = mustObjectID("65a000000000000000000101")
	exBenchPress    = mustObjectID("65a000000000000000000102")
	exDeadlift      = mustObjectID("65a000000000000000000103")
	exPullUp        = mustObjectID("65a000000000000000000104")
	exOverheadPress = mustObjectID("65a000000000000000000105")
	exBarbellRow    = mustObjectID("65a000000000000000000106")
	exRomanianDL    = mustObjectID("65a000000000000000000107")
	exPlank         = mustObjectID("65a000000000000000000108")
	exSwing         = mustObjectID("65a000000000000000000109")

	wtUpperBody    = mustObjectID("65a000000000000000000201")
	wtLowerBody    = mustObjectID("65a000000000000000000202")
	wtConditioning = mustObjectID("65a000000000000000000203")

	ptBeginnerStrength = mustObjectID("65a000000000000000000301")
	ptGeneralFitness   = mustObjectID("65a000000000000000000302")
)

var libraryExercises = []Exercise{
	libraryExercise(exBackSquat, "Barbell Back Squat", "Strength", "Compound", "Quadriceps", []string{"Glutes", "Hamstrings", "Core"}, &ExerciseDefaults{Sets: 4, Reps: "6", Tempo: "3-1-1-0", Rest: "120s"}, exRomanianDL),
	libraryExercise(exBenchPress, "Bench Press", "Strength", "Compound", "Chest", []string{"Triceps", "Shoulders"}, &ExerciseDefaults{Sets: 4, Reps: "8", Tempo: "2-1-1-0", Rest: "90s"}, exOverheadPress),
	libraryExercise(exDeadlift, "Deadlift", "Strength", "Compound", "Hamstrings", []string{"Glutes", "Back", "Forearms"}, &ExerciseDefaults{Sets: 3, Reps: "5", Tempo: "2-0-1-0", Rest: "180s"}, exRomanianDL),
	libraryExercise(exPullUp, "Pull-Up", "Strength", "Compound", "Back", []string{"Biceps", "Forearms"}, &ExerciseDefaults{Sets: 3, Reps: "AMRAP", Tempo: "2-0-1-1", Rest: "90s"}, exBarbellRow),
	libraryExercise(exOverheadPress, "Overhead Press", "Strength", "Compound", "Shoulders", []string{"Triceps", "Core"}, nil),
	libraryExercise(exBarbellRow, "Barbell Row", "Strength", "Compound", "Back", []string{"Biceps", "Rear Delts"}, nil, exPullUp),
	libraryExercise(exRomanianDL, "Romanian Deadlift", "Strength", "Compound", "Hamstrings", []string{"Glutes", "Lower Back"}, &ExerciseDefaults{Sets: 3, Reps: "10", Tempo: "3-0-1-0", Rest: "90s"}, exDeadlift),
	libraryExercise(exPlank, "Plank", "Core", "Isometric", "Core", []string{"Shoulders"}, &ExerciseDefaults{Sets: 3, Reps: "45s", Tempo: "0-0-0-0", Rest: "45s"}),
	libraryExercise(exSwing, "Kettlebell Swing", "Conditioning", "Ballistic", "Glutes", []string{"Hamstrings", "Core"}, &ExerciseDefaults{Sets: 5, Reps: "15", Tempo: "1-0-1-0", Rest: "45s"}),
}

func libraryExercise(id primitive.ObjectID, name, category, exType, primary string, secondary []string, defaults *ExerciseDefaults, alternatives ...primitive.ObjectID) Exercise {
	return Exercise{
		ID:               id,
		Source:           ExerciseSourceLibrary,
		Name:             name,
		Category:         category,
		ExerciseType:     exType,
		PrimaryMuscle:    primary,
		SecondaryMuscles: secondary,
		Defaults:         defaults,
		AlternativeIDs:   alternatives,
		CreatedAt:        catalogTime,
		UpdatedAt:        catalogTime,
	}
}

var workoutTemplates = []Workout{
	templateWorkout(wtUpperBody, "Upper Body Strength", "Horizontal and vertical push/pull", "Strength", "50 min",
		templateRow("65a000000000000000000211", exBenchPress, 4, "8", "2-1-1-0", "90s"),
		templateRow("65a000000000000000000212", exBarbellRow, 4, "8", "2-0-1-1", "90s"),
		templateRow("65a000000000000000000213", exOverheadPress, 3, "10", "2-0-1-0", "60s"),
		templateRow("65a000000000000000000214", exPullUp, 3, "AMRAP", "2-0-1-1", "90s"),
	),
	templateWorkout(wtLowerBody, "Lower Body Power", "Squat and hinge focus", "Strength", "55 min",
		templateRow("65a000000000000000000221", exBackSquat, 5, "5", "3-1-1-0", "150s"),
		templateRow("65a000000000000000000222", exRomanianDL, 3, "10", "3-0-1-0", "90s"),
		templateRow("65a000000000000000000223", exPlank, 3, "45s", "0-0-0-0", "45s"),
	),
	templateWorkout(wtConditioning, "Full Body Conditioning", "Short, dense conditioning circuit", "Conditioning", "30 min",
		templateRow("65a000000000000000000231", exSwing, 5, "15", "1-0-1-0", "45s"),
		templateRow("65a000000000000000000232", exPullUp, 3, "8", "2-0-1-0", "60s"),
		templateRow("65a000000000000000000233", exPlank, 3, "60s", "0-0-0-0", "30s"),
	),
}

func templateRow(hex string, exerciseID primitive.ObjectID, sets int, reps, tempo, rest string) WorkoutExercise {
	return WorkoutExercise{ID: mustObjectID(hex), ExerciseID: exerciseID, Sets: sets, Reps: reps, Tempo: tempo, Rest: rest}
}

func templateWorkout(id primitive.ObjectID, name, description, wType, duration string, rows ...WorkoutExercise) Workout {
	return Workout{
		ID:          id,
		Source:      WorkoutSourceTemplate,
		Name:        name,
		Description: description,
		Type:        wType,
		Duration:    duration,
		Exercises:   rows,
		LastEdited:  catalogTime,
		CreatedAt:   catalogTime,
	}
}

var planTemplates = []Plan{
	templatePlan(ptBeginnerStrength, "Beginner Strength", "Strength", "Linear strength base on three sessions a week", "Beginner", 4,
		map[int]primitive.ObjectID{0: wtUpperBody, 2: wtLowerBody, 4: wtUpperBody}),
	templatePlan(ptGeneralFitness, "General Fitness", "Conditioning", "Balanced strength and conditioning", "Intermediate", 6,
		map[int]primitive.ObjectID{0: wtLowerBody, 1: wtConditioning, 3: wtUpperBody, 5: wtConditioning}),
}

func templatePlan(id primitive.ObjectID, name, goal, description, difficulty string, weeks int, schedule map[int]primitive.ObjectID) Plan {
	p := Plan{
		ID:              id,
		Source:          PlanSourceTemplate,
		Name:            name,
		Goal:            goal,
		Description:     description,
		DurationWeeks:   weeks,
		WorkoutsPerWeek: len(schedule),
		Difficulty:      difficulty,
		CreatedAt:       catalogTime,
	}
	for n := 1; n <= weeks; n++ {
		week := NewEmptyWeek(n)
		for day := range week.Days {
			workoutID, ok := schedule[day]
			if !ok {
				week.Days[day].IsRest = true
				continue
			}
			w, _ := findWorkoutTemplate(workoutID)
			week.Days[day].WorkoutID = &workoutID
			week.Days[day].WorkoutName = w.Name
			week.Days[day].WorkoutType = w.Type
			week.Days[day].ExerciseCount = len(w.Exercises)
			week.Days[day].Duration = w.Duration
		}
		p.Weeks = append(p.Weeks, week)
	}
	p.TotalWorkouts = CountWorkouts(p.Weeks)
	return p
}

func findWorkoutTemplate(id primitive.ObjectID) (*Workout, bool) {
	for i := range workoutTemplates {
		if workoutTemplates[i].ID == id {
			return &workoutTemplates[i], true
		}
	}
	return nil, false
}

// LibraryExercises returns copies of all library exercises.
func LibraryExercises() []Exercise {
	out := make([]Exercise, len(libraryExercises))
	for i := range libraryExercises {
		out[i] = *libraryExercises[i].Clone()
	}
	return out
}

// LibraryExercise looks up a library exercise by id.
func LibraryExercise(id primitive.ObjectID) (*Exercise, bool) {
	for i := range libraryExercises {
		if libraryExercises[i].ID == id {
			return libraryExercises[i].Clone(), true
		}
	}
	return nil, false
}

// WorkoutTemplates returns copies of all workout templates.
func WorkoutTemplates() []Workout {
	out := make([]Workout, len(workoutTemplates))
	for i := range workoutTemplates {
		out[i] = *workoutTemplates[i].Clone()
	}
	return out
}

// WorkoutTemplate looks up a workout template by id.
func WorkoutTemplate(id primitive.ObjectID) (*Workout, bool) {
	w, ok := findWorkoutTemplate(id)
	if !ok {
		return nil, false
	}
	return w.Clone(), true
}

// PlanTemplates returns copies of all plan templates.
func PlanTemplates() []Plan {
	out := make([]Plan, len(planTemplates))
	for i := range planTemplates {
		out[i] = *planTemplates[i].Clone()
	}
	return out
}

// PlanTemplate looks up a plan template by id.
func PlanTemplate(id primitive.ObjectID) (*Plan, bool) {
	for i := range planTemplates {
		if planTemplates[i].ID == id {
			return planTemplates[i].Clone(), true
		}
	}
	return nil, false
}
