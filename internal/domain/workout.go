package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSource distinguishes shipped templates from coach-built workouts.
type WorkoutSource string

const (
	WorkoutSourceTemplate WorkoutSource = "template"
	WorkoutSourceCustom   WorkoutSource = "custom"
)

// WorkoutExercise is one prescribed row of a workout. It is owned by its workout.
type WorkoutExercise struct {
	ID         primitive.ObjectID `bson:"id" json:"id"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets       int                `bson:"sets" json:"sets"`
	Reps       string             `bson:"reps" json:"reps"`
	Weight     string             `bson:"weight,omitempty" json:"weight,omitempty"`
	Tempo      string             `bson:"tempo" json:"tempo"`
	Rest       string             `bson:"rest" json:"rest"`
	GroupID    string             `bson:"groupId,omitempty" json:"groupId,omitempty"` // superset grouping
}

// Workout represents a named, ordered list of exercise rows.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID     primitive.ObjectID `bson:"coachId,omitempty" json:"coachId,omitempty"`
	Source      WorkoutSource      `bson:"source" json:"source"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Type        string             `bson:"type,omitempty" json:"type,omitempty"`         // e.g., "Strength", "Conditioning"
	Duration    string             `bson:"duration,omitempty" json:"duration,omitempty"` // e.g., "45 min"
	Exercises   []WorkoutExercise  `bson:"exercises" json:"exercises"`
	CoachNotes  string             `bson:"coachNotes,omitempty" json:"coachNotes,omitempty"`
	LastEdited  time.Time          `bson:"lastEdited" json:"lastEdited"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

func (w *Workout) IsTemplate() bool {
	return w.Source == WorkoutSourceTemplate
}

// Clone returns a deep copy.
func (w *Workout) Clone() *Workout {
	if w == nil {
		return nil
	}
	c := *w
	c.Exercises = make([]WorkoutExercise, len(w.Exercises))
	copy(c.Exercises, w.Exercises)
	return &c
}
