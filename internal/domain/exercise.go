// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseSource tells library entries apart from coach-created ones.
type ExerciseSource string

const (
	ExerciseSourceLibrary ExerciseSource = "library"
	ExerciseSourceCustom  ExerciseSource = "custom"
)

// Fallback prescription used when an exercise carries no defaults of its own.
const (
	DefaultSets  = 3
	DefaultReps  = "10"
	DefaultTempo = "2-0-2-0"
	DefaultRest  = "60s"
)

// ExerciseDefaults is the prescription a new workout row is seeded with.
type ExerciseDefaults struct {
	Sets  int    `bson:"sets" json:"sets"`
	Reps  string `bson:"reps" json:"reps"`   // free-form, e.g. "10" or "AMRAP"
	Tempo string `bson:"tempo" json:"tempo"` // 4-part tempo notation
	Rest  string `bson:"rest" json:"rest"`
}

// Exercise represents a single exercise definition in the registry.
type Exercise struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CoachID          primitive.ObjectID   `bson:"coachId,omitempty" json:"coachId,omitempty"` // Nil for library entries
	Source           ExerciseSource       `bson:"source" json:"source"`
	Name             string               `bson:"name" json:"name"`
	Category         string               `bson:"category" json:"category"`         // e.g., "Strength", "Mobility"
	ExerciseType     string               `bson:"exerciseType" json:"exerciseType"` // e.g., "Compound", "Isolation"
	PrimaryMuscle    string               `bson:"primaryMuscle" json:"primaryMuscle"`
	SecondaryMuscles []string             `bson:"secondaryMuscles,omitempty" json:"secondaryMuscles,omitempty"`
	Defaults         *ExerciseDefaults    `bson:"defaults,omitempty" json:"defaults,omitempty"`
	AlternativeIDs   []primitive.ObjectID `bson:"alternativeIds,omitempty" json:"alternativeIds,omitempty"` // References only, never owned
	Description      string               `bson:"description,omitempty" json:"description,omitempty"`
	VideoURL         string               `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PrescriptionDefaults returns the exercise's stored defaults, falling back
// to the global defaults field by field.
func (e *Exercise) PrescriptionDefaults() ExerciseDefaults {
	d := ExerciseDefaults{Sets: DefaultSets, Reps: DefaultReps, Tempo: DefaultTempo, Rest: DefaultRest}
	if e == nil || e.Defaults == nil {
		return d
	}
	if e.Defaults.Sets > 0 {
		d.Sets = e.Defaults.Sets
	}
	if e.Defaults.Reps != "" {
		d.Reps = e.Defaults.Reps
	}
	if e.Defaults.Tempo != "" {
		d.Tempo = e.Defaults.Tempo
	}
	if e.Defaults.Rest != "" {
		d.Rest = e.Defaults.Rest
	}
	return d
}

// IsReadOnly reports whether the exercise belongs to the shipped library.
func (e *Exercise) IsReadOnly() bool {
	return e.Source == ExerciseSourceLibrary
}

// Clone returns a deep copy.
func (e *Exercise) Clone() *Exercise {
	if e == nil {
		return nil
	}
	c := *e
	c.SecondaryMuscles = append([]string(nil), e.SecondaryMuscles...)
	c.AlternativeIDs = append([]primitive.ObjectID(nil), e.AlternativeIDs...)
	if e.Defaults != nil {
		d := *e.Defaults
		c.Defaults = &d
	}
	return &c
}
