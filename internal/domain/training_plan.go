// internal/domain/training_plan.go
package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DaysPerWeek is the number of day-slots in every plan week.
const DaysPerWeek = 7

var dayNames = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// PlanSource distinguishes shipped templates from coach-built plans.
type PlanSource string

const (
	PlanSourceTemplate PlanSource = "template"
	PlanSourceCustom   PlanSource = "custom"
)

// DayWorkout is one day-slot of a plan week. A slot is either a rest day,
// a workout assignment, or empty; never rest and assigned at once.
type DayWorkout struct {
	ID            string              `bson:"id" json:"id"`
	Day           int                 `bson:"day" json:"day"` // 0 = Monday
	DayName       string              `bson:"dayName" json:"dayName"`
	WorkoutID     *primitive.ObjectID `bson:"workoutId,omitempty" json:"workoutId,omitempty"`
	WorkoutName   string              `bson:"workoutName,omitempty" json:"workoutName,omitempty"`
	WorkoutType   string              `bson:"workoutType,omitempty" json:"workoutType,omitempty"`
	ExerciseCount int                 `bson:"exerciseCount,omitempty" json:"exerciseCount,omitempty"`
	Duration      string              `bson:"duration,omitempty" json:"duration,omitempty"`
	IsRest        bool                `bson:"isRest" json:"isRest"`
}

// HasWorkout reports whether a workout is assigned to the slot.
func (d DayWorkout) HasWorkout() bool {
	return d.WorkoutID != nil
}

// ClearWorkout drops every cached workout field.
func (d *DayWorkout) ClearWorkout() {
	d.WorkoutID = nil
	d.WorkoutName = ""
	d.WorkoutType = ""
	d.ExerciseCount = 0
	d.Duration = ""
}

// Week is an ordered list of DaysPerWeek slots.
type Week struct {
	WeekNumber int          `bson:"weekNumber" json:"weekNumber"`
	Days       []DayWorkout `bson:"days" json:"days"`
}

// DayID derives a slot id from its position (both numbers 1-based in the id).
func DayID(weekNumber, day int) string {
	return fmt.Sprintf("w%d-d%d", weekNumber, day+1)
}

// DayName returns the weekday label for a 0-based day index.
func DayName(day int) string {
	if day < 0 || day >= DaysPerWeek {
		return ""
	}
	return dayNames[day]
}

// NewEmptyWeek builds a week of empty slots.
func NewEmptyWeek(weekNumber int) Week {
	w := Week{WeekNumber: weekNumber, Days: make([]DayWorkout, DaysPerWeek)}
	for i := range w.Days {
		w.Days[i] = DayWorkout{ID: DayID(weekNumber, i), Day: i, DayName: DayName(i)}
	}
	return w
}

// Renumber sets a new week number and regenerates the day ids to match.
func (w *Week) Renumber(weekNumber int) {
	w.WeekNumber = weekNumber
	for i := range w.Days {
		w.Days[i].ID = DayID(weekNumber, w.Days[i].Day)
	}
}

// Clone returns a deep copy.
func (w Week) Clone() Week {
	c := Week{WeekNumber: w.WeekNumber, Days: make([]DayWorkout, len(w.Days))}
	for i, d := range w.Days {
		if d.WorkoutID != nil {
			id := *d.WorkoutID
			d.WorkoutID = &id
		}
		c.Days[i] = d
	}
	return c
}

// Plan represents a multi-week training plan.
type Plan struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID         primitive.ObjectID `bson:"coachId,omitempty" json:"coachId,omitempty"`
	Source          PlanSource         `bson:"source" json:"source"`
	Name            string             `bson:"name" json:"name"`
	Goal            string             `bson:"goal" json:"goal"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	DurationWeeks   int                `bson:"durationWeeks" json:"durationWeeks"`
	WorkoutsPerWeek int                `bson:"workoutsPerWeek" json:"workoutsPerWeek"`
	Difficulty      string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Weeks           []Week             `bson:"weeks" json:"weeks"`
	TotalWorkouts   int                `bson:"totalWorkouts" json:"totalWorkouts"` // derived at save time
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

func (p *Plan) IsTemplate() bool {
	return p.Source == PlanSourceTemplate
}

// CountWorkouts returns the number of slots with a workout assigned.
func CountWorkouts(weeks []Week) int {
	total := 0
	for _, w := range weeks {
		for _, d := range w.Days {
			if d.HasWorkout() {
				total++
			}
		}
	}
	return total
}

// Clone returns a deep copy.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	c := *p
	c.Weeks = make([]Week, len(p.Weeks))
	for i, w := range p.Weeks {
		c.Weeks[i] = w.Clone()
	}
	return &c
}
