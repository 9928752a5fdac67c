package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanAssignment binds a plan to an athlete over a date range.
type PlanAssignment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID    primitive.ObjectID `bson:"coachId" json:"coachId"`
	AthleteID  primitive.ObjectID `bson:"athleteId" json:"athleteId"`
	PlanID     primitive.ObjectID `bson:"planId" json:"planId"`
	PlanSource PlanSource         `bson:"planSource" json:"planSource"`
	PlanName   string             `bson:"planName" json:"planName"` // denormalized for listings
	StartDate  time.Time          `bson:"startDate" json:"startDate"`
	EndDate    time.Time          `bson:"endDate" json:"endDate"`
	AssignedAt time.Time          `bson:"assignedAt" json:"assignedAt"`
}
