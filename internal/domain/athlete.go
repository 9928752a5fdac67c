package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AthleteCategory describes how a coach works with an athlete.
type AthleteCategory string

const (
	CategoryOnline   AthleteCategory = "Online"
	CategoryInPerson AthleteCategory = "In-Person"
	CategoryHybrid   AthleteCategory = "Hybrid"
)

func (c AthleteCategory) Valid() bool {
	switch c {
	case CategoryOnline, CategoryInPerson, CategoryHybrid:
		return true
	}
	return false
}

// AthleteStatus tracks the roster lifecycle of an athlete.
type AthleteStatus string

const (
	AthleteConnected AthleteStatus = "Connected"
	AthletePending   AthleteStatus = "Pending" // invited, not yet accepted
	AthleteFrozen    AthleteStatus = "Frozen"
)

// Athlete is one entry of a coach's roster.
type Athlete struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID           primitive.ObjectID `bson:"coachId" json:"coachId"`
	Email             string             `bson:"email" json:"email"`
	Name              string             `bson:"name,omitempty" json:"name,omitempty"`
	Category          AthleteCategory    `bson:"category" json:"category"`
	Status            AthleteStatus      `bson:"status" json:"status"`
	JoinedDate        time.Time          `bson:"joinedDate" json:"joinedDate"`
	WorkoutsCompleted int                `bson:"workoutsCompleted" json:"workoutsCompleted"`
	ComplianceRate    int                `bson:"complianceRate" json:"complianceRate"` // percent
	LastActive        *time.Time         `bson:"lastActive,omitempty" json:"lastActive,omitempty"`
}
