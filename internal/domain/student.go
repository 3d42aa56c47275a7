package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student represents a registered student in the placement system.
// The USN (university serial number) is the stable external identity used
// for ownership checks across resumes and applications.
type Student struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID    string             `bson:"studentId" json:"studentId"` // sequential display id, e.g. STU042
	USN          string             `bson:"usn" json:"usn"`             // unique, stored uppercase
	FirstName    string             `bson:"firstName" json:"firstName"`
	MiddleName   string             `bson:"middleName,omitempty" json:"middleName,omitempty"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Email        string             `bson:"email" json:"email"` // unique, stored lowercase
	PasswordHash string             `bson:"passwordHash" json:"-"`
	DOB          time.Time          `bson:"dob" json:"dob"`
	Phone        string             `bson:"phone" json:"phone"`
	Address      string             `bson:"address" json:"address"`

	CurrentCGPA        float64  `bson:"currentCgpa" json:"currentCgpa"`
	TenthPercentage    float64  `bson:"tenthPercentage" json:"tenthPercentage"`
	TwelfthPercentage  *float64 `bson:"twelfthPercentage,omitempty" json:"twelfthPercentage,omitempty"`
	DiplomaPercentage  *float64 `bson:"diplomaPercentage,omitempty" json:"diplomaPercentage,omitempty"`
	NumberOfBacklogs   int      `bson:"noOfBacklogs" json:"noOfBacklogs"`
	PlacedStatus       bool     `bson:"placedStatus" json:"placedStatus"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// FullName joins the name parts, skipping an absent middle name.
func (s *Student) FullName() string {
	name := s.FirstName
	if s.MiddleName != "" {
		name += " " + s.MiddleName
	}
	if s.LastName != "" {
		name += " " + s.LastName
	}
	return name
}
