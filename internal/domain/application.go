package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application links a student to a placement drive they applied for.
// A student may apply to a drive at most once.
type Application struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PlacementID primitive.ObjectID  `bson:"placementId" json:"placementId"`
	CompanyID   primitive.ObjectID  `bson:"companyId" json:"companyId"`
	StudentID   primitive.ObjectID  `bson:"studentId" json:"studentId"`
	ResumeID    *primitive.ObjectID `bson:"resumeId,omitempty" json:"resumeId,omitempty"` // the active resume at apply time, if any
	AppliedAt   time.Time           `bson:"appliedAt" json:"appliedAt"`
}
