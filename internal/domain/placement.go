package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Placement is a scheduled placement drive for a company.
// CompanyName is denormalized for listing without a company lookup.
type Placement struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyID      primitive.ObjectID `bson:"companyId" json:"companyId"`
	CompanyName    string             `bson:"companyName" json:"companyName"`
	PackageOffered float64            `bson:"packageOffered" json:"packageOffered"`
	PlacementDate  time.Time          `bson:"placementDate" json:"placementDate"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
