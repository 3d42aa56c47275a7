package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company represents a recruiting company visible in drive listings.
type Company struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name            string               `bson:"name" json:"name"`
	Sector          string               `bson:"sector" json:"sector"`
	Location        string               `bson:"location" json:"location"`
	JobProfile      string               `bson:"jobProfile" json:"jobProfile"`
	Category        string               `bson:"category" json:"category"`
	Package         float64              `bson:"package" json:"package"` // annual CTC in LPA
	BannerImage     string               `bson:"bannerImage,omitempty" json:"bannerImage,omitempty"`
	Logo            string               `bson:"logo,omitempty" json:"logo,omitempty"`
	StudentsApplied []primitive.ObjectID `bson:"studentsApplied,omitempty" json:"studentsApplied,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}
