package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResumeFormat distinguishes uploaded PDFs from server-rendered templates.
type ResumeFormat string

const (
	FormatCustom    ResumeFormat = "custom"
	FormatTemplate1 ResumeFormat = "template1"
	FormatTemplate2 ResumeFormat = "template2"
)

// Resume is one stored resume document. At most one resume per USN has
// IsActive set at any committed state; the resume service maintains that
// invariant across uploads, activations and deletions.
type Resume struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	USN              string             `bson:"usn" json:"usn"`
	Format           ResumeFormat       `bson:"format" json:"format"`
	FilePath         string             `bson:"filePath" json:"filePath"` // storage locator, e.g. 1AB21CS001_1717430400000.pdf
	ContentHash      string             `bson:"contentHash" json:"-"`     // md5 over the raw bytes, used for per-owner dedupe
	OriginalFileName string             `bson:"originalFileName" json:"originalFileName"`
	IsActive         bool               `bson:"isActive" json:"isActive"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
