package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoundCategory is the interview round a question bank belongs to.
type RoundCategory string

const (
	CategoryAptitude        RoundCategory = "Aptitude Round"
	CategoryTechnical       RoundCategory = "Technical Round"
	CategoryHR              RoundCategory = "HR Round"
	CategoryManagerial      RoundCategory = "Managerial Round"
	CategoryGroupDiscussion RoundCategory = "Group Discussion"
	CategoryCoding          RoundCategory = "Coding Round"
)

// Question is a single past interview question with its recorded answer.
type Question struct {
	Year     string `bson:"year" json:"year"` // e.g. "2023-24"
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}

// QuestionBank groups the questions one company asked in one round category.
type QuestionBank struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Category    RoundCategory      `bson:"category" json:"category"`
	CompanyID   string             `bson:"companyId" json:"companyId"`
	CompanyName string             `bson:"companyName" json:"companyName"`
	Questions   []Question         `bson:"questions" json:"questions"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// QuestionBankCompany is a company's question list inside a category group.
type QuestionBankCompany struct {
	CompanyID string     `bson:"companyId" json:"companyId"`
	Name      string     `bson:"name" json:"name"`
	Questions []Question `bson:"questions" json:"questions"`
}

// QuestionBankCategory is the aggregation result of grouping question
// banks by round category.
type QuestionBankCategory struct {
	Category  RoundCategory         `bson:"category" json:"category"`
	Companies []QuestionBankCompany `bson:"companies" json:"companies"`
}
