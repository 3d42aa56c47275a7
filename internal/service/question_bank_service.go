package service

import (
	"campusconnect/placement-app/internal/domain"
	"campusconnect/placement-app/internal/repository"
	"context"
)

// QuestionBankService exposes question bank browsing, grouped by round
// category.
type QuestionBankService interface {
	ListByCategory(ctx context.Context) ([]domain.QuestionBankCategory, error)
}

type questionBankService struct {
	questionBankRepo repository.QuestionBankRepository
}

// NewQuestionBankService creates a new instance of questionBankService.
func NewQuestionBankService(questionBankRepo repository.QuestionBankRepository) QuestionBankService {
	return &questionBankService{questionBankRepo: questionBankRepo}
}

func (s *questionBankService) ListByCategory(ctx context.Context) ([]domain.QuestionBankCategory, error) {
	return s.questionBankRepo.ListGroupedByCategory(ctx)
}
