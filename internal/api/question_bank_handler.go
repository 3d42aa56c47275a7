package api

import (
	"campusconnect/placement-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// QuestionBankHandler serves the interview question archive.
type QuestionBankHandler struct {
	questionBankService service.QuestionBankService
}

func NewQuestionBankHandler(questionBankService service.QuestionBankService) *QuestionBankHandler {
	return &QuestionBankHandler{questionBankService: questionBankService}
}

// ListByCategory returns the question banks grouped by interview round.
func (h *QuestionBankHandler) ListByCategory(c *gin.Context) {
	categories, err := h.questionBankService.ListByCategory(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch question banks")
		return
	}

	c.JSON(http.StatusOK, categories)
}
