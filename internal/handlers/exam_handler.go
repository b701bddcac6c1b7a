package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/exam-engine/internal/models"
	"github.com/SAP-F-2025/exam-engine/internal/services"
	"github.com/SAP-F-2025/exam-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type ExamHandler struct {
	BaseHandler
	examService    services.ExamService
	sessionService services.SessionService
}

func NewExamHandler(examService services.ExamService, sessionService services.SessionService, logger utils.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler:    NewBaseHandler(logger),
		examService:    examService,
		sessionService: sessionService,
	}
}

// ListExams returns the exam catalog without question content.
func (h *ExamHandler) ListExams(c *gin.Context) {
	summaries, err := h.examService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: summaries})
}

// GetExam returns one exam's content with the answer key stripped.
func (h *ExamHandler) GetExam(c *gin.Context) {
	examID := c.Param("id")

	exam, err := h.examService.GetByID(c.Request.Context(), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: stripAnswerKey(exam)})
}

// ListExamResults returns the archived submission history of one exam,
// newest first, paginated with limit/offset query parameters.
func (h *ExamHandler) ListExamResults(c *gin.Context) {
	examID := c.Param("id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, err := h.sessionService.ListResults(c.Request.Context(), examID, limit, offset)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: resp})
}

// stripAnswerKey deep-copies the exam without correct answers; the loaded
// exam is shared and must never be mutated.
func stripAnswerKey(exam *models.Exam) *models.Exam {
	out := &models.Exam{
		ID:              exam.ID,
		Title:           exam.Title,
		Kind:            exam.Kind,
		DurationMinutes: exam.DurationMinutes,
		Sections:        make([]models.Section, len(exam.Sections)),
	}
	for i, sec := range exam.Sections {
		copied := sec
		copied.Questions = make([]models.Question, len(sec.Questions))
		for j, q := range sec.Questions {
			q.CorrectAnswer = nil
			copied.Questions[j] = q
		}
		out.Sections[i] = copied
	}
	return out
}
