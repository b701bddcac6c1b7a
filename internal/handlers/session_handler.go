package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/exam-engine/internal/services"
	"github.com/SAP-F-2025/exam-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
	exportService  services.ExportService
}

func NewSessionHandler(
	sessionService services.SessionService,
	exportService services.ExportService,
	logger utils.Logger,
) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
		exportService:  exportService,
	}
}

// CreateSession creates a session over a loaded exam (the pre-test screen).
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req services.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating session", "exam_id", req.ExamID)

	resp, err := h.sessionService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "session created", Data: resp})
}

// GetSession returns the current view of a session.
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("id")

	resp, err := h.sessionService.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: resp})
}

// StartSession arms the countdown and moves the session in progress.
func (h *SessionHandler) StartSession(c *gin.Context) {
	sessionID := c.Param("id")
	h.LogRequest(c, "Starting session", "session_id", sessionID)

	resp, err := h.sessionService.Start(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "session started", Data: resp})
}

// SubmitAnswer records one answer, overwriting any previous value.
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	sessionID := c.Param("id")

	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.sessionService.SubmitAnswer(c.Request.Context(), sessionID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "answer recorded"})
}

// ToggleFlag flips the review-later marker on a question.
func (h *SessionHandler) ToggleFlag(c *gin.Context) {
	sessionID := c.Param("id")
	questionID := c.Param("question_id")

	if err := h.sessionService.ToggleFlag(c.Request.Context(), sessionID, questionID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "flag toggled"})
}

// Navigate moves the cursor by one question.
func (h *SessionHandler) Navigate(c *gin.Context) {
	sessionID := c.Param("id")

	var req services.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.sessionService.Navigate(c.Request.Context(), sessionID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: resp})
}

// SubmitSession finishes the attempt. Safe to call twice: the session
// transition is idempotent, so a user click racing timer expiry is harmless.
func (h *SessionHandler) SubmitSession(c *gin.Context) {
	sessionID := c.Param("id")
	h.LogRequest(c, "Submitting session", "session_id", sessionID)

	resp, err := h.sessionService.Submit(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "session submitted", Data: resp})
}

// GetResult returns the memoized score of a submitted session.
func (h *SessionHandler) GetResult(c *gin.Context) {
	sessionID := c.Param("id")

	resp, err := h.sessionService.Result(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: resp})
}

// GetReview returns per-question outcomes grouped by section.
func (h *SessionHandler) GetReview(c *gin.Context) {
	sessionID := c.Param("id")

	resp, err := h.sessionService.Review(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: resp})
}

// ExportResults streams the detailed review as an xlsx attachment.
func (h *SessionHandler) ExportResults(c *gin.Context) {
	sessionID := c.Param("id")
	h.LogRequest(c, "Exporting session results", "session_id", sessionID)

	data, err := h.exportService.ExportSessionResults(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("session-%s-results.xlsx", sessionID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// DiscardSession abandons the attempt; answers are simply dropped.
func (h *SessionHandler) DiscardSession(c *gin.Context) {
	sessionID := c.Param("id")
	h.LogRequest(c, "Discarding session", "session_id", sessionID)

	if err := h.sessionService.Discard(c.Request.Context(), sessionID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "session discarded"})
}
