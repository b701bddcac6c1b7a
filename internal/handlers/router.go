package handlers

import (
	"github.com/SAP-F-2025/exam-engine/internal/services"
	"github.com/SAP-F-2025/exam-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	examHandler    *ExamHandler
	sessionHandler *SessionHandler
}

func NewHandlerManager(
	examService services.ExamService,
	sessionService services.SessionService,
	exportService services.ExportService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		examHandler:    NewExamHandler(examService, sessionService, logger),
		sessionHandler: NewSessionHandler(sessionService, exportService, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Exam catalog routes
		exams := v1.Group("/exams")
		{
			exams.GET("", hm.examHandler.ListExams)
			exams.GET("/:id", hm.examHandler.GetExam)
			exams.GET("/:id/results", hm.examHandler.ListExamResults)
		}

		// Session routes
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.CreateSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.POST("/:id/start", hm.sessionHandler.StartSession)
			sessions.PUT("/:id/answers", hm.sessionHandler.SubmitAnswer)
			sessions.POST("/:id/flags/:question_id", hm.sessionHandler.ToggleFlag)
			sessions.POST("/:id/navigate", hm.sessionHandler.Navigate)
			sessions.POST("/:id/submit", hm.sessionHandler.SubmitSession)
			sessions.GET("/:id/result", hm.sessionHandler.GetResult)
			sessions.GET("/:id/review", hm.sessionHandler.GetReview)
			sessions.GET("/:id/export", hm.sessionHandler.ExportResults)
			sessions.DELETE("/:id", hm.sessionHandler.DiscardSession)
		}
	}
}
