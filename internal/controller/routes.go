package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizportal-backend/internal/service"
)

// RegisterRoutes registers all route groups and their endpoints.
func RegisterRoutes(r *gin.Engine,
	quizService service.QuizService,
	analyticsService service.AnalyticsService,
	certService service.CertificateService,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	quizCtrl := NewQuizController(quizService)
	certCtrl := NewCertificateController(certService)

	quizRoutes := r.Group("/quiz")
	{
		quizRoutes.GET("/categories", quizCtrl.GetCategories)
		quizRoutes.GET("/questions/:category", quizCtrl.GetQuestions)
		quizRoutes.POST("/submit", quizCtrl.SubmitQuiz)
		quizRoutes.GET("/history", quizCtrl.GetHistory)
		quizRoutes.GET("/attempts/:attemptId/certificate", certCtrl.GetCertificateByAttempt)
	}

	analyticsCtrl := NewAnalyticsController(analyticsService)
	r.GET("/analytics", analyticsCtrl.GetAnalytics)

	certRoutes := r.Group("/certificates")
	{
		certRoutes.GET("", certCtrl.GetUserCertificates)
		certRoutes.GET("/:id", certCtrl.GetCertificate)
		certRoutes.GET("/:id/download", certCtrl.DownloadCertificate)
	}
}
