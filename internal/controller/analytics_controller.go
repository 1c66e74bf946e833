package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizportal-backend/internal/service"
	"quizportal-backend/utilities"
)

type AnalyticsController struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsController(analyticsService service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

func (ac *AnalyticsController) GetAnalytics(c *gin.Context) {
	userID, _ := currentUser(c)

	summary, err := ac.analyticsService.Summarize(userID)
	if err != nil {
		utilities.Error("analytics failed for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching analytics"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
