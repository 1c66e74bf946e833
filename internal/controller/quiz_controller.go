package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"quizportal-backend/internal/config"
	"quizportal-backend/internal/model"
	"quizportal-backend/internal/service"
	"quizportal-backend/utilities"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// currentUser pulls the identity set by the auth middleware.
func currentUser(c *gin.Context) (uint, string) {
	id, _ := c.Get("user_id")
	uid, _ := id.(uint)
	return uid, c.GetString("username")
}

func (qc *QuizController) GetCategories(c *gin.Context) {
	categories, err := qc.quizService.GetCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (qc *QuizController) GetQuestions(c *gin.Context) {
	userID, _ := currentUser(c)
	category := model.Category(c.Param("category"))
	difficulty := c.Query("difficulty")

	limit := config.GetConfig().Quiz.DefaultQuestionSet
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	sheet, err := qc.quizService.GetQuestions(userID, category, difficulty, limit, time.Now())
	if err != nil {
		qc.renderQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions":     sheet.Questions,
		"session":       sheet.Session,
		"attempts_left": sheet.AttemptsLeft,
	})
}

func (qc *QuizController) SubmitQuiz(c *gin.Context) {
	userID, username := currentUser(c)

	var req service.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission payload"})
		return
	}

	result, err := qc.quizService.Submit(userID, username, req, time.Now())
	if err != nil {
		qc.renderQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "quiz submitted successfully",
		"result":  result,
	})
}

func (qc *QuizController) GetHistory(c *gin.Context) {
	userID, _ := currentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(config.GetConfig().Pagination.PageSize)))
	if limit <= 0 {
		limit = config.GetConfig().Pagination.PageSize
	}

	attempts, total, err := qc.quizService.GetHistory(userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching quiz history"})
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"quiz_attempts": attempts,
		"total_pages":   totalPages,
		"current_page":  page,
	})
}

func (qc *QuizController) renderQuizError(c *gin.Context, err error) {
	if limitErr, ok := service.IsAttemptLimit(err); ok {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":             limitErr.Error(),
			"next_attempt_time": limitErr.NextReset,
			"attempts_left":     0,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidSubmission), errors.Is(err, service.ErrSessionInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoQuestions):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		utilities.Error("quiz request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
