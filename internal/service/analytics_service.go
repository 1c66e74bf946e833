package service

import (
	"time"

	"quizportal-backend/internal/model"
	"quizportal-backend/internal/repository"
)

// CategoryStats accumulates one category's performance across all attempts.
// AverageScore is question-weighted (100 * correctSum / questionSum), not an
// average of per-attempt percentages; the two differ whenever attempts carry
// different question counts.
type CategoryStats struct {
	TotalAttempts  int       `json:"total_attempts"`
	TotalCorrect   int       `json:"total_correct"`
	TotalQuestions int       `json:"total_questions"`
	AverageScore   float64   `json:"average_score"`
	BestScore      float64   `json:"best_score"`
	RecentScores   []float64 `json:"recent_scores"`
}

// OverallStats mirrors the per-category computation across all categories.
type OverallStats struct {
	TotalAttempts  int     `json:"total_attempts"`
	TotalCorrect   int     `json:"total_correct"`
	TotalQuestions int     `json:"total_questions"`
	AverageScore   float64 `json:"average_score"`
	Improvement    float64 `json:"improvement"`
}

// RecentAttempt is one dashboard line: the per-attempt percentage, not the
// question-weighted average.
type RecentAttempt struct {
	AttemptID         uint           `json:"attempt_id"`
	Category          model.Category `json:"category"`
	Score             float64        `json:"score"`
	Date              time.Time      `json:"date"`
	QuestionsAnswered int            `json:"questions_answered"`
	CorrectAnswers    int            `json:"correct_answers"`
}

type PerformanceSummary struct {
	Overall        OverallStats                      `json:"overall"`
	CategoryWise   map[model.Category]*CategoryStats `json:"category_wise"`
	RecentActivity []RecentAttempt                   `json:"recent_activity"`
}

const recentWindow = 5

// AnalyticsService derives dashboard statistics from the full attempt history
// of a user. Read-only; a user with no history gets all-zero stats.
type AnalyticsService interface {
	Summarize(userID uint) (*PerformanceSummary, error)
}

type analyticsService struct {
	attempts repository.AttemptRepository
}

func NewAnalyticsService(attempts repository.AttemptRepository) AnalyticsService {
	return &analyticsService{attempts: attempts}
}

func (s *analyticsService) Summarize(userID uint) (*PerformanceSummary, error) {
	// Newest first; everything below relies on that ordering.
	attempts, err := s.attempts.GetAttemptsByUser(userID)
	if err != nil {
		return nil, err
	}

	categoryWise := make(map[model.Category]*CategoryStats, len(model.AllCategories()))
	for _, c := range model.AllCategories() {
		categoryWise[c] = &CategoryStats{RecentScores: []float64{}}
	}

	overall := OverallStats{}
	for _, attempt := range attempts {
		stats, ok := categoryWise[attempt.Category]
		if !ok {
			continue
		}

		correct := attempt.CorrectCount()
		questions := len(attempt.Questions)
		pct := attempt.Percentage()

		stats.TotalAttempts++
		stats.TotalCorrect += correct
		stats.TotalQuestions += questions
		if len(stats.RecentScores) < recentWindow {
			stats.RecentScores = append(stats.RecentScores, pct)
		}
		if pct > stats.BestScore {
			stats.BestScore = pct
		}

		overall.TotalAttempts++
		overall.TotalCorrect += correct
		overall.TotalQuestions += questions
	}

	for _, stats := range categoryWise {
		if stats.TotalQuestions > 0 {
			stats.AverageScore = float64(stats.TotalCorrect) / float64(stats.TotalQuestions) * 100
		}
	}
	if overall.TotalQuestions > 0 {
		overall.AverageScore = float64(overall.TotalCorrect) / float64(overall.TotalQuestions) * 100
	}
	overall.Improvement = improvement(attempts)

	recent := make([]RecentAttempt, 0, recentWindow)
	for i := 0; i < len(attempts) && i < recentWindow; i++ {
		a := attempts[i]
		recent = append(recent, RecentAttempt{
			AttemptID:         a.ID,
			Category:          a.Category,
			Score:             a.Percentage(),
			Date:              a.EndTime,
			QuestionsAnswered: len(a.Questions),
			CorrectAnswers:    a.CorrectCount(),
		})
	}

	return &PerformanceSummary{
		Overall:        overall,
		CategoryWise:   categoryWise,
		RecentActivity: recent,
	}, nil
}

// improvement is the mean percentage of the most recent <=5 attempts minus
// the mean of the next <=5 (positions 6-10 in recency order). Zero with fewer
// than 2 attempts or without a second window.
func improvement(attempts []model.QuizAttempt) float64 {
	if len(attempts) < 2 {
		return 0
	}

	recent := attempts[:min(recentWindow, len(attempts))]
	older := attempts[len(recent):]
	if len(older) > recentWindow {
		older = older[:recentWindow]
	}
	if len(older) == 0 {
		return 0
	}
	return meanPercentage(recent) - meanPercentage(older)
}

func meanPercentage(attempts []model.QuizAttempt) float64 {
	sum := 0.0
	for _, a := range attempts {
		sum += a.Percentage()
	}
	return sum / float64(len(attempts))
}
