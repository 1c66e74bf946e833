package service

import (
	"math"
	"testing"
	"time"

	"quizportal-backend/internal/model"
)

func TestSummarizeZeroHistory(t *testing.T) {
	svc := NewAnalyticsService(&fakeAttemptRepo{})

	summary, err := svc.Summarize(1)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if summary.Overall.TotalAttempts != 0 || summary.Overall.AverageScore != 0 || summary.Overall.Improvement != 0 {
		t.Errorf("overall stats not zeroed: %+v", summary.Overall)
	}
	if len(summary.RecentActivity) != 0 {
		t.Errorf("got %d recent activities, want 0", len(summary.RecentActivity))
	}
	for _, c := range model.AllCategories() {
		stats, ok := summary.CategoryWise[c]
		if !ok {
			t.Fatalf("category %s missing from summary", c)
		}
		if stats.TotalAttempts != 0 || stats.AverageScore != 0 || stats.BestScore != 0 {
			t.Errorf("category %s not zeroed: %+v", c, stats)
		}
		if len(stats.RecentScores) != 0 {
			t.Errorf("category %s has recent scores %v, want none", c, stats.RecentScores)
		}
	}
}

func TestSummarizeSingleCategoryIsolation(t *testing.T) {
	now := time.Now()
	repo := &fakeAttemptRepo{attempts: []model.QuizAttempt{
		testAttempt(2, 1, model.CategoryTechnical, 8, 10, now),
		testAttempt(1, 1, model.CategoryTechnical, 6, 10, now.Add(-time.Hour)),
	}}

	summary, err := NewAnalyticsService(repo).Summarize(1)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	tech := summary.CategoryWise[model.CategoryTechnical]
	if tech.TotalAttempts != 2 || tech.TotalCorrect != 14 || tech.TotalQuestions != 20 {
		t.Errorf("technical stats wrong: %+v", tech)
	}
	if tech.AverageScore != 70 {
		t.Errorf("got average %v, want 70", tech.AverageScore)
	}
	if tech.BestScore != 80 {
		t.Errorf("got best %v, want 80", tech.BestScore)
	}

	for _, c := range model.AllCategories() {
		if c == model.CategoryTechnical {
			continue
		}
		if summary.CategoryWise[c].TotalAttempts != 0 {
			t.Errorf("category %s should have zero attempts", c)
		}
	}
}

// The category average is question-weighted, which diverges from the mean of
// per-attempt percentages when question counts differ.
func TestSummarizeAverageIsQuestionWeighted(t *testing.T) {
	now := time.Now()
	repo := &fakeAttemptRepo{attempts: []model.QuizAttempt{
		testAttempt(2, 1, model.CategoryAptitude, 2, 2, now),                // 100%
		testAttempt(1, 1, model.CategoryAptitude, 5, 10, now.Add(-time.Hour)), // 50%
	}}

	summary, err := NewAnalyticsService(repo).Summarize(1)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	apt := summary.CategoryWise[model.CategoryAptitude]
	want := float64(7) / float64(12) * 100
	if math.Abs(apt.AverageScore-want) > 1e-9 {
		t.Errorf("got average %v, want question-weighted %v (not 75)", apt.AverageScore, want)
	}
}

func TestImprovementWindows(t *testing.T) {
	now := time.Now()

	buildAttempts := func(pcts []float64) []model.QuizAttempt {
		out := make([]model.QuizAttempt, 0, len(pcts))
		for i, pct := range pcts {
			// 10 questions per attempt keeps percentages exact.
			out = append(out, testAttempt(uint(len(pcts)-i), 1, model.CategoryAptitude,
				int(pct/10), 10, now.Add(-time.Duration(i)*time.Hour)))
		}
		return out
	}

	cases := []struct {
		name string
		pcts []float64 // newest first
		want float64
	}{
		{"single attempt", []float64{90}, 0},
		{"no second window", []float64{90, 80, 70}, 0},
		{"full and partial windows", []float64{90, 80, 70, 60, 50, 40, 30}, 70 - 35},
		{"two full windows", []float64{100, 100, 100, 100, 100, 50, 50, 50, 50, 50}, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeAttemptRepo{attempts: buildAttempts(tc.pcts)}
			summary, err := NewAnalyticsService(repo).Summarize(1)
			if err != nil {
				t.Fatalf("Summarize: %v", err)
			}
			if math.Abs(summary.Overall.Improvement-tc.want) > 1e-9 {
				t.Errorf("got improvement %v, want %v", summary.Overall.Improvement, tc.want)
			}
		})
	}
}

func TestSummarizeRecentActivity(t *testing.T) {
	now := time.Now()
	var attempts []model.QuizAttempt
	for i := 0; i < 7; i++ {
		attempts = append(attempts, testAttempt(uint(7-i), 1, model.CategoryAptitude,
			7-i, 10, now.Add(-time.Duration(i)*time.Hour)))
	}
	repo := &fakeAttemptRepo{attempts: attempts}

	summary, err := NewAnalyticsService(repo).Summarize(1)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if len(summary.RecentActivity) != 5 {
		t.Fatalf("got %d recent activities, want 5", len(summary.RecentActivity))
	}
	if summary.RecentActivity[0].AttemptID != 7 {
		t.Errorf("recent activity should start with the newest attempt, got %d", summary.RecentActivity[0].AttemptID)
	}
	if summary.RecentActivity[0].Score != 70 {
		t.Errorf("got per-attempt score %v, want 70", summary.RecentActivity[0].Score)
	}
}
