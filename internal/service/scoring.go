package service

import (
	"fmt"

	"quizportal-backend/internal/model"
)

// QuestionResult is one graded answer, with the canonical selected index.
type QuestionResult struct {
	QuestionID     uint `json:"question_id"`
	SelectedAnswer int  `json:"selected_answer"`
	IsCorrect      bool `json:"is_correct"`
}

// ScoreResult is the outcome of grading one submission.
type ScoreResult struct {
	Results        []QuestionResult `json:"results"`
	TotalCorrect   int              `json:"total_correct"`
	TotalQuestions int              `json:"total_questions"`
	TotalScore     float64          `json:"total_score"`
}

// ScoringEngine grades canonical answers against the question bank. It is a
// pure computation: persistence is the caller's responsibility.
type ScoringEngine interface {
	Score(questions []model.Question, answers []SubmittedAnswer) (*ScoreResult, error)
}

type scoringEngine struct{}

func NewScoringEngine() ScoringEngine {
	return &scoringEngine{}
}

// Score validates every answer against its question and computes per-question
// correctness plus the aggregate percentage. An answer is correct iff it is
// not -1 (unanswered) and equals the question's canonical correct index.
func (e *scoringEngine) Score(questions []model.Question, answers []SubmittedAnswer) (*ScoreResult, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("%w: no answers submitted", ErrInvalidSubmission)
	}

	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	results := make([]QuestionResult, 0, len(answers))
	totalCorrect := 0
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown question %d", ErrInvalidSubmission, a.QuestionID)
		}
		if a.SelectedAnswer < -1 || a.SelectedAnswer >= len(q.Options) {
			return nil, fmt.Errorf("%w: answer %d out of range for question %d", ErrInvalidSubmission, a.SelectedAnswer, a.QuestionID)
		}

		isCorrect := a.SelectedAnswer != -1 && a.SelectedAnswer == q.CorrectAnswer
		if isCorrect {
			totalCorrect++
		}
		results = append(results, QuestionResult{
			QuestionID:     a.QuestionID,
			SelectedAnswer: a.SelectedAnswer,
			IsCorrect:      isCorrect,
		})
	}

	total := len(answers)
	return &ScoreResult{
		Results:        results,
		TotalCorrect:   totalCorrect,
		TotalQuestions: total,
		TotalScore:     float64(totalCorrect) / float64(total) * 100,
	}, nil
}
