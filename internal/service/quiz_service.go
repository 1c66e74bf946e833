package service

import (
	"errors"
	"fmt"
	"time"

	"quizportal-backend/internal/model"
	"quizportal-backend/internal/repository"
	"quizportal-backend/utilities"
)

// QuizSheet is what a quiz taker receives when fetching questions.
type QuizSheet struct {
	Questions    []DisplayQuestion `json:"questions"`
	Session      string            `json:"session"`
	AttemptsLeft int               `json:"attempts_left"`
}

// SubmissionRequest is one completed quiz as sent by the client. Answers are
// display-order indices; Session is the signed token from the matching fetch.
type SubmissionRequest struct {
	Category  model.Category    `json:"category" binding:"required"`
	Session   string            `json:"session" binding:"required"`
	Answers   []SubmittedAnswer `json:"answers" binding:"required"`
	TimeTaken int               `json:"time_taken"`
	StartTime time.Time         `json:"start_time" binding:"required"`
	EndTime   time.Time         `json:"end_time" binding:"required"`
}

// CertificateInfo is the issuance summary embedded in a submission response.
type CertificateInfo struct {
	ID                uint   `json:"id"`
	CertificateNumber string `json:"certificate_number"`
}

type SubmissionResult struct {
	AttemptID      uint             `json:"attempt_id"`
	Category       model.Category   `json:"category"`
	TotalQuestions int              `json:"total_questions"`
	CorrectAnswers int              `json:"correct_answers"`
	Score          float64          `json:"score"`
	TimeTaken      int              `json:"time_taken"`
	Certificate    *CertificateInfo `json:"certificate,omitempty"`
}

// QuizService orchestrates the attempt lifecycle: gate, bank, shuffle,
// scoring, persistence and best-effort certificate issuance.
type QuizService interface {
	GetCategories() ([]model.Category, error)
	GetQuestions(userID uint, category model.Category, difficulty string, limit int, now time.Time) (*QuizSheet, error)
	Submit(userID uint, username string, req SubmissionRequest, now time.Time) (*SubmissionResult, error)
	GetHistory(userID uint, page, limit int) ([]model.QuizAttempt, int64, error)
}

type quizService struct {
	questions repository.QuestionRepository
	attempts  repository.AttemptRepository
	gate      AttemptGate
	codec     ShuffleCodec
	scorer    ScoringEngine
	certs     CertificateService
}

func NewQuizService(
	questions repository.QuestionRepository,
	attempts repository.AttemptRepository,
	gate AttemptGate,
	codec ShuffleCodec,
	scorer ScoringEngine,
	certs CertificateService,
) QuizService {
	return &quizService{
		questions: questions,
		attempts:  attempts,
		gate:      gate,
		codec:     codec,
		scorer:    scorer,
		certs:     certs,
	}
}

func (s *quizService) GetCategories() ([]model.Category, error) {
	return s.questions.GetCategories()
}

// GetQuestions authorizes the user for the category, pulls a random question
// set without correct answers and returns a freshly shuffled presentation.
func (s *quizService) GetQuestions(userID uint, category model.Category, difficulty string, limit int, now time.Time) (*QuizSheet, error) {
	if !model.ValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidSubmission, category)
	}

	admission, err := s.gate.Authorize(userID, category, now)
	if err != nil {
		return nil, err
	}
	if !admission.Allowed {
		return nil, &AttemptLimitError{NextReset: admission.NextReset}
	}

	questions, err := s.questions.GetQuestionsByCategory(category, difficulty, limit)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	presentation, err := s.codec.Present(userID, category, questions)
	if err != nil {
		return nil, err
	}

	return &QuizSheet{
		Questions:    presentation.Questions,
		Session:      presentation.Session,
		AttemptsLeft: admission.AttemptsLeft,
	}, nil
}

// Submit grades one quiz submission and persists it as an immutable attempt.
// The daily cap is re-checked here and again atomically with the insert, so
// neither a stalled client nor two concurrent tabs can exceed it.
func (s *quizService) Submit(userID uint, username string, req SubmissionRequest, now time.Time) (*SubmissionResult, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	admission, err := s.gate.Authorize(userID, req.Category, now)
	if err != nil {
		return nil, err
	}
	if !admission.Allowed {
		return nil, &AttemptLimitError{NextReset: admission.NextReset}
	}

	canonical, err := s.codec.ToCanonical(req.Session, userID, req.Category, req.Answers)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(canonical))
	for _, a := range canonical {
		ids = append(ids, a.QuestionID)
	}
	questions, err := s.questions.GetQuestionsByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(questions) != len(canonical) {
		return nil, fmt.Errorf("%w: expected %d questions, found %d", ErrInvalidSubmission, len(canonical), len(questions))
	}

	score, err := s.scorer.Score(questions, canonical)
	if err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		UserID:         userID,
		Category:       req.Category,
		TotalScore:     score.TotalScore,
		TotalQuestions: score.TotalQuestions,
		TimeTaken:      req.TimeTaken,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
	}
	for _, r := range score.Results {
		attempt.Questions = append(attempt.Questions, model.AttemptAnswer{
			QuestionID:     r.QuestionID,
			SelectedAnswer: r.SelectedAnswer,
			IsCorrect:      r.IsCorrect,
		})
	}

	if err := s.attempts.CreateWithDailyCap(attempt, s.gate.Cap()); err != nil {
		if errors.Is(err, repository.ErrDailyCapExceeded) {
			return nil, &AttemptLimitError{NextReset: admission.NextReset}
		}
		return nil, err
	}

	result := &SubmissionResult{
		AttemptID:      attempt.ID,
		Category:       req.Category,
		TotalQuestions: score.TotalQuestions,
		CorrectAnswers: score.TotalCorrect,
		Score:          score.TotalScore,
		TimeTaken:      req.TimeTaken,
	}

	// Best effort: a failed issuance is logged, the scored attempt is still
	// returned as a successful submission.
	cert, err := s.certs.IssueIfEligible(attempt, username)
	if err != nil {
		utilities.Error("certificate issuance failed for attempt %d: %v", attempt.ID, err)
	} else if cert != nil {
		result.Certificate = &CertificateInfo{ID: cert.ID, CertificateNumber: cert.CertificateNumber}
	}

	return result, nil
}

func (s *quizService) GetHistory(userID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.attempts.GetAttemptsPage(userID, page, limit)
}

func validateSubmission(req SubmissionRequest) error {
	if !model.ValidCategory(req.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidSubmission, req.Category)
	}
	if len(req.Answers) == 0 {
		return fmt.Errorf("%w: no answers submitted", ErrInvalidSubmission)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() || req.EndTime.Before(req.StartTime) {
		return fmt.Errorf("%w: invalid start/end times", ErrInvalidSubmission)
	}
	if req.TimeTaken < 0 {
		return fmt.Errorf("%w: negative time taken", ErrInvalidSubmission)
	}
	seen := make(map[uint]struct{}, len(req.Answers))
	for _, a := range req.Answers {
		if _, dup := seen[a.QuestionID]; dup {
			return fmt.Errorf("%w: duplicate answer for question %d", ErrInvalidSubmission, a.QuestionID)
		}
		seen[a.QuestionID] = struct{}{}
	}
	return nil
}
