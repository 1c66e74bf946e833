package model

import (
	"time"

	"gorm.io/datatypes"
)

// Category is the closed set of quiz subjects. It is shared by the question
// bank, attempt records and analytics so a free-form string can never leak in.
type Category string

const (
	CategoryAptitude         Category = "Aptitude"
	CategoryLogicalReasoning Category = "Logical Reasoning"
	CategoryTechnical        Category = "Technical"
	CategoryGeneralKnowledge Category = "General Knowledge"
)

// AllCategories returns the fixed category set in display order.
func AllCategories() []Category {
	return []Category{
		CategoryAptitude,
		CategoryLogicalReasoning,
		CategoryTechnical,
		CategoryGeneralKnowledge,
	}
}

// ValidCategory reports whether c belongs to the fixed category set.
func ValidCategory(c Category) bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Difficulty tiers for questions.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Question is a bank entry. CorrectAnswer is the 0-based index into Options
// and is stripped before questions are served to quiz takers.
type Question struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	Text          string                      `json:"question_text" gorm:"not null"`
	Options       datatypes.JSONSlice[string] `json:"options" gorm:"not null"`
	CorrectAnswer int                         `json:"correct_answer,omitempty" gorm:"not null"`
	Category      Category                    `json:"category" gorm:"not null;index"`
	Difficulty    string                      `json:"difficulty" gorm:"default:'Medium'"`
	Explanation   string                      `json:"explanation,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// QuizAttempt is the append-only unit of history: one immutable row per
// accepted submission. It is never updated after creation.
type QuizAttempt struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"not null;index:idx_attempts_user_category"`
	Category       Category        `json:"category" gorm:"not null;index:idx_attempts_user_category"`
	Questions      []AttemptAnswer `json:"questions" gorm:"foreignKey:AttemptID"`
	TotalScore     float64         `json:"total_score" gorm:"not null"`
	TotalQuestions int             `json:"total_questions" gorm:"not null"`
	TimeTaken      int             `json:"time_taken" gorm:"not null"` // seconds
	StartTime      time.Time       `json:"start_time" gorm:"not null;index"`
	EndTime        time.Time       `json:"end_time" gorm:"not null"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AttemptAnswer records one question's outcome inside an attempt.
// SelectedAnswer is canonical (unshuffled); -1 means unanswered.
type AttemptAnswer struct {
	ID             uint `json:"-" gorm:"primaryKey"`
	AttemptID      uint `json:"-" gorm:"not null;index"`
	QuestionID     uint `json:"question_id" gorm:"not null"`
	SelectedAnswer int  `json:"selected_answer" gorm:"not null"`
	IsCorrect      bool `json:"is_correct" gorm:"not null"`
}

// CorrectCount returns the number of correctly answered questions.
func (a *QuizAttempt) CorrectCount() int {
	n := 0
	for _, q := range a.Questions {
		if q.IsCorrect {
			n++
		}
	}
	return n
}

// Percentage returns the attempt's per-attempt score for display purposes.
func (a *QuizAttempt) Percentage() float64 {
	if len(a.Questions) == 0 {
		return a.TotalScore
	}
	return float64(a.CorrectCount()) / float64(len(a.Questions)) * 100
}

// Certificate is issued at most once per attempt, for scores at or above the
// pass mark. CertificateNumber is globally unique (CERT-YYYYMM-NNNN).
type Certificate struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"user_id" gorm:"not null;index"`
	Username          string    `json:"username"` // denormalized from the identity claims for rendering
	AttemptID         uint      `json:"attempt_id" gorm:"not null;uniqueIndex"`
	Category          Category  `json:"category" gorm:"not null"`
	Score             float64   `json:"score" gorm:"not null"`
	IssueDate         time.Time `json:"issue_date"`
	CertificateNumber string    `json:"certificate_number" gorm:"not null;uniqueIndex"`
	CreatedAt         time.Time `json:"created_at"`
}

// CertificateCounter is the single-row sequence behind certificate numbering.
// It is incremented under a row lock so concurrent issuance cannot collide.
type CertificateCounter struct {
	ID       uint  `gorm:"primaryKey"`
	Sequence int64 `gorm:"not null;default:0"`
}
