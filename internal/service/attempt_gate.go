package service

import (
	"time"

	"quizportal-backend/internal/model"
	"quizportal-backend/internal/repository"
)

// Admission is the gate's verdict for one (user, category) pair today.
type Admission struct {
	Allowed      bool
	AttemptsLeft int
	NextReset    time.Time
}

// AttemptGate enforces the daily attempt cap. Authorize is advisory (used at
// fetch time so clients can display remaining attempts); the binding decision
// happens inside AttemptRepository.CreateWithDailyCap at submission time.
type AttemptGate interface {
	Authorize(userID uint, category model.Category, now time.Time) (*Admission, error)
	Cap() int
}

type attemptGate struct {
	attempts repository.AttemptRepository
	cap      int
}

func NewAttemptGate(attempts repository.AttemptRepository, cap int) AttemptGate {
	return &attemptGate{attempts: attempts, cap: cap}
}

func (g *attemptGate) Cap() int {
	return g.cap
}

// Authorize counts attempts whose start time falls within the current
// server-local calendar day and compares against the cap.
func (g *attemptGate) Authorize(userID uint, category model.Category, now time.Time) (*Admission, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	count, err := g.attempts.CountBetween(userID, category, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	left := g.cap - int(count)
	if left < 0 {
		left = 0
	}
	return &Admission{
		Allowed:      int(count) < g.cap,
		AttemptsLeft: left,
		NextReset:    dayEnd,
	}, nil
}
