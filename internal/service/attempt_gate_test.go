package service

import (
	"testing"
	"time"

	"quizportal-backend/internal/model"
)

func TestAttemptGateCountsDownToZero(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	repo := &fakeAttemptRepo{}
	gate := NewAttemptGate(repo, 3)

	for i, wantLeft := range []int{3, 2, 1} {
		admission, err := gate.Authorize(1, model.CategoryAptitude, now)
		if err != nil {
			t.Fatalf("Authorize: %v", err)
		}
		if !admission.Allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		if admission.AttemptsLeft != wantLeft {
			t.Fatalf("attempt %d: got %d attempts left, want %d", i+1, admission.AttemptsLeft, wantLeft)
		}

		a := testAttempt(uint(i+1), 1, model.CategoryAptitude, 1, 2, now)
		a.StartTime = now
		repo.attempts = append(repo.attempts, a)
	}

	admission, err := gate.Authorize(1, model.CategoryAptitude, now)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if admission.Allowed {
		t.Error("4th attempt should be rejected")
	}
	if admission.AttemptsLeft != 0 {
		t.Errorf("got %d attempts left, want 0", admission.AttemptsLeft)
	}
	if !admission.NextReset.After(now) {
		t.Errorf("next reset %v should be after now %v", admission.NextReset, now)
	}
	if admission.NextReset.Sub(now) > 24*time.Hour {
		t.Errorf("next reset %v is more than 24h away", admission.NextReset)
	}
}

func TestAttemptGateIgnoresOtherCategoriesAndDays(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	repo := &fakeAttemptRepo{}

	// Three Technical attempts today and three Aptitude attempts yesterday.
	for i := 0; i < 3; i++ {
		a := testAttempt(uint(i+1), 1, model.CategoryTechnical, 1, 2, now)
		a.StartTime = now
		repo.attempts = append(repo.attempts, a)

		b := testAttempt(uint(i+10), 1, model.CategoryAptitude, 1, 2, now)
		b.StartTime = now.Add(-24 * time.Hour)
		repo.attempts = append(repo.attempts, b)
	}

	gate := NewAttemptGate(repo, 3)
	admission, err := gate.Authorize(1, model.CategoryAptitude, now)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if !admission.Allowed || admission.AttemptsLeft != 3 {
		t.Errorf("got allowed=%v left=%d, want a clean slate for today's Aptitude",
			admission.Allowed, admission.AttemptsLeft)
	}
}

func TestAttemptGateAttemptsLeftNeverNegative(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	repo := &fakeAttemptRepo{}
	for i := 0; i < 5; i++ {
		a := testAttempt(uint(i+1), 1, model.CategoryAptitude, 1, 2, now)
		a.StartTime = now
		repo.attempts = append(repo.attempts, a)
	}

	admission, err := NewAttemptGate(repo, 3).Authorize(1, model.CategoryAptitude, now)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if admission.AttemptsLeft != 0 {
		t.Errorf("got %d attempts left, want 0", admission.AttemptsLeft)
	}
}
