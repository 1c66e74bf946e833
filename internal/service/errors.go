package service

import (
	"errors"
	"fmt"
	"time"
)

// Domain error values. Controllers map these onto HTTP status codes; services
// wrap them with fmt.Errorf("%w") to attach detail.
var (
	// ErrInvalidSubmission covers malformed submission shapes, unknown
	// question ids and out-of-range answer indices.
	ErrInvalidSubmission = errors.New("invalid submission")

	// ErrNoQuestions means the category has no matching questions.
	ErrNoQuestions = errors.New("no questions found for this category")

	// ErrCertificateNotFound means the requested certificate does not exist.
	ErrCertificateNotFound = errors.New("certificate not found")

	// ErrAttemptNotFound means the requested attempt does not exist.
	ErrAttemptNotFound = errors.New("quiz attempt not found")

	// ErrSessionInvalid means the quiz session token is missing, expired or
	// was tampered with.
	ErrSessionInvalid = errors.New("invalid or expired quiz session")
)

// AttemptLimitError is returned when the daily attempt cap is reached. It is
// a rate-limit condition, not a fatal error: NextReset tells the caller when
// a new attempt becomes possible.
type AttemptLimitError struct {
	NextReset time.Time
}

func (e *AttemptLimitError) Error() string {
	return fmt.Sprintf("daily attempt limit reached, next attempt possible at %s",
		e.NextReset.Format(time.RFC3339))
}

// IsAttemptLimit reports whether err is an attempt-limit condition and
// returns the carried reset time.
func IsAttemptLimit(err error) (*AttemptLimitError, bool) {
	var limitErr *AttemptLimitError
	if errors.As(err, &limitErr) {
		return limitErr, true
	}
	return nil, false
}
