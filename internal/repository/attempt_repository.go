package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"quizportal-backend/internal/db"
	"quizportal-backend/internal/model"
)

// ErrDailyCapExceeded signals that the (user, category) pair already holds the
// maximum number of attempts for the current day. The admission re-check lives
// inside the insert transaction, so two racing submissions cannot both pass.
var ErrDailyCapExceeded = errors.New("daily attempt cap exceeded")

type AttemptRepository interface {
	// CountBetween counts attempts for (user, category) whose start time falls
	// in [from, to).
	CountBetween(userID uint, category model.Category, from, to time.Time) (int64, error)
	// CreateWithDailyCap inserts the attempt only if the (user, category, day)
	// count is still below cap, atomically with the count re-check.
	CreateWithDailyCap(attempt *model.QuizAttempt, cap int) error
	GetAttemptsByUser(userID uint) ([]model.QuizAttempt, error)
	GetAttemptsPage(userID uint, page, limit int) ([]model.QuizAttempt, int64, error)
	GetAttemptByID(id uint) (*model.QuizAttempt, error)
}

type attemptRepository struct{}

func NewAttemptRepository() AttemptRepository {
	return &attemptRepository{}
}

func (r *attemptRepository) CountBetween(userID uint, category model.Category, from, to time.Time) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.QuizAttempt{}).
		Where("user_id = ? AND category = ? AND start_time >= ? AND start_time < ?", userID, category, from, to).
		Count(&count).Error
	return count, err
}

func (r *attemptRepository) CreateWithDailyCap(attempt *model.QuizAttempt, cap int) error {
	dayStart := startOfDay(attempt.StartTime)
	dayEnd := dayStart.Add(24 * time.Hour)

	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.QuizAttempt{}).
			Where("user_id = ? AND category = ? AND start_time >= ? AND start_time < ?",
				attempt.UserID, attempt.Category, dayStart, dayEnd).
			Count(&count).Error; err != nil {
			return err
		}
		if int(count) >= cap {
			return ErrDailyCapExceeded
		}
		return tx.Create(attempt).Error
	})
}

func (r *attemptRepository) GetAttemptsByUser(userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := db.GetDB().Preload("Questions").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) GetAttemptsPage(userID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	var total int64
	if err := db.GetDB().Model(&model.QuizAttempt{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attempts []model.QuizAttempt
	err := db.GetDB().Preload("Questions").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&attempts).Error
	return attempts, total, err
}

func (r *attemptRepository) GetAttemptByID(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := db.GetDB().Preload("Questions").First(&attempt, id).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &attempt, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
