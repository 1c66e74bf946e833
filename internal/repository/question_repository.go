package repository

import (
	"errors"

	"gorm.io/gorm"

	"quizportal-backend/internal/db"
	"quizportal-backend/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

type QuestionRepository interface {
	GetQuestionsByCategory(category model.Category, difficulty string, limit int) ([]model.Question, error)
	GetQuestionsByIDs(ids []uint) ([]model.Question, error)
	GetCategories() ([]model.Category, error)
	CountQuestions() (int64, error)
	CreateQuestions(questions []model.Question) error
}

type questionRepository struct{}

func NewQuestionRepository() QuestionRepository {
	return &questionRepository{}
}

// GetQuestionsByCategory fetches up to limit random questions in a category,
// optionally filtered by difficulty.
func (r *questionRepository) GetQuestionsByCategory(category model.Category, difficulty string, limit int) ([]model.Question, error) {
	var questions []model.Question
	q := db.GetDB().Where("category = ?", category)
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}
	err := q.Order("RANDOM()").Limit(limit).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) GetQuestionsByIDs(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	err := db.GetDB().Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) GetCategories() ([]model.Category, error) {
	var categories []model.Category
	err := db.GetDB().Model(&model.Question{}).Distinct("category").Pluck("category", &categories).Error
	return categories, err
}

func (r *questionRepository) CountQuestions() (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.Question{}).Count(&count).Error
	return count, err
}

func (r *questionRepository) CreateQuestions(questions []model.Question) error {
	return db.GetDB().Create(&questions).Error
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
