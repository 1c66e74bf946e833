package service

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"quizportal-backend/internal/model"
	"quizportal-backend/internal/repository"
)

type fakeQuestionRepo struct {
	questions []model.Question

	byCategoryCalls int
	byIDsCalls      int
}

func (f *fakeQuestionRepo) GetQuestionsByCategory(category model.Category, difficulty string, limit int) ([]model.Question, error) {
	f.byCategoryCalls++
	out := make([]model.Question, 0)
	for _, q := range f.questions {
		if q.Category != category {
			continue
		}
		if difficulty != "" && q.Difficulty != difficulty {
			continue
		}
		out = append(out, q)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) GetQuestionsByIDs(ids []uint) ([]model.Question, error) {
	f.byIDsCalls++
	want := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]model.Question, 0, len(ids))
	for _, q := range f.questions {
		if _, ok := want[q.ID]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) GetCategories() ([]model.Category, error) {
	seen := map[model.Category]struct{}{}
	out := []model.Category{}
	for _, q := range f.questions {
		if _, ok := seen[q.Category]; !ok {
			seen[q.Category] = struct{}{}
			out = append(out, q.Category)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) CountQuestions() (int64, error) {
	return int64(len(f.questions)), nil
}

func (f *fakeQuestionRepo) CreateQuestions(questions []model.Question) error {
	f.questions = append(f.questions, questions...)
	return nil
}

type fakeAttemptRepo struct {
	attempts []model.QuizAttempt // newest first
	nextID   uint

	createCalls int
	countErr    error
}

func (f *fakeAttemptRepo) CountBetween(userID uint, category model.Category, from, to time.Time) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	var count int64
	for _, a := range f.attempts {
		if a.UserID == userID && a.Category == category &&
			!a.StartTime.Before(from) && a.StartTime.Before(to) {
			count++
		}
	}
	return count, nil
}

func (f *fakeAttemptRepo) CreateWithDailyCap(attempt *model.QuizAttempt, cap int) error {
	f.createCalls++
	dayStart := time.Date(attempt.StartTime.Year(), attempt.StartTime.Month(), attempt.StartTime.Day(),
		0, 0, 0, 0, attempt.StartTime.Location())
	count, err := f.CountBetween(attempt.UserID, attempt.Category, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return err
	}
	if int(count) >= cap {
		return repository.ErrDailyCapExceeded
	}
	f.nextID++
	attempt.ID = f.nextID
	attempt.CreatedAt = time.Now()
	// prepend: the fake keeps newest first like the real repository's ordering
	f.attempts = append([]model.QuizAttempt{*attempt}, f.attempts...)
	return nil
}

func (f *fakeAttemptRepo) GetAttemptsByUser(userID uint) ([]model.QuizAttempt, error) {
	out := make([]model.QuizAttempt, 0)
	for _, a := range f.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttemptRepo) GetAttemptsPage(userID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	all, _ := f.GetAttemptsByUser(userID)
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []model.QuizAttempt{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeAttemptRepo) GetAttemptByID(id uint) (*model.QuizAttempt, error) {
	for i := range f.attempts {
		if f.attempts[i].ID == id {
			return &f.attempts[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeCertificateRepo struct {
	byAttempt map[uint]*model.Certificate
	sequence  int64
	nextID    uint

	createErr   error
	createCalls int
}

func newFakeCertificateRepo() *fakeCertificateRepo {
	return &fakeCertificateRepo{byAttempt: make(map[uint]*model.Certificate)}
}

func (f *fakeCertificateRepo) GetByAttemptID(attemptID uint) (*model.Certificate, error) {
	cert, ok := f.byAttempt[attemptID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cert, nil
}

func (f *fakeCertificateRepo) GetByID(id uint) (*model.Certificate, error) {
	for _, cert := range f.byAttempt {
		if cert.ID == id {
			return cert, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCertificateRepo) GetByUser(userID uint) ([]model.Certificate, error) {
	out := []model.Certificate{}
	for _, cert := range f.byAttempt {
		if cert.UserID == userID {
			out = append(out, *cert)
		}
	}
	return out, nil
}

func (f *fakeCertificateRepo) CreateWithNumber(cert *model.Certificate) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.sequence++
	f.nextID++
	cert.ID = f.nextID
	cert.CertificateNumber = fmt.Sprintf("CERT-%d%02d-%04d",
		cert.IssueDate.Year(), int(cert.IssueDate.Month()), f.sequence)
	f.byAttempt[cert.AttemptID] = cert
	return nil
}

// testQuestion builds a bank entry with the given options.
func testQuestion(id uint, category model.Category, correct int, options ...string) model.Question {
	return model.Question{
		ID:            id,
		Text:          fmt.Sprintf("question %d", id),
		Options:       datatypes.NewJSONSlice(options),
		CorrectAnswer: correct,
		Category:      category,
		Difficulty:    model.DifficultyMedium,
	}
}

// testAttempt builds an attempt with total questions and correct count.
func testAttempt(id, userID uint, category model.Category, correct, total int, end time.Time) model.QuizAttempt {
	answers := make([]model.AttemptAnswer, 0, total)
	for i := 0; i < total; i++ {
		answers = append(answers, model.AttemptAnswer{
			QuestionID:     uint(i + 1),
			SelectedAnswer: 0,
			IsCorrect:      i < correct,
		})
	}
	return model.QuizAttempt{
		ID:             id,
		UserID:         userID,
		Category:       category,
		Questions:      answers,
		TotalScore:     float64(correct) / float64(total) * 100,
		TotalQuestions: total,
		StartTime:      end.Add(-10 * time.Minute),
		EndTime:        end,
		CreatedAt:      end,
	}
}
