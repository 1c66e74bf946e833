package service

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"quizportal-backend/internal/model"
)

// DisplayQuestion is a question as presented to the quiz taker: options in
// shuffled order and no correct-answer field.
type DisplayQuestion struct {
	ID         uint           `json:"id"`
	Text       string         `json:"question_text"`
	Options    []string       `json:"options"`
	Category   model.Category `json:"category"`
	Difficulty string         `json:"difficulty"`
}

// Presentation is one freshly shuffled serving of questions. Session is a
// signed token carrying the reverse maps; the client round-trips it on
// submission and cannot alter it without breaking the signature.
type Presentation struct {
	Questions []DisplayQuestion `json:"questions"`
	Session   string            `json:"session"`
}

// SubmittedAnswer is one answer as sent by the client. SelectedAnswer is a
// display-order index, or -1 for an unanswered question.
type SubmittedAnswer struct {
	QuestionID     uint `json:"question_id" binding:"required"`
	SelectedAnswer int  `json:"selected_answer"`
}

// ShuffleCodec randomizes question and option order per presentation and maps
// submitted display indices back to canonical ones. Grading always happens
// against canonical data, so a client fabricating its own indices can only
// hurt itself.
type ShuffleCodec interface {
	Present(userID uint, category model.Category, questions []model.Question) (*Presentation, error)
	// ToCanonical rejects sessions minted for a different user or category.
	ToCanonical(session string, userID uint, category model.Category, answers []SubmittedAnswer) ([]SubmittedAnswer, error)
}

type shuffleCodec struct {
	secret []byte
	ttl    time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewShuffleCodec(secret []byte, ttl time.Duration) ShuffleCodec {
	return &shuffleCodec{
		secret: secret,
		ttl:    ttl,
		rng:    rand.New(rand.NewSource(cryptoSeed())),
	}
}

// cryptoSeed seeds the permutation rng from the OS entropy source so shuffle
// orders cannot be predicted from process start time.
func cryptoSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// sessionClaims carries the per-question reverse maps: for each question id,
// reverse[displayIdx] == canonicalIdx.
type sessionClaims struct {
	UserID   uint             `json:"uid"`
	Category model.Category   `json:"cat"`
	Reverse  map[uint][]int   `json:"rev"`
	jwt.RegisteredClaims
}

func (s *shuffleCodec) Present(userID uint, category model.Category, questions []model.Question) (*Presentation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.permutation(len(questions))
	display := make([]DisplayQuestion, 0, len(questions))
	reverse := make(map[uint][]int, len(questions))

	for _, idx := range order {
		q := questions[idx]
		optOrder := s.permutation(len(q.Options))

		options := make([]string, len(q.Options))
		revMap := make([]int, len(q.Options))
		for displayIdx, canonicalIdx := range optOrder {
			options[displayIdx] = q.Options[canonicalIdx]
			revMap[displayIdx] = canonicalIdx
		}

		reverse[q.ID] = revMap
		display = append(display, DisplayQuestion{
			ID:         q.ID,
			Text:       q.Text,
			Options:    options,
			Category:   q.Category,
			Difficulty: q.Difficulty,
		})
	}

	now := time.Now()
	claims := sessionClaims{
		UserID:   userID,
		Category: category,
		Reverse:  reverse,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign quiz session: %w", err)
	}

	return &Presentation{Questions: display, Session: token}, nil
}

func (s *shuffleCodec) ToCanonical(session string, userID uint, category model.Category, answers []SubmittedAnswer) ([]SubmittedAnswer, error) {
	token, err := jwt.ParseWithClaims(session, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrSessionInvalid
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.UserID != userID || claims.Category != category {
		return nil, ErrSessionInvalid
	}

	canonical := make([]SubmittedAnswer, 0, len(answers))
	for _, a := range answers {
		revMap, ok := claims.Reverse[a.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: question %d was not part of this session", ErrInvalidSubmission, a.QuestionID)
		}

		// Unanswered questions pass through untouched.
		if a.SelectedAnswer == -1 {
			canonical = append(canonical, a)
			continue
		}
		if a.SelectedAnswer < 0 || a.SelectedAnswer >= len(revMap) {
			return nil, fmt.Errorf("%w: answer %d out of range for question %d", ErrInvalidSubmission, a.SelectedAnswer, a.QuestionID)
		}
		canonical = append(canonical, SubmittedAnswer{
			QuestionID:     a.QuestionID,
			SelectedAnswer: revMap[a.SelectedAnswer],
		})
	}
	return canonical, nil
}

// permutation returns a Fisher-Yates shuffled index slice [0, n).
// Caller must hold s.mu.
func (s *shuffleCodec) permutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}
