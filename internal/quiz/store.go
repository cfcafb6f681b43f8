package quiz

import (
	"context"
	"errors"
)

// Attempt statuses.
const (
	StatusInProgress = "in_progress"
	StatusSubmitted  = "submitted"
	StatusAbandoned  = "abandoned"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrUnknownQuestion  = errors.New("question not part of quiz")
	ErrAlreadyAnswered  = errors.New("question already answered")
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	ErrQuestionExpired  = errors.New("question time expired")
	ErrAttemptClosed    = errors.New("attempt is not in progress")
)

type AttemptListOpts struct {
	QuizID string
	UserID string
	Status string
	Limit  int
	Offset int
}

type Store interface {
	PutQuiz(ctx context.Context, q Quiz) error
	// GetQuiz is student-safe: correct answers are stripped.
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	// GetQuizFull returns the quiz with answer keys, for grading and admin use.
	GetQuizFull(ctx context.Context, id string) (Quiz, error)
	ListQuizzes(ctx context.Context, courseID string, limit, offset int) ([]QuizSummary, error)

	NewAttempt(ctx context.Context, quizID, userID string) (Attempt, error)
	// ViewQuestion starts (or restarts) the per-question countdown.
	ViewQuestion(ctx context.Context, attemptID, questionID string) (Attempt, error)
	// SaveAnswer records a selection and its correctness verdict. Each
	// question accepts exactly one answer.
	SaveAnswer(ctx context.Context, attemptID, questionID, selected string) (Attempt, error)
	// Submit finalizes the attempt and computes the score. Idempotent.
	Submit(ctx context.Context, attemptID string) (Attempt, error)
	// Abandon discards answer state so the quiz can be restarted.
	Abandon(ctx context.Context, attemptID string) (Attempt, error)
	GetAttempt(ctx context.Context, attemptID string) (Attempt, error)
	ListAttempts(ctx context.Context, opts AttemptListOpts) ([]Attempt, error)
}
