package stats

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/chaman2003/epsilora-api/internal/quiz"
)

// QuizStats aggregates a user's submitted attempts on one quiz.
type QuizStats struct {
	QuizID    string  `json:"quiz_id"`
	Title     string  `json:"title,omitempty"`
	Attempts  int     `json:"attempts"`
	Questions int     `json:"questions"`
	BestScore float64 `json:"best_score"`
	LastScore float64 `json:"last_score"`
	// Accuracy is correct answers over answered questions across all
	// attempts, in [0,1].
	Accuracy float64 `json:"accuracy"`
}

// Summary feeds the results dashboards (bar/pie charts are rendered
// client-side from these numbers) and the chat assistant's context.
type Summary struct {
	UserID        string         `json:"user_id"`
	TotalAttempts int            `json:"total_attempts"`
	TotalAnswered int            `json:"total_answered"`
	TotalCorrect  int            `json:"total_correct"`
	Accuracy      float64        `json:"accuracy"`
	PerQuiz       []QuizStats    `json:"per_quiz"`
	// Methods counts how each verdict was reached, keyed by match method.
	Methods map[string]int `json:"methods"`
}

// Service computes statistics on demand from submitted attempts.
type Service struct {
	store quiz.Store
}

func NewService(store quiz.Store) *Service { return &Service{store: store} }

func (s *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	attempts, err := s.store.ListAttempts(ctx, quiz.AttemptListOpts{
		UserID: userID,
		Status: quiz.StatusSubmitted,
	})
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{UserID: userID, Methods: map[string]int{}}
	perQuiz := map[string]*QuizStats{}

	// Newest first from the store; walk oldest first so LastScore ends up
	// at the latest attempt.
	for i := len(attempts) - 1; i >= 0; i-- {
		a := attempts[i]
		sum.TotalAttempts++

		qs := perQuiz[a.QuizID]
		if qs == nil {
			qs = &QuizStats{QuizID: a.QuizID}
			perQuiz[a.QuizID] = qs
		}
		qs.Attempts++
		qs.LastScore = a.Score
		if a.Score > qs.BestScore {
			qs.BestScore = a.Score
		}

		for _, ans := range a.Answers {
			sum.TotalAnswered++
			qs.Questions++
			sum.Methods[ans.Method]++
			if ans.IsCorrect {
				sum.TotalCorrect++
			}
		}
	}

	for _, qs := range perQuiz {
		correct := 0.0
		for _, a := range attempts {
			if a.QuizID == qs.QuizID {
				correct += a.Score
			}
		}
		if qs.Questions > 0 {
			qs.Accuracy = correct / float64(qs.Questions)
		}
		if qz, err := s.store.GetQuiz(ctx, qs.QuizID); err == nil {
			qs.Title = qz.Title
		}
		sum.PerQuiz = append(sum.PerQuiz, *qs)
	}
	sort.Slice(sum.PerQuiz, func(i, j int) bool { return sum.PerQuiz[i].QuizID < sum.PerQuiz[j].QuizID })

	if sum.TotalAnswered > 0 {
		sum.Accuracy = float64(sum.TotalCorrect) / float64(sum.TotalAnswered)
	}
	return sum, nil
}

// Digest renders the summary as a short text block for the assistant's
// system prompt.
func (s *Service) Digest(ctx context.Context, userID string) (string, error) {
	sum, err := s.Summary(ctx, userID)
	if err != nil {
		return "", err
	}
	if sum.TotalAttempts == 0 {
		return "No quizzes submitted yet.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Submitted attempts: %d. Overall accuracy: %.0f%% (%d/%d correct).\n",
		sum.TotalAttempts, sum.Accuracy*100, sum.TotalCorrect, sum.TotalAnswered)
	for _, qs := range sum.PerQuiz {
		title := qs.Title
		if title == "" {
			title = qs.QuizID
		}
		fmt.Fprintf(&b, "- %s: %d attempt(s), best score %.0f, accuracy %.0f%%\n",
			title, qs.Attempts, qs.BestScore, qs.Accuracy*100)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
