package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/chaman2003/epsilora-api/internal/grading"
)

func capitalsQuiz() Quiz {
	return Quiz{
		ID:                 "quiz-1",
		CourseID:           "course-1",
		Title:              "European Capitals",
		TimePerQuestionSec: 30,
		Questions: []Question{
			{
				ID:   "q1",
				Text: "Capital of France?",
				Options: []grading.Option{
					{Label: "A", Text: "Paris"},
					{Label: "B", Text: "Berlin"},
					{Label: "C", Text: "Madrid"},
					{Label: "D", Text: "Rome"},
				},
				CorrectAnswer: "A",
			},
			{
				ID:   "q2",
				Text: "Capital of Germany?",
				Options: []grading.Option{
					{Label: "A", Text: "Paris"},
					{Label: "B", Text: "Berlin"},
					{Label: "C", Text: "Madrid"},
					{Label: "D", Text: "Rome"},
				},
				CorrectAnswer: "B) Berlin",
			},
		},
	}
}

func newTestStore(t *testing.T) (*memoryStore, Attempt) {
	t.Helper()
	s := NewInMemoryStore().(*memoryStore)
	ctx := context.Background()
	if err := s.PutQuiz(ctx, capitalsQuiz()); err != nil {
		t.Fatalf("put quiz: %v", err)
	}
	a, err := s.NewAttempt(ctx, "quiz-1", "user-1")
	if err != nil {
		t.Fatalf("new attempt: %v", err)
	}
	return s, a
}

func TestGetQuiz_StripsAnswers(t *testing.T) {
	s, _ := newTestStore(t)
	qz, err := s.GetQuiz(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	for _, q := range qz.Questions {
		if q.CorrectAnswer != "" {
			t.Errorf("question %s leaked its answer key", q.ID)
		}
	}
	full, err := s.GetQuizFull(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("get quiz full: %v", err)
	}
	if full.Questions[0].CorrectAnswer == "" {
		t.Error("GetQuizFull must keep answer keys")
	}
}

func TestSaveAnswer_OncePerQuestion(t *testing.T) {
	s, a := newTestStore(t)
	ctx := context.Background()

	got, err := s.SaveAnswer(ctx, a.ID, "q1", "A")
	if err != nil {
		t.Fatalf("first answer: %v", err)
	}
	ans := got.Answers["q1"]
	if !ans.IsCorrect || ans.Method != grading.MethodDirectLetter {
		t.Errorf("unexpected verdict: %+v", ans)
	}

	if _, err := s.SaveAnswer(ctx, a.ID, "q1", "B"); err != ErrAlreadyAnswered {
		t.Errorf("second answer: got %v, want ErrAlreadyAnswered", err)
	}
	// The original verdict is untouched.
	got, _ = s.GetAttempt(ctx, a.ID)
	if got.Answers["q1"].Selected != "A" {
		t.Errorf("first selection was overwritten: %+v", got.Answers["q1"])
	}
}

func TestSaveAnswer_UnknownQuestion(t *testing.T) {
	s, a := newTestStore(t)
	if _, err := s.SaveAnswer(context.Background(), a.ID, "nope", "A"); err != ErrUnknownQuestion {
		t.Errorf("got %v, want ErrUnknownQuestion", err)
	}
}

func TestCountdown_ExpiresAnswer(t *testing.T) {
	s, a := newTestStore(t)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }
	if _, err := s.ViewQuestion(ctx, a.ID, "q1"); err != nil {
		t.Fatalf("view: %v", err)
	}

	// Past the 30s deadline.
	s.now = func() time.Time { return base.Add(31 * time.Second) }
	if _, err := s.SaveAnswer(ctx, a.ID, "q1", "A"); err != ErrQuestionExpired {
		t.Errorf("got %v, want ErrQuestionExpired", err)
	}
}

func TestCountdown_ReviewReplacesDeadline(t *testing.T) {
	s, a := newTestStore(t)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }
	if _, err := s.ViewQuestion(ctx, a.ID, "q1"); err != nil {
		t.Fatalf("view: %v", err)
	}

	// Re-view at +20s restarts the countdown, so +40s is still in time.
	s.now = func() time.Time { return base.Add(20 * time.Second) }
	if _, err := s.ViewQuestion(ctx, a.ID, "q1"); err != nil {
		t.Fatalf("re-view: %v", err)
	}
	got, _ := s.GetAttempt(ctx, a.ID)
	if len(got.Deadlines) != 1 {
		t.Fatalf("expected exactly one deadline, got %d", len(got.Deadlines))
	}

	s.now = func() time.Time { return base.Add(40 * time.Second) }
	if _, err := s.SaveAnswer(ctx, a.ID, "q1", "A"); err != nil {
		t.Errorf("answer within restarted countdown: %v", err)
	}
}

func TestSubmit_ScoresAndIsIdempotent(t *testing.T) {
	s, a := newTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveAnswer(ctx, a.ID, "q1", "A"); err != nil { // correct
		t.Fatal(err)
	}
	if _, err := s.SaveAnswer(ctx, a.ID, "q2", "C"); err != nil { // wrong
		t.Fatal(err)
	}

	got, err := s.Submit(ctx, a.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Status != StatusSubmitted || got.Score != 1 {
		t.Errorf("status=%s score=%v, want submitted/1", got.Status, got.Score)
	}

	again, err := s.Submit(ctx, a.ID)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if again.Score != got.Score || again.SubmittedAt != got.SubmittedAt {
		t.Errorf("resubmit changed the attempt: %+v vs %+v", again, got)
	}

	if _, err := s.SaveAnswer(ctx, a.ID, "q2", "B"); err != ErrAlreadySubmitted {
		t.Errorf("answer after submit: got %v, want ErrAlreadySubmitted", err)
	}
}

func TestAbandon_DiscardsAnswers(t *testing.T) {
	s, a := newTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveAnswer(ctx, a.ID, "q1", "A"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Abandon(ctx, a.ID)
	if err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if got.Status != StatusAbandoned || len(got.Answers) != 0 || got.Deadlines != nil {
		t.Errorf("abandon must discard answer state: %+v", got)
	}
	if _, err := s.SaveAnswer(ctx, a.ID, "q2", "B"); err != ErrAttemptClosed {
		t.Errorf("answer on abandoned attempt: got %v, want ErrAttemptClosed", err)
	}
	if _, err := s.Submit(ctx, a.ID); err != ErrAttemptClosed {
		t.Errorf("submit on abandoned attempt: got %v, want ErrAttemptClosed", err)
	}
}

func TestListAttempts_Filters(t *testing.T) {
	s, a := newTestStore(t)
	ctx := context.Background()
	if _, err := s.NewAttempt(ctx, "quiz-1", "user-2"); err != nil {
		t.Fatal(err)
	}

	mine, err := s.ListAttempts(ctx, AttemptListOpts{UserID: "user-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].ID != a.ID {
		t.Errorf("user filter: %+v", mine)
	}

	all, err := s.ListAttempts(ctx, AttemptListOpts{QuizID: "quiz-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("quiz filter: got %d attempts", len(all))
	}
}
