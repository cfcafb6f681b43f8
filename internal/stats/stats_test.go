package stats

import (
	"context"
	"strings"
	"testing"

	"github.com/chaman2003/epsilora-api/internal/db"
	"github.com/chaman2003/epsilora-api/internal/grading"
	"github.com/chaman2003/epsilora-api/internal/quiz"
)

func seedAttempts(t *testing.T) quiz.Store {
	t.Helper()
	ctx := context.Background()
	store := quiz.NewInMemoryStore()

	qz := quiz.Quiz{
		ID:    "quiz-1",
		Title: "Python Basics",
		Questions: []quiz.Question{
			{ID: "q1", Text: "Q1", Options: []grading.Option{
				{Label: "A", Text: "yes"}, {Label: "B", Text: "no"},
			}, CorrectAnswer: "A"},
			{ID: "q2", Text: "Q2", Options: []grading.Option{
				{Label: "A", Text: "yes"}, {Label: "B", Text: "no"},
			}, CorrectAnswer: "B"},
		},
	}
	if err := store.PutQuiz(ctx, qz); err != nil {
		t.Fatal(err)
	}

	// Submitted attempt: 1/2 correct.
	a1, _ := store.NewAttempt(ctx, "quiz-1", "user-1")
	if _, err := store.SaveAnswer(ctx, a1.ID, "q1", "A"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveAnswer(ctx, a1.ID, "q2", "A"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Submit(ctx, a1.ID); err != nil {
		t.Fatal(err)
	}

	// In-progress attempt must not count.
	a2, _ := store.NewAttempt(ctx, "quiz-1", "user-1")
	if _, err := store.SaveAnswer(ctx, a2.ID, "q1", "A"); err != nil {
		t.Fatal(err)
	}

	// Another user's attempt must not count either.
	a3, _ := store.NewAttempt(ctx, "quiz-1", "user-2")
	if _, err := store.Submit(ctx, a3.ID); err != nil {
		t.Fatal(err)
	}

	return store
}

func TestSummary(t *testing.T) {
	svc := NewService(seedAttempts(t))

	sum, err := svc.Summary(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalAttempts != 1 {
		t.Errorf("TotalAttempts = %d, want 1 (submitted only)", sum.TotalAttempts)
	}
	if sum.TotalAnswered != 2 || sum.TotalCorrect != 1 {
		t.Errorf("answered/correct = %d/%d, want 2/1", sum.TotalAnswered, sum.TotalCorrect)
	}
	if sum.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", sum.Accuracy)
	}
	if sum.Methods[grading.MethodDirectLetter] != 2 {
		t.Errorf("Methods = %v, want 2 direct-letter verdicts", sum.Methods)
	}

	if len(sum.PerQuiz) != 1 {
		t.Fatalf("PerQuiz = %+v", sum.PerQuiz)
	}
	qs := sum.PerQuiz[0]
	if qs.Title != "Python Basics" || qs.BestScore != 1 || qs.LastScore != 1 {
		t.Errorf("quiz stats: %+v", qs)
	}
}

// The summary must cover every submitted attempt, not just the first page
// a store would serve to the HTTP layer.
func TestSummary_SQLStoreManyAttempts(t *testing.T) {
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite,
		"file:"+t.TempDir()+"/stats.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	store := quiz.NewSQLStore(dbh, "sqlite")

	qz := quiz.Quiz{
		ID:    "quiz-1",
		Title: "Python Basics",
		Questions: []quiz.Question{
			{ID: "q1", Text: "Q1", Options: []grading.Option{
				{Label: "A", Text: "yes"}, {Label: "B", Text: "no"},
			}, CorrectAnswer: "A"},
		},
	}
	if err := store.PutQuiz(ctx, qz); err != nil {
		t.Fatal(err)
	}

	const total = 60
	for i := 0; i < total; i++ {
		a, err := store.NewAttempt(ctx, "quiz-1", "user-1")
		if err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
		if _, err := store.SaveAnswer(ctx, a.ID, "q1", "A"); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if _, err := store.Submit(ctx, a.ID); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	sum, err := NewService(store).Summary(ctx, "user-1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalAttempts != total {
		t.Errorf("TotalAttempts = %d, want %d", sum.TotalAttempts, total)
	}
	if sum.TotalAnswered != total || sum.TotalCorrect != total {
		t.Errorf("answered/correct = %d/%d, want %d/%d",
			sum.TotalAnswered, sum.TotalCorrect, total, total)
	}
	if len(sum.PerQuiz) != 1 || sum.PerQuiz[0].Attempts != total {
		t.Errorf("PerQuiz = %+v", sum.PerQuiz)
	}
}

func TestSummary_EmptyUser(t *testing.T) {
	svc := NewService(quiz.NewInMemoryStore())
	sum, err := svc.Summary(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalAttempts != 0 || sum.Accuracy != 0 {
		t.Errorf("empty summary: %+v", sum)
	}
}

func TestDigest(t *testing.T) {
	svc := NewService(seedAttempts(t))
	digest, err := svc.Digest(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	for _, want := range []string{"Submitted attempts: 1", "50%", "Python Basics"} {
		if !strings.Contains(digest, want) {
			t.Errorf("digest missing %q:\n%s", want, digest)
		}
	}
}

func TestDigest_NoAttempts(t *testing.T) {
	svc := NewService(quiz.NewInMemoryStore())
	digest, err := svc.Digest(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if digest != "No quizzes submitted yet." {
		t.Errorf("digest = %q", digest)
	}
}
