package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/chaman2003/epsilora-api/internal/grading"
	"github.com/chaman2003/epsilora-api/internal/quiz"
	"github.com/chaman2003/epsilora-api/internal/rbac"
)

type captureRecorder struct {
	events []string
}

func (c *captureRecorder) Record(_ context.Context, typ, key string, _ any) {
	c.events = append(c.events, typ+":"+key)
}

func asUser(userID, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := rbac.WithSubject(r.Context(), userID)
			ctx = rbac.WithRole(ctx, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func seededAttempt(t *testing.T) (quiz.Store, quiz.Attempt) {
	t.Helper()
	ctx := context.Background()
	store := quiz.NewInMemoryStore()

	err := store.PutQuiz(ctx, quiz.Quiz{
		ID:    "quiz-1",
		Title: "Capitals",
		Questions: []quiz.Question{
			{ID: "q1", Text: "Capital of France?", Options: []grading.Option{
				{Label: "A", Text: "Paris"}, {Label: "B", Text: "Berlin"},
			}, CorrectAnswer: "A"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	a, err := store.NewAttempt(ctx, "quiz-1", "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveAnswer(ctx, a.ID, "q1", "A"); err != nil {
		t.Fatal(err)
	}
	return store, a
}

func TestSubmitHandler_AuditsOnlyTheFirstSubmit(t *testing.T) {
	store, a := seededAttempt(t)
	rec := &captureRecorder{}

	r := chi.NewRouter()
	r.Use(asUser("user-1", "student"))
	r.Post("/attempts/{attemptID}/submit", SubmitAttemptHandler(store, rec))

	submit := func() quiz.Attempt {
		t.Helper()
		req := httptest.NewRequest("POST", "/attempts/"+a.ID+"/submit", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
		}
		var got quiz.Attempt
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		return got
	}

	first := submit()
	if first.Status != quiz.StatusSubmitted || first.Score != 1 {
		t.Errorf("first submit: %+v", first)
	}
	again := submit()
	if again.Score != first.Score {
		t.Errorf("resubmit changed score: %v vs %v", again.Score, first.Score)
	}

	if len(rec.events) != 1 {
		t.Errorf("audit events = %v, want exactly one for the first submit", rec.events)
	}
}

func TestSubmitHandler_ForeignAttemptHidden(t *testing.T) {
	store, a := seededAttempt(t)
	rec := &captureRecorder{}

	r := chi.NewRouter()
	r.Use(asUser("user-2", "student"))
	r.Post("/attempts/{attemptID}/submit", SubmitAttemptHandler(store, rec))

	req := httptest.NewRequest("POST", "/attempts/"+a.ID+"/submit", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for another user's attempt", w.Code)
	}
	if len(rec.events) != 0 {
		t.Errorf("audit events = %v, want none", rec.events)
	}
}
