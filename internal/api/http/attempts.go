package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chaman2003/epsilora-api/internal/audit"
	"github.com/chaman2003/epsilora-api/internal/quiz"
	"github.com/chaman2003/epsilora-api/internal/rbac"
)

func CreateAttemptHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuizID string `json:"quiz_id" validate:"required"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		a, err := store.NewAttempt(r.Context(), req.QuizID, rbac.SubjectFromContext(r.Context()))
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

// ViewQuestionHandler starts (or restarts) the question's countdown and
// returns the updated attempt so the client can render the timer.
func ViewQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := ownAttempt(r, store, chi.URLParam(r, "attemptID"))
		if err != nil {
			fail(w, err)
			return
		}
		a, err = store.ViewQuestion(r.Context(), a.ID, chi.URLParam(r, "questionID"))
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func SaveAnswerHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionID string `json:"question_id" validate:"required"`
			Selected   string `json:"selected" validate:"required"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		a, err := ownAttempt(r, store, chi.URLParam(r, "attemptID"))
		if err != nil {
			fail(w, err)
			return
		}
		a, err = store.SaveAnswer(r.Context(), a.ID, req.QuestionID, req.Selected)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func SubmitAttemptHandler(store quiz.Store, rec audit.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := ownAttempt(r, store, chi.URLParam(r, "attemptID"))
		if err != nil {
			fail(w, err)
			return
		}
		wasSubmitted := a.Status == quiz.StatusSubmitted
		a, err = store.Submit(r.Context(), a.ID)
		if err != nil {
			fail(w, err)
			return
		}
		// Idempotent resubmits return the stored result without a second
		// audit event.
		if !wasSubmitted {
			methods := map[string]string{}
			for qid, ans := range a.Answers {
				methods[qid] = ans.Method
			}
			rec.Record(r.Context(), audit.TypeAttemptSubmitted, a.ID, map[string]any{
				"quiz_id": a.QuizID,
				"user_id": a.UserID,
				"score":   a.Score,
				"methods": methods,
			})
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func AbandonAttemptHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := ownAttempt(r, store, chi.URLParam(r, "attemptID"))
		if err != nil {
			fail(w, err)
			return
		}
		a, err = store.Abandon(r.Context(), a.ID)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func GetAttemptHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := ownAttempt(r, store, chi.URLParam(r, "attemptID"))
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func ListAttemptsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pageParams(r, 50)
		opts := quiz.AttemptListOpts{
			QuizID: r.URL.Query().Get("quiz_id"),
			UserID: r.URL.Query().Get("user_id"),
			Status: r.URL.Query().Get("status"),
			Limit:  limit,
			Offset: offset,
		}
		// Students only see their own attempts.
		if rbac.RoleFromContext(r.Context()) != "admin" {
			opts.UserID = rbac.SubjectFromContext(r.Context())
		}
		out, err := store.ListAttempts(r.Context(), opts)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"attempts": out})
	}
}

// ownAttempt loads the attempt and enforces ownership for non-admins.
func ownAttempt(r *http.Request, store quiz.Store, id string) (quiz.Attempt, error) {
	a, err := store.GetAttempt(r.Context(), id)
	if err != nil {
		return quiz.Attempt{}, err
	}
	if rbac.RoleFromContext(r.Context()) != "admin" && a.UserID != rbac.SubjectFromContext(r.Context()) {
		// Hide other users' attempts entirely.
		return quiz.Attempt{}, quiz.ErrAttemptNotFound
	}
	return a, nil
}
