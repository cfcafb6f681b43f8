package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/chaman2003/epsilora-api/internal/course"
	"github.com/chaman2003/epsilora-api/internal/quiz"
	"github.com/chaman2003/epsilora-api/internal/quizgen"
)

// GenerateQuizHandler asks the AI provider for a fresh quiz and persists it.
func GenerateQuizHandler(gen *quizgen.Generator, courses course.Store, store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CourseID     string `json:"course_id" validate:"required"`
			Topic        string `json:"topic" validate:"max=500"`
			Difficulty   string `json:"difficulty" validate:"required,oneof=easy medium hard"`
			NumQuestions int    `json:"num_questions" validate:"required,min=1,max=20"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		c, err := courses.Get(r.Context(), req.CourseID)
		if err != nil {
			fail(w, err)
			return
		}
		q, err := gen.Generate(r.Context(), quizgen.GenerateInput{
			CourseID:     c.ID,
			CourseTitle:  c.Title,
			Topic:        req.Topic,
			Difficulty:   req.Difficulty,
			NumQuestions: req.NumQuestions,
		})
		if err != nil {
			http.Error(w, "quiz generation failed: "+err.Error(), http.StatusBadGateway)
			return
		}
		if err := store.PutQuiz(r.Context(), *q); err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, quiz.StripAnswers(*q))
	}
}

// GetQuizHandler serves the student view, without answer keys.
func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.GetQuiz(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

func ListQuizzesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pageParams(r, 50)
		out, err := store.ListQuizzes(r.Context(), r.URL.Query().Get("course_id"), limit, offset)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"quizzes": out})
	}
}

func pageParams(r *http.Request, defLimit int) (limit, offset int) {
	limit = defLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
