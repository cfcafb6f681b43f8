package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/chaman2003/epsilora-api/internal/course"
)

func ListCoursesHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := store.List(r.Context())
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"courses": out})
	}
}

func GetCourseHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := store.Get(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func CreateCourseHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title       string `json:"title" validate:"required,min=1,max=200"`
			Description string `json:"description" validate:"max=2000"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		c := course.Course{
			ID:          uuid.NewString(),
			Title:       req.Title,
			Description: req.Description,
			CreatedAt:   time.Now().Unix(),
		}
		if err := store.Put(r.Context(), c); err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}
