package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/chaman2003/epsilora-api/internal/chat"
	"github.com/chaman2003/epsilora-api/internal/course"
	"github.com/chaman2003/epsilora-api/internal/quiz"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, quiz.ErrQuizNotFound),
		errors.Is(err, quiz.ErrAttemptNotFound),
		errors.Is(err, chat.ErrSessionNotFound),
		errors.Is(err, course.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chat.ErrNotSessionOwner):
		return http.StatusForbidden
	case errors.Is(err, quiz.ErrAlreadyAnswered),
		errors.Is(err, quiz.ErrAlreadySubmitted),
		errors.Is(err, quiz.ErrAttemptClosed):
		return http.StatusConflict
	case errors.Is(err, quiz.ErrQuestionExpired):
		return http.StatusGone
	case errors.Is(err, quiz.ErrUnknownQuestion):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusOf(err))
}
