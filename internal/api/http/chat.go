package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chaman2003/epsilora-api/internal/chat"
	"github.com/chaman2003/epsilora-api/internal/rbac"
)

func StartChatSessionHandler(svc *chat.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuizID string `json:"quiz_id"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		s, err := svc.StartSession(r.Context(), rbac.SubjectFromContext(r.Context()), req.QuizID)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, s)
	}
}

func ListChatSessionsHandler(svc *chat.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.Sessions(r.Context(), rbac.SubjectFromContext(r.Context()))
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"sessions": out})
	}
}

func SendChatMessageHandler(svc *chat.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content string `json:"content" validate:"required,max=8000"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		m, err := svc.Send(r.Context(), rbac.SubjectFromContext(r.Context()), chi.URLParam(r, "sessionID"), req.Content)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func ChatHistoryHandler(svc *chat.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.History(r.Context(), rbac.SubjectFromContext(r.Context()), chi.URLParam(r, "sessionID"))
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"messages": out})
	}
}
