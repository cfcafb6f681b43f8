package http

import (
	"net/http"
	"strconv"

	"github.com/chaman2003/epsilora-api/internal/audit"
)

// RecentEventsHandler exposes the audit trail to admins, newest first.
func RecentEventsHandler(log *audit.EventLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typ := r.URL.Query().Get("type")
		if typ == "" {
			typ = audit.TypeAttemptSubmitted
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		events, err := log.Recent(r.Context(), typ, limit)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"events": events})
	}
}
