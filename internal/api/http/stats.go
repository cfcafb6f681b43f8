package http

import (
	"net/http"

	"github.com/chaman2003/epsilora-api/internal/rbac"
	"github.com/chaman2003/epsilora-api/internal/stats"
)

// StatsSummaryHandler serves the results dashboard. Admins may pass
// ?user_id= to inspect another user's performance.
func StatsSummaryHandler(svc *stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := rbac.SubjectFromContext(r.Context())
		if rbac.RoleFromContext(r.Context()) == "admin" {
			if v := r.URL.Query().Get("user_id"); v != "" {
				userID = v
			}
		}
		sum, err := svc.Summary(r.Context(), userID)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}
