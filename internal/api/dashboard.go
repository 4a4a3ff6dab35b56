package api

import "net/http"

func handleStatusSummary(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Analytics == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "DASHBOARD_NOT_CONFIGURED", "analytics dependency is not configured", false, nil)
		return
	}
	counts, err := deps.Analytics.StatusSummary(r.Context())
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "DASHBOARD_QUERY_FAILED", "failed to load status summary", true, map[string]any{"details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"statuses": counts})
}

func handleMonthlyTrend(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Analytics == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "DASHBOARD_NOT_CONFIGURED", "analytics dependency is not configured", false, nil)
		return
	}
	counts, err := deps.Analytics.MonthlyTrend(r.Context())
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "DASHBOARD_QUERY_FAILED", "failed to load monthly trend", true, map[string]any{"details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"months": counts})
}

func handleOverdue(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Analytics == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "DASHBOARD_NOT_CONFIGURED", "analytics dependency is not configured", false, nil)
		return
	}
	total, err := deps.Analytics.OverdueCases(r.Context())
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "DASHBOARD_QUERY_FAILED", "failed to load overdue count", true, map[string]any{"details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"overdue": total})
}
