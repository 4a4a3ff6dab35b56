package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/incidentchat/incidentchat/internal/sqlgen"
)

type generateRequest struct {
	Question string `json:"question"`
}

type generateResponse struct {
	SQL string `json:"sql"`
}

// handleGenerate exposes the generation pipeline without execution, for
// operators inspecting what a question would run.
func handleGenerate(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Generator == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "GENERATE_NOT_CONFIGURED", "generator dependency is not configured", false, nil)
		return
	}

	var req generateRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid generate request body", false, map[string]any{"details": err.Error()})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "QUESTION_REQUIRED", "question is required", false, nil)
		return
	}

	stmt, err := deps.Generator.Generate(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, sqlgen.ErrNoStatement) {
			writeError(r.Context(), w, http.StatusUnprocessableEntity, "NO_STATEMENT", "no query could be generated for this question", false, nil)
			return
		}
		writeError(r.Context(), w, http.StatusInternalServerError, "GENERATE_FAILED", "generation failed", true, nil)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{SQL: stmt})
}
