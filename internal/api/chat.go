package api

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/incidentchat/incidentchat/internal/auth"
	"github.com/incidentchat/incidentchat/internal/chat"
	"github.com/incidentchat/incidentchat/internal/chatlog"
)

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Answer     string `json:"answer"`
	SQL        string `json:"sql,omitempty"`
	Status     string `json:"status"`
	ResponseMS int64  `json:"response_ms"`
}

func handleChat(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Chat == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "CHAT_NOT_CONFIGURED", "chat dependency is not configured", false, nil)
		return
	}

	var req chatRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid chat request body", false, map[string]any{"details": err.Error()})
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "QUESTION_REQUIRED", "question is required", false, nil)
		return
	}

	start := time.Now()
	reply := deps.Chat.Respond(r.Context(), question)
	elapsed := time.Since(start)

	recordChatTurn(deps, r, question, reply, elapsed)

	writeJSON(w, http.StatusOK, chatResponse{
		Answer:     reply.Text,
		SQL:        reply.SQL,
		Status:     reply.Status,
		ResponseMS: elapsed.Milliseconds(),
	})
}

// recordChatTurn logs the turn to the history store. Best effort: a logging
// failure never fails the chat response.
func recordChatTurn(deps Dependencies, r *http.Request, question string, reply chat.Reply, elapsed time.Duration) {
	if deps.History == nil {
		return
	}

	details := "ok"
	if reply.Status != chat.StatusSuccess {
		details = reply.Text
	}
	userName := ""
	if identity, ok := auth.IdentityFromContext(r.Context()); ok {
		userName = identity.Name
	}

	_, err := deps.History.Insert(r.Context(), chatlog.InsertInput{
		Client:     clientFromRequest(r),
		UserName:   userName,
		Question:   question,
		Status:     reply.Status,
		Details:    details,
		ResponseMS: elapsed.Milliseconds(),
		Page:       "chat",
	})
	if err != nil && deps.Logger != nil {
		deps.Logger.WarnContext(r.Context(), "chat log insert failed", slog.Any("error", err))
	}
}

// clientFromRequest identifies the calling machine for per-client history,
// preferring an explicit header over the transport address.
func clientFromRequest(r *http.Request) string {
	if client := strings.TrimSpace(r.Header.Get("X-Client-ID")); client != "" {
		return client
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
