// Package chat turns one user question into one chat reply: generate a safe
// statement, run it, format the result. Every failure mode produces a polite
// reply, never an error escaping to the transport layer.
package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/incidentchat/incidentchat/internal/observability"
	"github.com/incidentchat/incidentchat/internal/tickets"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type Generator interface {
	Generate(ctx context.Context, question string) (string, error)
}

type Reply struct {
	Text   string `json:"text"`
	SQL    string `json:"sql,omitempty"`
	Status string `json:"status"`
}

type Service struct {
	generator  Generator
	executor   tickets.Executor
	logger     *slog.Logger
	sampleRows int
}

func NewService(generator Generator, executor tickets.Executor, sampleRows int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sampleRows <= 0 {
		sampleRows = 5
	}
	return &Service{
		generator:  generator,
		executor:   executor,
		logger:     logger,
		sampleRows: sampleRows,
	}
}

// Respond handles one chat turn. The generated SQL is included in the reply
// so the UI can show it; prompt text and internal error detail are only
// logged, never surfaced to the end user.
func (s *Service) Respond(ctx context.Context, question string) Reply {
	start := time.Now()

	stmt, err := s.generator.Generate(ctx, question)
	if err != nil {
		s.logger.WarnContext(ctx, "no statement for question", slog.Any("error", err))
		observability.ObserveChatTurn(StatusError, time.Since(start))
		return Reply{
			Text:   "Sorry, I couldn't turn that question into a query. Try rephrasing it, for example \"how many pending tickets\".",
			Status: StatusError,
		}
	}

	result, err := s.executor.Execute(ctx, stmt)
	if err != nil {
		s.logger.ErrorContext(ctx, "query execution failed",
			slog.String("sql", stmt),
			slog.Any("error", err),
		)
		observability.ObserveChatTurn(StatusError, time.Since(start))
		return Reply{
			Text:   "The query could not be run against the ticket database. Please try again later.",
			SQL:    stmt,
			Status: StatusError,
		}
	}

	observability.ObserveChatTurn(StatusSuccess, time.Since(start))
	return Reply{
		Text:   FormatResult(result, s.sampleRows),
		SQL:    stmt,
		Status: StatusSuccess,
	}
}
