package sqlgen

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/incidentchat/incidentchat/internal/observability"
	"github.com/incidentchat/incidentchat/internal/schema"
)

// ErrNoStatement is the single failure surface of the generator: model
// outages, unparsable output and policy violations all collapse to it.
// Callers render a polite "nothing could be generated" message; the detail is
// only logged for operators.
var ErrNoStatement = errors.New("no statement produced")

// LLMClient sends a prompt to the generation service and returns raw text.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	RowCap       int
	CacheEntries int
}

// Generator turns a natural-language question into a safe, schema-conformant
// SELECT statement: cache, then intent shortcuts, then the model path with
// cleaning, safety validation and repair.
type Generator struct {
	llm      LLMClient
	desc     schema.Descriptor
	repairer *Repairer
	cache    *statementCache
	logger   *slog.Logger
}

func New(llm LLMClient, desc schema.Descriptor, cfg Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		llm:      llm,
		desc:     desc,
		repairer: NewRepairer(desc, schema.StatusVocabulary(), cfg.RowCap),
		cache:    newStatementCache(cfg.CacheEntries),
		logger:   logger,
	}
}

// Generate produces one terminated SELECT statement for the question, or
// ErrNoStatement. It never panics and never returns a statement that failed
// safety validation.
func (g *Generator) Generate(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrNoStatement
	}

	if stmt, ok := g.cache.get(question); ok {
		observability.IncrementSQLGenCacheHit()
		return stmt, nil
	}

	if stmt, ok := matchIntent(g.desc, question); ok {
		// Shortcuts are hand-authored but validated symmetrically with the
		// model path.
		if !IsSafe(stmt) {
			g.logger.ErrorContext(ctx, "intent shortcut failed safety validation", slog.String("statement", stmt))
			observability.ObserveSQLGen("failed")
			return "", ErrNoStatement
		}
		g.cache.put(question, stmt)
		observability.ObserveSQLGen("shortcut")
		return stmt, nil
	}

	prompt := BuildPrompt(g.desc, question)
	start := time.Now()
	raw, err := g.llm.Generate(ctx, prompt)
	observability.ObserveLLMRequest(time.Since(start), err == nil)
	if err != nil {
		g.logger.WarnContext(ctx, "llm generation failed", slog.Any("error", err))
		observability.ObserveSQLGen("failed")
		return "", ErrNoStatement
	}

	stmt := Clean(raw)
	if stmt == "" {
		g.logger.WarnContext(ctx, "no SELECT found in model output")
		observability.ObserveSQLGen("failed")
		return "", ErrNoStatement
	}
	if !IsSafe(stmt) {
		// Unsafe output is rejected outright, never repaired.
		g.logger.WarnContext(ctx, "rejected unsafe statement", slog.String("statement", stmt))
		observability.ObserveSQLGen("rejected")
		return "", ErrNoStatement
	}

	stmt = g.repairer.Repair(stmt)
	g.cache.put(question, stmt)
	observability.ObserveSQLGen("generated")
	return stmt, nil
}
