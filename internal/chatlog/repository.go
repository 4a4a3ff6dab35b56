// Package chatlog persists every chat turn for the sidebar history and for
// operator review. The log is an external collaborator of the generation
// pipeline: the pipeline never reads it, and a failed insert never fails a
// chat turn.
package chatlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Entry struct {
	ID         int64     `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Client     string    `json:"client"`
	UserName   string    `json:"user_name,omitempty"`
	Question   string    `json:"question"`
	Status     string    `json:"status"`
	Details    string    `json:"details,omitempty"`
	ResponseMS int64     `json:"response_ms"`
	Page       string    `json:"page"`
}

type InsertInput struct {
	Client     string
	UserName   string
	Question   string
	Status     string
	Details    string
	ResponseMS int64
	Page       string
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, in InsertInput) (Entry, error) {
	page := in.Page
	if page == "" {
		page = "chat"
	}

	query := `
INSERT INTO chat_log (client, user_name, question, status, details, response_ms, page)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at`
	var entry Entry
	entry.Client = in.Client
	entry.UserName = in.UserName
	entry.Question = in.Question
	entry.Status = in.Status
	entry.Details = in.Details
	entry.ResponseMS = in.ResponseMS
	entry.Page = page

	if err := r.db.QueryRowContext(ctx, query,
		in.Client, in.UserName, in.Question, in.Status, in.Details, in.ResponseMS, page,
	).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return Entry{}, fmt.Errorf("insert chat log: %w", err)
	}
	return entry, nil
}

// RecentHistory lists the newest entries for one client, newest first.
func (r *Repository) RecentHistory(ctx context.Context, client string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 25
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, created_at, client, user_name, question, status, details, response_ms, page
FROM chat_log
WHERE client = $1
ORDER BY id DESC
LIMIT $2`, client, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]Entry, 0)
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.CreatedAt,
			&entry.Client,
			&entry.UserName,
			&entry.Question,
			&entry.Status,
			&entry.Details,
			&entry.ResponseMS,
			&entry.Page,
		); err != nil {
			return nil, fmt.Errorf("scan chat log row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat log rows: %w", err)
	}
	return entries, nil
}
