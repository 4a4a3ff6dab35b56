package chatlog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestInsertReturnsPersistedEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock setup failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	created := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO chat_log").
		WithArgs("workstation-1", "alice", "how many pending tickets", "success", "ok", int64(420), "chat").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

	entry, err := NewRepository(db).Insert(context.Background(), InsertInput{
		Client:     "workstation-1",
		UserName:   "alice",
		Question:   "how many pending tickets",
		Status:     "success",
		Details:    "ok",
		ResponseMS: 420,
		Page:       "chat",
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if entry.ID != 7 || !entry.CreatedAt.Equal(created) {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.Question != "how many pending tickets" {
		t.Fatalf("question = %q", entry.Question)
	}
}

func TestInsertDefaultsPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock setup failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("INSERT INTO chat_log").
		WithArgs("c1", "", "q", "error", "boom", int64(10), "chat").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	entry, err := NewRepository(db).Insert(context.Background(), InsertInput{
		Client:     "c1",
		Question:   "q",
		Status:     "error",
		Details:    "boom",
		ResponseMS: 10,
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if entry.Page != "chat" {
		t.Fatalf("page = %q", entry.Page)
	}
}

func TestRecentHistoryFiltersByClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock setup failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery("SELECT id, created_at, client").
		WithArgs("workstation-1", 25).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "created_at", "client", "user_name", "question", "status", "details", "response_ms", "page",
		}).
			AddRow(int64(9), now, "workstation-1", "alice", "latest tickets", "success", "ok", int64(120), "chat").
			AddRow(int64(8), now, "workstation-1", "alice", "bad question", "error", "no statement", int64(80), "chat"))

	entries, err := NewRepository(db).RecentHistory(context.Background(), "workstation-1", 0)
	if err != nil {
		t.Fatalf("RecentHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].ID != 9 || entries[1].Status != "error" {
		t.Fatalf("entries = %+v", entries)
	}
}
