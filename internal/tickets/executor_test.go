package tickets

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestExecuteReturnsColumnsAndRows(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock setup failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	query := "SELECT IncidentID, TicketStatus FROM ticketdetails LIMIT 50;"
	mock.ExpectQuery(query).WillReturnRows(
		sqlmock.NewRows([]string{"IncidentID", "TicketStatus"}).
			AddRow("001", "New").
			AddRow("002", []byte("Pending")),
	)

	executor := NewDBExecutor(db, time.Second)
	result, err := executor.Execute(context.Background(), query)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(result.Columns) != 2 || result.Columns[0] != "IncidentID" {
		t.Fatalf("columns = %v", result.Columns)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("rows = %d", len(result.Rows))
	}
	if result.Rows[1][1] != "Pending" {
		t.Fatalf("byte column not converted: %#v", result.Rows[1][1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExecuteRefusesNonSelect(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock setup failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	executor := NewDBExecutor(db, time.Second)
	if _, err := executor.Execute(context.Background(), "DELETE FROM ticketdetails"); err == nil {
		t.Fatal("expected refusal")
	}
}

func TestExecutePropagatesQueryError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock setup failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	query := "SELECT nope FROM ticketdetails;"
	mock.ExpectQuery(query).WillReturnError(context.DeadlineExceeded)

	executor := NewDBExecutor(db, time.Second)
	if _, err := executor.Execute(context.Background(), query); err == nil {
		t.Fatal("expected error")
	}
}
