package tickets

import (
	"context"
	"database/sql"
	"fmt"
)

type StatusCount struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

type MonthlyCount struct {
	Month int   `json:"month"`
	Total int64 `json:"total"`
}

// Analytics serves the fixed dashboard queries. These statements are
// hand-authored, not generated, so they bypass the generation pipeline.
type Analytics struct {
	db *sql.DB
}

func NewAnalytics(db *sql.DB) *Analytics {
	return &Analytics{db: db}
}

// StatusSummary returns ticket counts per status, largest first.
func (a *Analytics) StatusSummary(ctx context.Context) ([]StatusCount, error) {
	rows, err := a.db.QueryContext(ctx, `
SELECT TicketStatus, COUNT(*) AS total
FROM ticketdetails
GROUP BY TicketStatus
ORDER BY total DESC`)
	if err != nil {
		return nil, fmt.Errorf("status summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make([]StatusCount, 0)
	for rows.Next() {
		var count StatusCount
		if err := rows.Scan(&count.Status, &count.Total); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}
	return counts, nil
}

// MonthlyTrend returns submitted-ticket counts per calendar month.
func (a *Analytics) MonthlyTrend(ctx context.Context) ([]MonthlyCount, error) {
	rows, err := a.db.QueryContext(ctx, `
SELECT EXTRACT(MONTH FROM TicketSubmittedDateTime)::int AS month, COUNT(*) AS total
FROM ticketdetails
GROUP BY month
ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make([]MonthlyCount, 0)
	for rows.Next() {
		var count MonthlyCount
		if err := rows.Scan(&count.Month, &count.Total); err != nil {
			return nil, fmt.Errorf("scan monthly count: %w", err)
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly counts: %w", err)
	}
	return counts, nil
}

// OverdueCases counts tickets still pending after more than seven days.
func (a *Analytics) OverdueCases(ctx context.Context) (int64, error) {
	var total int64
	err := a.db.QueryRowContext(ctx, `
SELECT COUNT(*) AS total
FROM ticketdetails
WHERE TicketStatus = 'Pending'
  AND TicketSubmittedDateTime < CURRENT_DATE - INTERVAL '7 days'`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("overdue cases: %w", err)
	}
	return total, nil
}
