package sqlgen

import (
	"strings"

	"github.com/incidentchat/incidentchat/internal/schema"
)

// BuildPrompt composes the instruction sent to the model: role framing, the
// numbered rule list, the schema listing, worked examples, and the question
// after a clear delimiter. Pure string assembly; the same question and schema
// always produce the byte-identical prompt, so the model call is the only
// source of nondeterminism in the pipeline.
func BuildPrompt(desc schema.Descriptor, question string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert PostgreSQL query generator.\n\n")
	sb.WriteString("Convert the user question into a SAFE SQL query.\n\n")
	sb.WriteString("IMPORTANT RULES:\n")
	sb.WriteString("1. Output exactly one SQL statement.\n")
	sb.WriteString("2. SELECT only. Do not modify data.\n")
	sb.WriteString("3. Use LIMIT 50 for non-aggregations.\n")
	sb.WriteString("4. Prefer IS NOT NULL over != '' when checking presence.\n")
	sb.WriteString("5. Use date functions when the question uses ranges like \"today\", \"yesterday\", \"last 7 days\".\n")
	sb.WriteString("6. RETURN ONLY SQL (no explanations, no comments, no markdown).\n\n")

	sb.WriteString("Database Schema:\n")
	sb.WriteString(desc.Render())
	sb.WriteString("\nExamples:\n\n")

	sb.WriteString("User: how many pending tickets\n")
	sb.WriteString("SQL:\nSELECT COUNT(*) AS total\nFROM ticketdetails\nWHERE TicketStatus <> 'Closed';\n\n")

	sb.WriteString("User: show the new tickets\n")
	sb.WriteString("SQL:\nSELECT *\nFROM ticketdetails\nWHERE TicketStatus LIKE '%New%'\nLIMIT 50;\n\n")

	sb.WriteString("User: status of incident id INC-002\n")
	sb.WriteString("SQL:\nSELECT TicketStatus\nFROM ticketdetails\nWHERE IncidentID = 'INC-002'\nLIMIT 50;\n\n")

	sb.WriteString("User: tickets submitted yesterday\n")
	sb.WriteString("SQL:\nSELECT *\nFROM ticketdetails\nWHERE TicketSubmittedDateTime::date = CURRENT_DATE - INTERVAL '1 day'\nLIMIT 50;\n\n")

	sb.WriteString("User: how many tickets per category\n")
	sb.WriteString("SQL:\nSELECT Category, COUNT(*) AS total\nFROM ticketdetails\nGROUP BY Category\nORDER BY total DESC;\n\n")

	sb.WriteString("User: berapa banyak tiket low\n")
	sb.WriteString("SQL:\nSELECT COUNT(*) AS total\nFROM ticketdetails\nWHERE PrioritySeverity LIKE '%Low%';\n\n")

	sb.WriteString("User: senaraikan tiket di bawah kategori Infra\n")
	sb.WriteString("SQL:\nSELECT *\nFROM ticketdetails\nWHERE Category LIKE '%Infra%'\nLIMIT 50;\n\n")

	sb.WriteString("User Question:\n")
	sb.WriteString(question)
	sb.WriteString("\n\nSQL:\n")

	return sb.String()
}
